package usecase

import (
	"errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"

	"github.com/x-xyz/marketplace/base/abi"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/base/tracker"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/chain"
)

var met = metrics.New("custody")

var transferSig = abi.ERC721TokenABI.Events["Transfer"].ID

// rejections leave no state behind, the token goes back to its sender
var rejections = []error{
	market.ErrNFTAddressNotMatch,
	market.ErrInvalidSaleType,
	market.ErrInvalidExpiration,
	market.ErrPriceMustBePositive,
	market.ErrOverflow,
	domain.ErrInvalidAddress,
}

type CustodyCfg struct {
	ChainId    domain.ChainId
	Client     chain.Client
	Escrow     domain.Address
	Engine     market.Engine
	Dispatcher market.Dispatcher
}

type custodyImpl struct {
	chainId    domain.ChainId
	client     chain.Client
	escrow     common.Address
	engine     market.Engine
	dispatcher market.Dispatcher
}

// NewCustodyHandler turns erc721 transfers into escrow into listings. The
// collection that emitted the log is the sender of the custody notification,
// the sale terms are the data of the safeTransferFrom call.
func NewCustodyHandler(cfg *CustodyCfg) tracker.EventHandler {
	return &custodyImpl{
		chainId:    cfg.ChainId,
		client:     cfg.Client,
		escrow:     common.HexToAddress(cfg.Escrow.ToLowerStr()),
		engine:     cfg.Engine,
		dispatcher: cfg.Dispatcher,
	}
}

func (im *custodyImpl) Filter() ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Topics: [][]common.Hash{{transferSig}, nil, {im.escrow.Hash()}},
	}
}

func (im *custodyImpl) ProcessEvents(c ctx.Ctx, events []tracker.Event) error {
	for _, e := range events {
		if err := im.process(c, e); err != nil {
			return err
		}
	}
	return nil
}

func (im *custodyImpl) process(c ctx.Ctx, e tracker.Event) error {
	transfer, err := abi.ToErc721TransferLog(&e.Log)
	if err != nil {
		// erc20 transfers into escrow are deposits
		return nil
	}
	if transfer.To != im.escrow {
		return nil
	}

	contract := domain.Address(e.Address.Hex()).ToLower()
	from := domain.Address(transfer.From.Hex()).ToLower()
	tokenId := domain.TokenId(transfer.TokenId.String())
	c = ctx.WithValues(c, map[string]interface{}{
		"txHash":   e.TxHash.Hex(),
		"logIndex": e.Index,
		"contract": contract,
		"tokenId":  tokenId,
	})

	if from == domain.EmptyAddress {
		met.BumpSum("minted", 1)
		c.Warn("token minted into escrow, nobody to list or return it for")
		return nil
	}

	terms, err := im.saleTerms(c, e, transfer)
	if err != nil {
		return err
	}
	if terms == nil {
		return im.giveBack(c, contract, from, tokenId, "no sale terms")
	}

	env := market.Env{Height: e.BlockNumber, Time: e.BlockTime}
	res, err := im.engine.ReceiveNft(c, env, market.MessageInfo{Sender: contract}, market.ReceiveNftMsg{
		Sender:  from.String(),
		TokenId: tokenId.String(),
		Msg:     terms,
	})
	if isRejection(err) {
		return im.giveBack(c, contract, from, tokenId, err.Error())
	} else if err != nil {
		c.WithField("err", err).Error("engine.ReceiveNft failed")
		return err
	}

	id, _ := res.Attribute("offering_id")
	met.BumpSum("listed", 1)
	c.WithFields(log.Fields{
		"offeringId": id,
		"seller":     from,
	}).Info("listing created from escrow transfer")
	return nil
}

// saleTerms reads the data of the safeTransferFrom that moved the token. It
// returns nil when the transfer was made any other way.
func (im *custodyImpl) saleTerms(c ctx.Ctx, e tracker.Event, transfer *abi.Erc721TransferLog) ([]byte, error) {
	tx, _, err := im.client.TransactionByHash(c, im.chainId, e.TxHash)
	if err != nil {
		c.WithField("err", err).Error("client.TransactionByHash failed")
		return nil, err
	}
	if tx.To() == nil || *tx.To() != e.Address {
		return nil, nil
	}
	call, err := abi.DecodeSafeTransferWithData(tx.Data())
	if err != nil {
		return nil, nil
	}
	if call.To != im.escrow || call.TokenId.Cmp(transfer.TokenId) != 0 || len(call.Data) == 0 {
		return nil, nil
	}
	return call.Data, nil
}

// giveBack dispatches the return transfer in the tracker transaction
func (im *custodyImpl) giveBack(c ctx.Ctx, contract, to domain.Address, tokenId domain.TokenId, reason string) error {
	msgs := []market.Message{market.NewNftTransfer(contract, to, tokenId)}
	if err := im.dispatcher.Dispatch(c, "", market.ActionReturnNft, msgs); err != nil {
		c.WithField("err", err).Error("dispatcher.Dispatch failed")
		return err
	}
	met.BumpSum("returned", 1)
	c.WithFields(log.Fields{
		"to":     to,
		"reason": reason,
	}).Warn("escrow transfer rejected, returning token")
	return nil
}

func isRejection(err error) bool {
	if err == nil {
		return false
	}
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}
