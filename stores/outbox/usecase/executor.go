package usecase

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/backoff"
	"github.com/x-xyz/marketplace/base/ctx"
	baseeth "github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/service/chain"
	"github.com/x-xyz/marketplace/service/chain/contract"
)

type ChainExecutorCfg struct {
	ChainId     domain.ChainId
	Client      chain.Client
	Erc721      contract.Erc721Contract
	Key         *ecdsa.PrivateKey
	NativeDenom string
}

type chainExecutor struct {
	chainId     domain.ChainId
	client      chain.Client
	erc721      contract.Erc721Contract
	key         *ecdsa.PrivateKey
	from        common.Address
	nativeDenom string
}

// NewChainExecutor pays and transfers out of the escrow account owning key.
func NewChainExecutor(cfg *ChainExecutorCfg) outbox.Executor {
	return &chainExecutor{
		chainId:     cfg.ChainId,
		client:      cfg.Client,
		erc721:      cfg.Erc721,
		key:         cfg.Key,
		from:        baseeth.KeyAddress(cfg.Key),
		nativeDenom: cfg.NativeDenom,
	}
}

func (e *chainExecutor) Execute(c ctx.Ctx, msg market.Message) (domain.TxHash, error) {
	switch msg.Kind {
	case market.MessageKindBankSend:
		return e.bankSend(c, msg.BankSend)
	case market.MessageKindNftTransfer:
		return e.nftTransfer(c, msg.NftTransfer)
	default:
		return "", backoff.Permanent(xerrors.Errorf("%s: %w", msg.Kind, outbox.ErrUnknownMessageKind))
	}
}

func (e *chainExecutor) bankSend(c ctx.Ctx, send *market.BankSend) (domain.TxHash, error) {
	if send == nil || len(send.Amount) != 1 {
		return "", backoff.Permanent(xerrors.New("bank send needs exactly one coin"))
	}
	coin := send.Amount[0]
	if coin.Denom != e.nativeDenom {
		return "", backoff.Permanent(market.ErrDenomNotMatch)
	}

	hash, err := e.client.SendTransaction(c, e.chainId, e.key, chain.Tx{
		To:    send.ToAddress.ToHex(),
		Value: coin.Amount.BigInt(),
	})
	if err != nil {
		c.WithFields(log.Fields{
			"to":     send.ToAddress,
			"amount": coin.String(),
			"err":    err,
		}).Error("client.SendTransaction failed")
		return "", err
	}
	return domain.TxHash(hash.Hex()), nil
}

func (e *chainExecutor) nftTransfer(c ctx.Ctx, transfer *market.NftTransfer) (domain.TxHash, error) {
	if transfer == nil {
		return "", backoff.Permanent(xerrors.New("empty nft transfer"))
	}
	tokenId, err := transfer.TokenId.ToBigInt()
	if err != nil {
		return "", backoff.Permanent(err)
	}
	data, err := e.erc721.SafeTransferFromData(e.from.Hex(), transfer.Recipient.ToLowerStr(), tokenId)
	if err != nil {
		c.WithField("err", err).Error("erc721.SafeTransferFromData failed")
		return "", backoff.Permanent(err)
	}

	hash, err := e.client.SendTransaction(c, e.chainId, e.key, chain.Tx{
		To:   transfer.Contract.ToHex(),
		Data: data,
	})
	if err != nil {
		c.WithFields(log.Fields{
			"contract":  transfer.Contract,
			"recipient": transfer.Recipient,
			"tokenId":   transfer.TokenId,
			"err":       err,
		}).Error("client.SendTransaction failed")
		return "", err
	}
	return domain.TxHash(hash.Hex()), nil
}

func (e *chainExecutor) Receipt(c ctx.Ctx, hash domain.TxHash) (bool, bool, error) {
	receipt, err := e.client.TransactionReceipt(c, e.chainId, common.HexToHash(string(hash)))
	if err == ethereum.NotFound {
		return false, false, nil
	} else if err != nil {
		c.WithFields(log.Fields{
			"hash": hash,
			"err":  err,
		}).Error("client.TransactionReceipt failed")
		return false, false, err
	}
	return true, receipt.Status == types.ReceiptStatusSuccessful, nil
}
