package usecase

import (
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/chain"
)

var (
	met     = metrics.New("deposit")
	timeNow = time.Now
)

type LedgerCfg struct {
	ChainId domain.ChainId
	Client  chain.Client
	Repo    market.DepositRepo
	// Escrow receives deposits and pays out settlements, the relayer key address
	Escrow domain.Address
	// Confirmations a deposit needs on top of its own block, 0 accepts it once mined
	Confirmations uint64
}

type ledgerImpl struct {
	chainId       domain.ChainId
	client        chain.Client
	repo          market.DepositRepo
	escrow        domain.Address
	confirmations uint64
	signer        types.Signer
}

// NewLedger accepts plain value transfers signed by the sender and sent to
// escrow. Value reaching escrow through a contract call is not recognized.
func NewLedger(cfg *LedgerCfg) market.DepositLedger {
	return &ledgerImpl{
		chainId:       cfg.ChainId,
		client:        cfg.Client,
		repo:          cfg.Repo,
		escrow:        cfg.Escrow.ToLower(),
		confirmations: cfg.Confirmations,
		signer:        types.LatestSignerForChainID(big.NewInt(int64(cfg.ChainId))),
	}
}

func (im *ledgerImpl) Claim(c ctx.Ctx, claim market.DepositClaim) (market.Amount, error) {
	c = ctx.WithValues(c, map[string]interface{}{
		"deposit": claim.TxHash,
		"sender":  claim.Sender,
	})

	if _, err := im.repo.FindOne(c, claim.TxHash); err == nil {
		return market.Amount{}, market.ErrDepositClaimed
	} else if err != market.ErrDepositNotFound {
		return market.Amount{}, err
	}

	tx, err := im.verify(c, claim)
	if err != nil {
		met.BumpSum("rejected", 1, "action", claim.Action)
		return market.Amount{}, err
	}

	if tx.Value().Sign() == 0 {
		return market.Amount{}, market.ErrNoFunds
	}
	amount, err := market.NewAmountFromBig(tx.Value())
	if err != nil {
		return market.Amount{}, err
	}

	if err := im.repo.Insert(c, &market.Deposit{
		TxHash:     claim.TxHash,
		Sender:     claim.Sender.ToLower(),
		Amount:     amount,
		Action:     claim.Action,
		OfferingId: claim.OfferingId,
		ClaimedAt:  timeNow().UTC(),
	}); err != nil {
		return market.Amount{}, err
	}
	met.BumpSum("claimed", 1, "action", claim.Action)
	return amount, nil
}

// verify checks that the transaction succeeded, is final enough and moved
// value from the sender to escrow.
func (im *ledgerImpl) verify(c ctx.Ctx, claim market.DepositClaim) (*types.Transaction, error) {
	hash := claim.TxHash.ToHex()

	receipt, err := im.client.TransactionReceipt(c, im.chainId, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, market.ErrDepositNotFound
	} else if err != nil {
		c.WithField("err", err).Error("client.TransactionReceipt failed")
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, market.ErrDepositNotFound
	}

	if im.confirmations > 0 {
		head, err := im.client.BlockNumber(c, im.chainId)
		if err != nil {
			return nil, err
		}
		if receipt.BlockNumber == nil || receipt.BlockNumber.Uint64()+im.confirmations > head {
			return nil, market.ErrDepositNotFound
		}
	}

	tx, pending, err := im.client.TransactionByHash(c, im.chainId, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, market.ErrDepositNotFound
	} else if err != nil {
		c.WithField("err", err).Error("client.TransactionByHash failed")
		return nil, err
	}
	if pending {
		return nil, market.ErrDepositNotFound
	}

	if tx.To() == nil || !domain.Address(tx.To().Hex()).Equals(im.escrow) {
		return nil, market.ErrDepositMismatch
	}
	from, err := types.Sender(im.signer, tx)
	if err != nil {
		c.WithField("err", err).Warn("types.Sender failed")
		return nil, market.ErrDepositMismatch
	}
	if !domain.Address(from.Hex()).Equals(claim.Sender) {
		c.WithField("from", from.Hex()).Warn("deposit sent by another account")
		return nil, market.ErrDepositMismatch
	}
	return tx, nil
}
