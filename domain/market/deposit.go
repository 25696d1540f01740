package market

import (
	"errors"
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

var (
	ErrDepositNotFound = errors.New("deposit not found")
	ErrDepositMismatch = errors.New("deposit was not sent by the sender to escrow")
	ErrDepositClaimed  = errors.New("deposit already claimed")
)

// Deposit is native value moved into escrow by one transaction, recorded
// when a command spends it.
type Deposit struct {
	TxHash     domain.TxHash  `json:"tx_hash" bson:"txHash"`
	Sender     domain.Address `json:"sender" bson:"sender"`
	Amount     Amount         `json:"amount" bson:"amount"`
	Action     string         `json:"action" bson:"action"`
	OfferingId string         `json:"offering_id" bson:"offeringId"`
	ClaimedAt  time.Time      `json:"claimed_at" bson:"claimedAt"`
}

type DepositClaim struct {
	TxHash     domain.TxHash
	Sender     domain.Address
	Action     string
	OfferingId string
}

type DepositRepo interface {
	// FindOne returns ErrDepositNotFound when the transaction was never claimed
	FindOne(ctx ctx.Ctx, txHash domain.TxHash) (*Deposit, error)
	// Insert returns ErrDepositClaimed when the transaction is already recorded
	Insert(ctx ctx.Ctx, deposit *Deposit) error
}

// DepositLedger verifies a deposit transaction and spends it. Claim enlists
// in the ctx transaction, a deposit stays unspent when the command fails.
type DepositLedger interface {
	Claim(ctx ctx.Ctx, claim DepositClaim) (Amount, error)
}
