package outbox

import (
	"errors"
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
)

var (
	ErrUnknownMessageKind = errors.New("unknown message kind")
	ErrLeaseHeld          = errors.New("relayer lease held by another instance")
	ErrAttemptsExhausted  = errors.New("send attempts exhausted")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
	// StatusAborted marks a message never sent because an earlier message of
	// its settlement failed
	StatusAborted Status = "aborted"
)

// Record is one emitted message waiting for, or done with, execution.
// Messages of one command share a SettlementId and Seq keeps their emission
// order. A message is sent only after every earlier message of its
// settlement went out.
type Record struct {
	Id           string         `json:"id" bson:"id"`
	SettlementId string         `json:"settlement_id" bson:"settlementId"`
	OfferingId   string         `json:"offering_id" bson:"offeringId"`
	Action       string         `json:"action" bson:"action"`
	Seq          int            `json:"seq" bson:"seq"`
	Message      market.Message `json:"message" bson:"message"`
	Status       Status         `json:"status" bson:"status"`
	Attempts     int            `json:"attempts" bson:"attempts"`
	TxHash       domain.TxHash  `json:"tx_hash" bson:"txHash"`
	LastError    string         `json:"last_error" bson:"lastError"`
	CreatedAt    time.Time      `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updated_at" bson:"updatedAt"`
}

type RecordPatchable struct {
	Status    *Status        `bson:"status"`
	Attempts  *int           `bson:"attempts"`
	TxHash    *domain.TxHash `bson:"txHash"`
	LastError *string        `bson:"lastError"`
	UpdatedAt *time.Time     `bson:"updatedAt"`
}

type FindAllOptions struct {
	Offset       *int
	Limit        *int
	Status       *Status
	OfferingId   *string
	SettlementId *string
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithPagination(offset, limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func WithStatus(status Status) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Status = &status
		return nil
	}
}

func WithOfferingId(id string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.OfferingId = &id
		return nil
	}
}

func WithSettlementId(id string) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.SettlementId = &id
		return nil
	}
}

type Repo interface {
	Insert(ctx ctx.Ctx, record *Record) error
	FindOne(ctx ctx.Ctx, id string) (*Record, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Record, error)
	Patch(ctx ctx.Ctx, id string, patchable *RecordPatchable) error
}

// Executor carries one message out on chain.
type Executor interface {
	Execute(ctx ctx.Ctx, msg market.Message) (domain.TxHash, error)
	// Receipt reports whether the transaction is mined and succeeded
	Receipt(ctx ctx.Ctx, hash domain.TxHash) (mined bool, success bool, err error)
}

// Relayer drains pending records through an Executor.
type Relayer interface {
	// RelayPending executes one batch of pending records and returns how many were sent
	RelayPending(ctx ctx.Ctx) (int, error)
	// ConfirmSent checks receipts of sent records and returns how many were settled
	ConfirmSent(ctx ctx.Ctx) (int, error)
	// Run relays on every tick until ctx is done
	Run(ctx ctx.Ctx, interval time.Duration)
}
