package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/domain/outbox"
)

var timeNow = time.Now

type dispatcherImpl struct {
	repo outbox.Repo
}

// NewDispatcher persists emitted messages as pending outbox records. The
// records are written with the ctx of the command, so they commit with it.
func NewDispatcher(repo outbox.Repo) market.Dispatcher {
	return &dispatcherImpl{repo: repo}
}

func (im *dispatcherImpl) Dispatch(c ctx.Ctx, offeringId, action string, msgs []market.Message) error {
	now := timeNow().UTC()
	settlementId := uuid.NewString()
	for i, msg := range msgs {
		record := &outbox.Record{
			Id:           uuid.NewString(),
			SettlementId: settlementId,
			OfferingId:   offeringId,
			Action:       action,
			Seq:          i,
			Message:      msg,
			Status:       outbox.StatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := im.repo.Insert(c, record); err != nil {
			c.WithFields(log.Fields{
				"offeringId": offeringId,
				"action":     action,
				"err":        err,
			}).Error("repo.Insert failed")
			return err
		}
	}
	met.BumpSum("dispatched", float64(len(msgs)), "action", action)
	return nil
}
