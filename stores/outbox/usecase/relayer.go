package usecase

import (
	"errors"
	"time"

	"github.com/viney-shih/goroutines"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/backoff"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/base/ptr"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/service/redis"
)

var met = metrics.New("outbox")

const (
	defaultBatchSize    = 32
	defaultMaxAttempts  = 5
	defaultLeaseTtl     = time.Minute
	defaultConfirmers   = 8
	defaultRetryStart   = 500 * time.Millisecond
	defaultRetryLimit   = 10 * time.Second
	receiptQueryTimeout = 10 * time.Second
)

type RelayerCfg struct {
	Repo     outbox.Repo
	Executor outbox.Executor
	// Redis holds the lease that keeps a single relayer sending, optional
	Redis      redis.Service
	InstanceId string

	BatchSize   int
	MaxAttempts int
	LeaseTtl    time.Duration
	Confirmers  int
	RetryStart  time.Duration
	RetryLimit  time.Duration
}

type relayerImpl struct {
	repo       outbox.Repo
	executor   outbox.Executor
	redis      redis.Service
	instanceId string

	batchSize   int
	maxAttempts int
	leaseTtl    time.Duration
	confirmers  int
	retryStart  time.Duration
	retryLimit  time.Duration
}

func NewRelayer(cfg *RelayerCfg) outbox.Relayer {
	im := &relayerImpl{
		repo:        cfg.Repo,
		executor:    cfg.Executor,
		redis:       cfg.Redis,
		instanceId:  cfg.InstanceId,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		leaseTtl:    cfg.LeaseTtl,
		confirmers:  cfg.Confirmers,
		retryStart:  cfg.RetryStart,
		retryLimit:  cfg.RetryLimit,
	}
	if im.batchSize <= 0 {
		im.batchSize = defaultBatchSize
	}
	if im.maxAttempts <= 0 {
		im.maxAttempts = defaultMaxAttempts
	}
	if im.leaseTtl <= 0 {
		im.leaseTtl = defaultLeaseTtl
	}
	if im.confirmers <= 0 {
		im.confirmers = defaultConfirmers
	}
	if im.retryStart <= 0 {
		im.retryStart = defaultRetryStart
	}
	if im.retryLimit <= 0 {
		im.retryLimit = defaultRetryLimit
	}
	return im
}

func (im *relayerImpl) Run(c ctx.Ctx, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := im.RelayPending(c); err != nil && err != outbox.ErrLeaseHeld {
			c.WithField("err", err).Error("RelayPending failed")
		}
		if _, err := im.ConfirmSent(c); err != nil {
			c.WithField("err", err).Error("ConfirmSent failed")
		}

		select {
		case <-c.Done():
			c.Info("relayer stopped")
			return
		case <-ticker.C:
		}
	}
}

func (im *relayerImpl) acquireLease(c ctx.Ctx) (bool, error) {
	if im.redis == nil {
		return true, nil
	}
	key := keys.RedisKey(keys.PfxRelayerLock)
	err := im.redis.SetNX(c, key, []byte(im.instanceId), im.leaseTtl)
	if err == nil {
		return true, nil
	} else if err != redis.ErrNotSet {
		c.WithField("err", err).Error("redis.SetNX failed")
		return false, err
	}

	holder, err := im.redis.Get(c, key)
	if err == redis.ErrNotFound {
		// expired between the two calls, try again on the next tick
		return false, nil
	} else if err != nil {
		c.WithField("err", err).Error("redis.Get failed")
		return false, err
	}
	if string(holder) != im.instanceId {
		return false, nil
	}
	if err := im.redis.Expire(c, key, im.leaseTtl); err != nil {
		c.WithField("err", err).Error("redis.Expire failed")
		return false, err
	}
	return true, nil
}

// RelayPending sends records one at a time since every transaction is signed
// by the same key and must take the next nonce.
func (im *relayerImpl) RelayPending(c ctx.Ctx) (int, error) {
	ok, err := im.acquireLease(c)
	if err != nil {
		return 0, err
	}
	if !ok {
		met.BumpSum("lease.held", 1)
		return 0, outbox.ErrLeaseHeld
	}

	records, err := im.repo.FindAll(c, outbox.WithStatus(outbox.StatusPending), outbox.WithPagination(0, im.batchSize))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return 0, err
	}

	sent := 0
	// settlements halted earlier in this batch, their records here are stale
	halted := map[string]bool{}
	for _, record := range records {
		if c.Err() != nil {
			return sent, c.Err()
		}
		if halted[record.SettlementId] {
			continue
		}

		blocker, err := im.blocker(c, record)
		if err != nil {
			return sent, err
		}
		if blocker != nil {
			if blocker.Status == outbox.StatusFailed || blocker.Status == outbox.StatusAborted {
				halted[record.SettlementId] = true
				if err := im.abortSettlement(c, blocker); err != nil {
					return sent, err
				}
			}
			continue
		}

		if err := im.relay(c, record); err != nil {
			return sent, err
		}
		switch record.Status {
		case outbox.StatusSent:
			sent++
		case outbox.StatusFailed:
			halted[record.SettlementId] = true
			if err := im.abortSettlement(c, record); err != nil {
				return sent, err
			}
		}
	}
	return sent, nil
}

// blocker returns the first earlier record of the same settlement that has
// not gone out yet, nil when the record may be sent.
func (im *relayerImpl) blocker(c ctx.Ctx, record *outbox.Record) (*outbox.Record, error) {
	if record.SettlementId == "" || record.Seq == 0 {
		return nil, nil
	}
	siblings, err := im.repo.FindAll(c, outbox.WithSettlementId(record.SettlementId))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return nil, err
	}
	for _, r := range siblings {
		if r.Seq >= record.Seq {
			continue
		}
		if r.Status != outbox.StatusSent && r.Status != outbox.StatusConfirmed {
			return r, nil
		}
	}
	return nil, nil
}

func (im *relayerImpl) relay(c ctx.Ctx, record *outbox.Record) error {
	c = ctx.WithValues(c, map[string]interface{}{
		"recordId":     record.Id,
		"settlementId": record.SettlementId,
		"offeringId":   record.OfferingId,
		"action":       record.Action,
	})
	defer met.BumpTime("relay.time", "kind", string(record.Message.Kind)).End()

	// Retry reads a non positive budget as unlimited
	if record.Attempts >= im.maxAttempts {
		return im.fail(c, record, outbox.ErrAttemptsExhausted)
	}

	attempts := 0
	b := backoff.NewExponential(im.retryStart, im.retryLimit)
	err := b.Retry(c, im.maxAttempts-record.Attempts, func() error {
		attempts++
		hash, err := im.executor.Execute(c, record.Message)
		if err != nil {
			c.WithFields(log.Fields{"err": err, "attempt": record.Attempts + attempts}).Warn("executor.Execute failed")
			return err
		}
		record.TxHash = hash
		return nil
	})
	record.Attempts += attempts

	switch {
	case err == nil:
		now := timeNow().UTC()
		record.Status = outbox.StatusSent
		record.UpdatedAt = now
		met.BumpSum("relay.sent", 1, "kind", string(record.Message.Kind))
		return im.patch(c, record, &outbox.RecordPatchable{
			Status:    &record.Status,
			Attempts:  &record.Attempts,
			TxHash:    &record.TxHash,
			UpdatedAt: &now,
		})
	case errors.Is(err, backoff.ErrPermanent) || record.Attempts >= im.maxAttempts:
		return im.fail(c, record, err)
	default:
		// context canceled, stays pending
		now := timeNow().UTC()
		record.LastError = err.Error()
		record.UpdatedAt = now
		return im.patch(c, record, &outbox.RecordPatchable{
			Attempts:  &record.Attempts,
			LastError: &record.LastError,
			UpdatedAt: &now,
		})
	}
}

func (im *relayerImpl) fail(c ctx.Ctx, record *outbox.Record, cause error) error {
	now := timeNow().UTC()
	record.Status = outbox.StatusFailed
	record.LastError = cause.Error()
	record.UpdatedAt = now
	met.BumpSum("relay.failed", 1, "kind", string(record.Message.Kind))
	c.WithFields(log.Fields{
		"recordId": record.Id,
		"attempts": record.Attempts,
		"err":      cause,
	}).Error("record failed permanently")
	return im.patch(c, record, &outbox.RecordPatchable{
		Status:    &record.Status,
		Attempts:  &record.Attempts,
		LastError: &record.LastError,
		UpdatedAt: &now,
	})
}

func (im *relayerImpl) patch(c ctx.Ctx, record *outbox.Record, patch *outbox.RecordPatchable) error {
	if err := im.repo.Patch(c, record.Id, patch); err != nil {
		c.WithFields(log.Fields{
			"recordId": record.Id,
			"err":      err,
		}).Error("repo.Patch failed")
		return err
	}
	return nil
}

// abortSettlement stops the pending messages of the settlement the failed
// record belongs to. Messages already sent cannot be taken back, so the
// settlement is reported for reconciliation.
func (im *relayerImpl) abortSettlement(c ctx.Ctx, failed *outbox.Record) error {
	if failed.SettlementId == "" {
		return nil
	}
	pending, err := im.repo.FindAll(c, outbox.WithSettlementId(failed.SettlementId), outbox.WithStatus(outbox.StatusPending))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := timeNow().UTC()
	status := outbox.StatusAborted
	reason := "aborted after message " + failed.Id + " failed"
	for _, r := range pending {
		r.Status = status
		r.LastError = reason
		if err := im.patch(c, r, &outbox.RecordPatchable{Status: &status, LastError: &reason, UpdatedAt: &now}); err != nil {
			return err
		}
	}
	met.BumpSum("settlement.aborted", 1, "action", failed.Action)
	c.WithFields(log.Fields{
		"settlementId": failed.SettlementId,
		"offeringId":   failed.OfferingId,
		"action":       failed.Action,
		"failedRecord": failed.Id,
		"aborted":      len(pending),
	}).Error("settlement needs reconciliation")
	return nil
}

type receiptResult struct {
	record  *outbox.Record
	mined   bool
	success bool
}

func (im *relayerImpl) ConfirmSent(c ctx.Ctx) (int, error) {
	records, err := im.repo.FindAll(c, outbox.WithStatus(outbox.StatusSent), outbox.WithPagination(0, im.batchSize))
	if err != nil {
		c.WithField("err", err).Error("repo.FindAll failed")
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	b := goroutines.NewBatch(im.confirmers, goroutines.WithBatchSize(len(records)))
	defer b.Close()
	for _, record := range records {
		r := record
		b.Queue(func() (interface{}, error) {
			rc, cancel := ctx.WithTimeout(c, receiptQueryTimeout)
			defer cancel()
			mined, success, err := im.executor.Receipt(rc, r.TxHash)
			if err != nil {
				return nil, err
			}
			return &receiptResult{record: r, mined: mined, success: success}, nil
		})
	}
	b.QueueComplete()

	settled := 0
	for ret := range b.Results() {
		if ret.Error() != nil {
			c.WithField("err", ret.Error()).Warn("executor.Receipt failed")
			continue
		}
		res := ret.Value().(*receiptResult)
		if !res.mined {
			continue
		}

		record := res.record
		if res.success {
			now := timeNow().UTC()
			status := outbox.StatusConfirmed
			if err := im.patch(c, record, &outbox.RecordPatchable{Status: &status, UpdatedAt: &now}); err != nil {
				return settled, err
			}
			settled++
			continue
		}

		// a revert spends an attempt, the record is sent again until none are left
		met.BumpSum("relay.reverted", 1, "kind", string(record.Message.Kind))
		record.Attempts++
		revert := xerrors.Errorf("transaction reverted: %s", record.TxHash)
		if record.Attempts >= im.maxAttempts {
			if err := im.fail(c, record, revert); err != nil {
				return settled, err
			}
			if err := im.abortSettlement(c, record); err != nil {
				return settled, err
			}
		} else {
			now := timeNow().UTC()
			status := outbox.StatusPending
			if err := im.patch(c, record, &outbox.RecordPatchable{
				Status:    &status,
				Attempts:  &record.Attempts,
				LastError: ptr.String(revert.Error()),
				UpdatedAt: &now,
			}); err != nil {
				return settled, err
			}
		}
		settled++
	}
	return settled, nil
}
