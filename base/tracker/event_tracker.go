package tracker

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"golang.org/x/xerrors"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/service/chain"
)

var met = metrics.New("tracker")

const (
	defaultBatchSize   = 5
	defaultMaxRange    = 2000
	tooManyLogsTimeout = 30 * time.Second
)

// Event is a log with the time of its block
type Event struct {
	types.Log
	BlockTime time.Time
}

type EventHandler interface {
	// Filter names the addresses and topics to track, the block range is set
	// by the tracker
	Filter() ethereum.FilterQuery
	ProcessEvents(ctx.Ctx, []Event) error
}

type Transactor interface {
	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}

type EventTrackerCfg struct {
	ChainId    domain.ChainId
	Client     chain.Client
	Transactor Transactor
	StateRepo  domain.TrackerStateRepo
	Handler    EventHandler

	// ContractAddress and Tag key the persisted progress
	ContractAddress domain.Address
	Tag             string
	// StartBlock is where a tracker without progress begins, zero for the
	// current block
	StartBlock     uint64
	FollowDistance uint64
	BatchSize      int
	// MaxRange caps the blocks read in one poll
	MaxRange uint64
}

type EventTracker struct {
	chainId        domain.ChainId
	client         chain.Client
	tx             Transactor
	stateRepo      domain.TrackerStateRepo
	handler        EventHandler
	id             domain.TrackerStateId
	startBlock     uint64
	followDistance uint64
	batchSize      int
	maxRange       uint64

	state *domain.TrackerState
}

func NewEventTracker(cfg *EventTrackerCfg) *EventTracker {
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	maxRange := cfg.MaxRange
	if maxRange == 0 {
		maxRange = defaultMaxRange
	}
	return &EventTracker{
		chainId:   cfg.ChainId,
		client:    cfg.Client,
		tx:        cfg.Transactor,
		stateRepo: cfg.StateRepo,
		handler:   cfg.Handler,
		id: domain.TrackerStateId{
			ChainId:         cfg.ChainId,
			ContractAddress: cfg.ContractAddress.ToLower(),
			Tag:             cfg.Tag,
		},
		startBlock:     cfg.StartBlock,
		followDistance: cfg.FollowDistance,
		batchSize:      batch,
		maxRange:       maxRange,
	}
}

// Run polls until c is done. Progress is stored with every batch so a failed
// poll is retried from where it stopped.
func (f *EventTracker) Run(c ctx.Ctx, interval time.Duration) {
	c = ctx.WithValues(c, map[string]interface{}{"tracker": f.id.Tag})
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := f.Poll(c); err != nil {
			c.WithField("err", err).Error("Poll failed")
		}

		select {
		case <-c.Done():
			c.Info("tracker stopped")
			return
		case <-ticker.C:
		}
	}
}

// Poll processes the confirmed blocks since the last poll
func (f *EventTracker) Poll(c ctx.Ctx) error {
	current, err := f.client.BlockNumber(c, f.chainId)
	if err != nil {
		c.WithField("err", err).Error("client.BlockNumber failed")
		return err
	}
	met.BumpAvg("chain.lastBlock", float64(current), "chainId", fmt.Sprint(f.chainId))
	if current < f.followDistance {
		return nil
	}
	target := current - f.followDistance

	if f.state == nil {
		state, err := f.setupTrackerState(c, target)
		if err != nil {
			c.WithField("err", err).Error("setupTrackerState failed")
			return err
		}
		f.state = state
	}

	start := f.state.LastBlockProcessed
	if start > target {
		return nil
	}
	end := target
	if end-start+1 > f.maxRange {
		end = start + f.maxRange - 1
	}

	if err := f.processBlkRange(c, newBlockRange(start, end)); err != nil {
		return err
	}
	met.BumpAvg("tracker.lastBlock", float64(f.state.LastBlockProcessed), "chainId", fmt.Sprint(f.chainId), "tag", f.id.Tag)
	return nil
}

func (f *EventTracker) setupTrackerState(c ctx.Ctx, target uint64) (*domain.TrackerState, error) {
	state, err := f.stateRepo.Get(c, &f.id)
	if err == nil {
		return state, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	begin := f.startBlock
	if begin == 0 {
		begin = target
	}
	state = &domain.TrackerState{
		ChainId:               f.id.ChainId,
		ContractAddress:       f.id.ContractAddress,
		Tag:                   f.id.Tag,
		LastBlockProcessed:    begin,
		LastLogIndexProcessed: -1,
	}
	if err := f.stateRepo.Upsert(c, state); err != nil {
		return nil, err
	}
	c.WithFields(log.Fields{
		"chainId": f.id.ChainId,
		"tag":     f.id.Tag,
		"begin":   begin,
	}).Info("tracker state created")
	return state, nil
}

func (f *EventTracker) processBlkRange(c ctx.Ctx, blkRange *blockRange) error {
	filter := f.handler.Filter()
	ranges := []*blockRange{blkRange}
	for len(ranges) > 0 {
		idx := len(ranges) - 1
		r := ranges[idx]
		ranges = ranges[:idx]

		filter.FromBlock = r.begin
		filter.ToBlock = r.end
		tc, cancel := ctx.WithTimeout(c, tooManyLogsTimeout)
		logs, err := f.client.FilterLogs(tc, f.chainId, filter)
		cancel()
		if err != nil {
			if r.single() {
				c.WithFields(log.Fields{
					"err":   err,
					"range": r.String(),
				}).Error("client.FilterLogs failed within one block")
				return err
			}
			r1, r2 := r.split()
			ranges = append(ranges, r2, r1)
			c.WithFields(log.Fields{
				"err":   err,
				"range": r.String(),
			}).Info("splitting blockRange")
			continue
		}

		pending := logs[:0]
		for _, l := range logs {
			if l.Removed || f.state.Done(l.BlockNumber, l.Index) {
				continue
			}
			pending = append(pending, l)
		}

		events, err := f.withBlockTime(c, pending)
		if err != nil {
			return xerrors.Errorf("failed to inject block time: %w", err)
		}

		for i := 0; i < len(events); i += f.batchSize {
			j := i + f.batchSize
			if j > len(events) {
				j = len(events)
			}
			last := events[j-1]
			if err := f.processEvents(c, events[i:j], last.BlockNumber, int64(last.Index)); err != nil {
				c.WithField("err", err).Error("processEvents failed")
				return err
			}
		}
		met.BumpSum("events", float64(len(events)), "tag", f.id.Tag)

		if err := f.processEvents(c, nil, r.end.Uint64()+1, -1); err != nil {
			c.WithField("err", err).Error("processEvents failed")
			return err
		}
	}
	return nil
}

// processEvents runs the handler and stores the progress in one transaction.
// The in memory state moves only after the commit.
func (f *EventTracker) processEvents(c ctx.Ctx, events []Event, block uint64, logIndex int64) error {
	next := *f.state
	next.LastBlockProcessed = block
	next.LastLogIndexProcessed = logIndex

	if err := f.tx.RunWithTransaction(c, func(c ctx.Ctx) error {
		if len(events) > 0 {
			if err := f.handler.ProcessEvents(c, events); err != nil {
				return xerrors.Errorf("failed to process events: %w", err)
			}
		}
		if err := f.stateRepo.Upsert(c, &next); err != nil {
			return xerrors.Errorf("failed to store tracker state: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	f.state = &next
	return nil
}

func (f *EventTracker) withBlockTime(c ctx.Ctx, logs []types.Log) ([]Event, error) {
	var (
		lastBlk  uint64
		lastTime time.Time
	)
	events := make([]Event, len(logs))
	for idx, l := range logs {
		if idx == 0 || lastBlk != l.BlockNumber {
			h, err := f.client.HeaderByNumber(c, f.chainId, new(big.Int).SetUint64(l.BlockNumber))
			if err != nil {
				c.WithFields(log.Fields{
					"err":   err,
					"block": l.BlockNumber,
				}).Error("client.HeaderByNumber failed")
				return nil, err
			}
			lastBlk = l.BlockNumber
			lastTime = time.Unix(int64(h.Time), 0).UTC()
		}
		events[idx] = Event{Log: l, BlockTime: lastTime}
	}
	return events, nil
}
