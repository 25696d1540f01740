package domain

import (
	"github.com/x-xyz/marketplace/base/ctx"
)

// TrackerState is how far a log tracker got. Logs up to and including
// LastLogIndexProcessed of block LastBlockProcessed are done, -1 means the
// block itself is still to do.
type TrackerState struct {
	ChainId               ChainId `bson:"chainId"`
	ContractAddress       Address `bson:"contractAddress"`
	Tag                   string  `bson:"tag"`
	LastBlockProcessed    uint64  `bson:"lastBlockProcessed"`
	LastLogIndexProcessed int64   `bson:"lastLogIndexProcessed"`
}

func (s *TrackerState) ToId() *TrackerStateId {
	return &TrackerStateId{
		ChainId:         s.ChainId,
		ContractAddress: s.ContractAddress,
		Tag:             s.Tag,
	}
}

// Done reports whether the log at (block, index) was handled already
func (s *TrackerState) Done(block uint64, index uint) bool {
	if block != s.LastBlockProcessed {
		return block < s.LastBlockProcessed
	}
	return int64(index) <= s.LastLogIndexProcessed
}

type TrackerStateId struct {
	ChainId         ChainId `bson:"chainId"`
	ContractAddress Address `bson:"contractAddress"`
	Tag             string  `bson:"tag"`
}

type TrackerStateRepo interface {
	// Get returns ErrNotFound for a tracker that never ran
	Get(ctx.Ctx, *TrackerStateId) (*TrackerState, error)
	Upsert(ctx.Ctx, *TrackerState) error
}
