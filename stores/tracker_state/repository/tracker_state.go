package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type trackerStateRepo struct {
	q query.Mongo
}

func NewTrackerStateRepo(q query.Mongo) domain.TrackerStateRepo {
	return &trackerStateRepo{q}
}

func selectorOf(id *domain.TrackerStateId) bson.M {
	return bson.M{
		"chainId":         id.ChainId,
		"contractAddress": id.ContractAddress.ToLower(),
		"tag":             id.Tag,
	}
}

func (r *trackerStateRepo) Get(c ctx.Ctx, id *domain.TrackerStateId) (*domain.TrackerState, error) {
	state := &domain.TrackerState{}
	if err := r.q.FindOne(c, domain.TableTrackerStates, selectorOf(id), state); err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  *id,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return state, nil
}

// Upsert replaces the whole document, a patch would skip a zero log index
func (r *trackerStateRepo) Upsert(c ctx.Ctx, state *domain.TrackerState) error {
	state.ContractAddress = state.ContractAddress.ToLower()
	if err := r.q.Upsert(c, domain.TableTrackerStates, selectorOf(state.ToId()), state); err != nil {
		c.WithFields(log.Fields{
			"err": err,
			"id":  *state.ToId(),
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}
