package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type depositImpl struct {
	q query.Mongo
}

func NewDepositRepo(q query.Mongo) market.DepositRepo {
	return &depositImpl{q}
}

func (im *depositImpl) FindOne(c ctx.Ctx, txHash domain.TxHash) (*market.Deposit, error) {
	res := market.Deposit{}
	if err := im.q.FindOne(c, domain.TableDeposits, bson.M{"txHash": txHash.ToLower()}, &res); err == query.ErrNotFound {
		return nil, market.ErrDepositNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"txHash": txHash,
			"err":    err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

// Insert relies on the unique txHash index under mongo, the lookup covers the
// in process store which has no indexes.
func (im *depositImpl) Insert(c ctx.Ctx, deposit *market.Deposit) error {
	deposit.TxHash = deposit.TxHash.ToLower()
	if _, err := im.FindOne(c, deposit.TxHash); err == nil {
		return market.ErrDepositClaimed
	} else if err != market.ErrDepositNotFound {
		return err
	}

	if err := im.q.Insert(c, domain.TableDeposits, deposit); err == query.ErrDuplicateKey {
		return market.ErrDepositClaimed
	} else if err != nil {
		c.WithFields(log.Fields{
			"deposit": *deposit,
			"err":     err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}
