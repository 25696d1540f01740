package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type bidOfferingImpl struct {
	q query.Mongo
}

func NewBidOfferingRepo(q query.Mongo) market.BidOfferingRepo {
	return &bidOfferingImpl{q}
}

func (im *bidOfferingImpl) FindOne(c ctx.Ctx, offeringId string) (*market.BidOffering, error) {
	res := market.BidOffering{}
	if err := im.q.FindOne(c, domain.TableBidOfferings, bson.M{"offeringId": offeringId}, &res); err == query.ErrNotFound {
		return nil, market.ErrOfferingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"offeringId": offeringId,
			"err":        err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *bidOfferingImpl) Upsert(c ctx.Ctx, bid *market.BidOffering) error {
	if bid.Address != nil {
		bid.Address = bid.Address.ToLowerPtr()
	}

	if err := im.q.Upsert(c, domain.TableBidOfferings, bson.M{"offeringId": bid.OfferingId}, bid); err != nil {
		c.WithFields(log.Fields{
			"bid": *bid,
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

// Remove is a no-op for fixed price offerings, which never had auction state.
func (im *bidOfferingImpl) Remove(c ctx.Ctx, offeringId string) error {
	if _, err := im.q.RemoveAll(c, domain.TableBidOfferings, bson.M{"offeringId": offeringId}); err != nil {
		c.WithFields(log.Fields{
			"offeringId": offeringId,
			"err":        err,
		}).Error("q.RemoveAll failed")
		return err
	}
	return nil
}
