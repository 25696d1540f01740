package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

func makeFindQuery(opts market.OfferingFindAllOptions) bson.M {
	q := bson.M{}

	if opts.Seller != nil {
		q["seller"] = opts.Seller.ToLowerStr()
	}

	if opts.NftAddress != nil {
		q["nftAddress"] = opts.NftAddress.ToLowerStr()
	}

	if opts.TokenId != nil {
		q["tokenId"] = *opts.TokenId
	}

	if opts.SaleKind != nil {
		q["saleType.kind"] = *opts.SaleKind
	}

	return q
}

type offeringImpl struct {
	q query.Mongo
}

func NewOfferingRepo(q query.Mongo) market.OfferingRepo {
	return &offeringImpl{q}
}

func (im *offeringImpl) FindOne(c ctx.Ctx, id string) (*market.Offering, error) {
	res := market.Offering{}
	if err := im.q.FindOne(c, domain.TableOfferings, bson.M{"offeringId": id}, &res); err == query.ErrNotFound {
		return nil, market.ErrOfferingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.FindOne failed")
		return nil, err
	}
	return &res, nil
}

func (im *offeringImpl) FindAll(c ctx.Ctx, optFns ...market.OfferingFindAllOptionsFunc) ([]*market.Offering, error) {
	res := []*market.Offering{}

	opts, err := market.GetOfferingFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("market.GetOfferingFindAllOptions failed")
		return nil, err
	}

	offset := 0
	limit := 0
	sort := "offeringId"

	if opts.Offset != nil {
		offset = *opts.Offset
	}

	if opts.Limit != nil {
		limit = *opts.Limit
	}

	if opts.SortBy != nil {
		sort = *opts.SortBy
	}

	q := makeFindQuery(opts)
	if err := im.q.Search(c, domain.TableOfferings, offset, limit, sort, q, &res); err != nil {
		c.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("q.Search failed")
		return nil, err
	}

	return res, nil
}

func (im *offeringImpl) Count(c ctx.Ctx, optFns ...market.OfferingFindAllOptionsFunc) (int, error) {
	opts, err := market.GetOfferingFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("market.GetOfferingFindAllOptions failed")
		return 0, err
	}

	q := makeFindQuery(opts)
	count, err := im.q.Count(c, domain.TableOfferings, q)
	if err != nil {
		c.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("q.Count failed")
		return 0, err
	}
	return count, nil
}

func (im *offeringImpl) Upsert(c ctx.Ctx, offering *market.Offering) error {
	offering.Seller = offering.Seller.ToLower()
	offering.NftAddress = offering.NftAddress.ToLower()

	if err := im.q.Upsert(c, domain.TableOfferings, bson.M{"offeringId": offering.Id}, offering); err != nil {
		c.WithFields(log.Fields{
			"offering": *offering,
			"err":      err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *offeringImpl) Remove(c ctx.Ctx, id string) error {
	if err := im.q.Remove(c, domain.TableOfferings, bson.M{"offeringId": id}); err == query.ErrNotFound {
		return market.ErrOfferingNotFound
	} else if err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Remove failed")
		return err
	}
	return nil
}
