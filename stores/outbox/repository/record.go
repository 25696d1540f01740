package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/database/mongoclient"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/outbox"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

type recordImpl struct {
	q query.Mongo
}

func NewRecordRepo(q query.Mongo) outbox.Repo {
	return &recordImpl{q}
}

func (im *recordImpl) Insert(c ctx.Ctx, record *outbox.Record) error {
	if err := im.q.Insert(c, domain.TableSettlementMessages, record); err != nil {
		c.WithFields(log.Fields{
			"record": *record,
			"err":    err,
		}).Error("q.Insert failed")
		return err
	}
	return nil
}

func (im *recordImpl) FindOne(c ctx.Ctx, id string) (*outbox.Record, error) {
	res := outbox.Record{}
	if err := im.q.FindOne(c, domain.TableSettlementMessages, bson.M{"id": id}, &res); err != nil {
		if err != query.ErrNotFound {
			c.WithFields(log.Fields{
				"id":  id,
				"err": err,
			}).Error("q.FindOne failed")
		}
		return nil, err
	}
	return &res, nil
}

func (im *recordImpl) FindAll(c ctx.Ctx, optFns ...outbox.FindAllOptionsFunc) ([]*outbox.Record, error) {
	res := []*outbox.Record{}

	opts, err := outbox.GetFindAllOptions(optFns...)
	if err != nil {
		c.WithField("err", err).Error("outbox.GetFindAllOptions failed")
		return nil, err
	}

	offset := 0
	limit := 0

	if opts.Offset != nil {
		offset = *opts.Offset
	}

	if opts.Limit != nil {
		limit = *opts.Limit
	}

	q := bson.M{}

	if opts.Status != nil {
		q["status"] = *opts.Status
	}

	if opts.OfferingId != nil {
		q["offeringId"] = *opts.OfferingId
	}

	if opts.SettlementId != nil {
		q["settlementId"] = *opts.SettlementId
	}

	sort := []string{"createdAt", "seq"}
	if err := im.q.SearchNSorts(c, domain.TableSettlementMessages, offset, limit, sort, q, &res); err != nil {
		c.WithFields(log.Fields{
			"query": q,
			"err":   err,
		}).Error("q.SearchNSorts failed")
		return nil, err
	}
	return res, nil
}

func (im *recordImpl) Patch(c ctx.Ctx, id string, patchable *outbox.RecordPatchable) error {
	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		c.WithFields(log.Fields{
			"patchable": *patchable,
			"err":       err,
		}).Error("mongoclient.MakeBsonM failed")
		return err
	}

	if err := im.q.Patch(c, domain.TableSettlementMessages, bson.M{"id": id}, updater); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("q.Patch failed")
		return err
	}
	return nil
}
