package repository

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

// contract_items holds one document per singleton, {key, value}.
const (
	keyContractInfo   = "contract_info"
	keyAdmin          = "admin"
	keyNftContracts   = "nft_contracts"
	keyVersion        = "contract_version"
	keyOfferingsCount = "offerings_count"
)

type item struct {
	Key   string        `bson:"key"`
	Value bson.RawValue `bson:"value"`
}

type counter struct {
	Key   string `bson:"key"`
	Value int64  `bson:"value"`
}

type contractImpl struct {
	q query.Mongo
}

func NewContractRepo(q query.Mongo) market.ContractRepo {
	return &contractImpl{q}
}

func (im *contractImpl) get(c ctx.Ctx, key string, out interface{}) error {
	res := item{}
	if err := im.q.FindOne(c, domain.TableContractItems, bson.M{"key": key}, &res); err != nil {
		if err != query.ErrNotFound {
			c.WithFields(log.Fields{
				"key": key,
				"err": err,
			}).Error("q.FindOne failed")
		}
		return err
	}
	if err := res.Value.Unmarshal(out); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("Value.Unmarshal failed")
		return err
	}
	return nil
}

func (im *contractImpl) set(c ctx.Ctx, key string, value interface{}) error {
	doc := bson.M{"key": key, "value": value}
	if err := im.q.Upsert(c, domain.TableContractItems, bson.M{"key": key}, doc); err != nil {
		c.WithFields(log.Fields{
			"key": key,
			"err": err,
		}).Error("q.Upsert failed")
		return err
	}
	return nil
}

func (im *contractImpl) GetContractInfo(c ctx.Ctx) (*market.ContractInfo, error) {
	res := market.ContractInfo{}
	if err := im.get(c, keyContractInfo, &res); err == query.ErrNotFound {
		return nil, market.ErrNotInstantiated
	} else if err != nil {
		return nil, err
	}
	return &res, nil
}

func (im *contractImpl) SetContractInfo(c ctx.Ctx, info market.ContractInfo) error {
	return im.set(c, keyContractInfo, info)
}

func (im *contractImpl) GetAdmin(c ctx.Ctx) (domain.Address, error) {
	var res string
	if err := im.get(c, keyAdmin, &res); err == query.ErrNotFound {
		return "", market.ErrNotInstantiated
	} else if err != nil {
		return "", err
	}
	return domain.Address(res), nil
}

func (im *contractImpl) SetAdmin(c ctx.Ctx, admin domain.Address) error {
	return im.set(c, keyAdmin, admin.ToLowerStr())
}

func (im *contractImpl) GetNftContracts(c ctx.Ctx) ([]domain.Address, error) {
	res := []domain.Address{}
	if err := im.get(c, keyNftContracts, &res); err == query.ErrNotFound {
		return []domain.Address{}, nil
	} else if err != nil {
		return nil, err
	}
	return res, nil
}

func (im *contractImpl) SetNftContracts(c ctx.Ctx, addresses []domain.Address) error {
	lowered := make([]domain.Address, 0, len(addresses))
	for _, a := range addresses {
		lowered = append(lowered, a.ToLower())
	}
	return im.set(c, keyNftContracts, lowered)
}

func (im *contractImpl) GetVersion(c ctx.Ctx) (*market.Version, error) {
	res := market.Version{}
	if err := im.get(c, keyVersion, &res); err == query.ErrNotFound {
		return nil, market.ErrNotInstantiated
	} else if err != nil {
		return nil, err
	}
	return &res, nil
}

func (im *contractImpl) SetVersion(c ctx.Ctx, version market.Version) error {
	return im.set(c, keyVersion, version)
}

func (im *contractImpl) IncrementOfferingsCount(c ctx.Ctx) (uint64, error) {
	res := counter{}
	if err := im.q.Increment(c, domain.TableContractItems, bson.M{"key": keyOfferingsCount}, &res, "value", int64(1)); err != nil {
		c.WithField("err", err).Error("q.Increment failed")
		return 0, err
	}
	return uint64(res.Value), nil
}

func (im *contractImpl) GetOfferingsCount(c ctx.Ctx) (uint64, error) {
	res := counter{}
	if err := im.q.FindOne(c, domain.TableContractItems, bson.M{"key": keyOfferingsCount}, &res); err == query.ErrNotFound {
		return 0, nil
	} else if err != nil {
		c.WithField("err", err).Error("q.FindOne failed")
		return 0, err
	}
	return uint64(res.Value), nil
}
