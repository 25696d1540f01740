package usecase

import (
	"strconv"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain/market"
)

type RegistryCfg struct {
	OfferingRepo    market.OfferingRepo
	BidOfferingRepo market.BidOfferingRepo
	ContractRepo    market.ContractRepo
}

type impl struct {
	offering    market.OfferingRepo
	bidOffering market.BidOfferingRepo
	contract    market.ContractRepo
}

func NewRegistry(cfg *RegistryCfg) market.Registry {
	return &impl{
		offering:    cfg.OfferingRepo,
		bidOffering: cfg.BidOfferingRepo,
		contract:    cfg.ContractRepo,
	}
}

func (im *impl) NextId(c ctx.Ctx) (string, error) {
	n, err := im.contract.IncrementOfferingsCount(c)
	if err != nil {
		c.WithField("err", err).Error("contract.IncrementOfferingsCount failed")
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

func (im *impl) CreateListing(c ctx.Ctx, params market.CreateListingParams) (*market.Offering, error) {
	if err := params.SaleType.Validate(); err != nil {
		c.WithFields(log.Fields{
			"saleType": params.SaleType,
			"err":      err,
		}).Error("invalid sale type")
		return nil, err
	}

	if params.SaleType.IsFixedPrice() && params.SaleType.FixedPrice.IsZero() {
		return nil, market.ErrPriceMustBePositive
	}

	id, err := im.NextId(c)
	if err != nil {
		return nil, err
	}

	offering := &market.Offering{
		Id:          id,
		TokenId:     params.TokenId,
		NftAddress:  params.NftAddress,
		RoyaltyInfo: params.RoyaltyInfo,
		Seller:      params.Seller,
		SaleType:    params.SaleType,
		ListingTime: params.Now,
	}
	if err := im.offering.Upsert(c, offering); err != nil {
		c.WithFields(log.Fields{
			"offering": offering,
			"err":      err,
		}).Error("offering.Upsert failed")
		return nil, err
	}

	if offering.SaleType.IsAuction() {
		bid := &market.BidOffering{OfferingId: id, StartTimestamp: params.Now}
		if err := im.bidOffering.Upsert(c, bid); err != nil {
			c.WithFields(log.Fields{
				"offeringId": id,
				"err":        err,
			}).Error("bidOffering.Upsert failed")
			return nil, err
		}
	}

	return offering, nil
}

func (im *impl) RemoveListing(c ctx.Ctx, id string) error {
	if err := im.offering.Remove(c, id); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("offering.Remove failed")
		return err
	}
	if err := im.bidOffering.Remove(c, id); err != nil {
		c.WithFields(log.Fields{
			"id":  id,
			"err": err,
		}).Error("bidOffering.Remove failed")
		return err
	}
	return nil
}

func (im *impl) GetOffering(c ctx.Ctx, id string) (*market.Offering, error) {
	return im.offering.FindOne(c, id)
}

func (im *impl) SaveOffering(c ctx.Ctx, offering *market.Offering) error {
	return im.offering.Upsert(c, offering)
}

func (im *impl) GetBidOffering(c ctx.Ctx, id string) (*market.BidOffering, error) {
	return im.bidOffering.FindOne(c, id)
}

func (im *impl) SaveBidOffering(c ctx.Ctx, bid *market.BidOffering) error {
	return im.bidOffering.Upsert(c, bid)
}

func (im *impl) FindAll(c ctx.Ctx, opts ...market.OfferingFindAllOptionsFunc) ([]*market.Offering, error) {
	return im.offering.FindAll(c, opts...)
}

func (im *impl) Count(c ctx.Ctx, opts ...market.OfferingFindAllOptionsFunc) (int, error) {
	return im.offering.Count(c, opts...)
}
