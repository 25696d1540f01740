package usecase

import (
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/chain/contract"
)

// royaltyInfo is quoted for this notional price so the returned amount
// keeps eighteen decimals of the share.
var royaltyQuotePrice = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

type RoyaltyRegistryCfg struct {
	ChainId domain.ChainId
	Erc2981 contract.Erc2981Contract
	Cache   cache.Service
	// Overrides take precedence over on chain royalty info, keyed by lower case address
	Overrides map[domain.Address]market.Royalty
}

type royaltyImpl struct {
	chainId   domain.ChainId
	erc2981   contract.Erc2981Contract
	cache     cache.Service
	overrides map[domain.Address]market.Royalty
}

// cachedRoyalty lets a collection without royalty be cached as well.
type cachedRoyalty struct {
	Royalty *market.Royalty `json:"royalty"`
}

func NewRoyaltyRegistry(cfg *RoyaltyRegistryCfg) market.CollectionRegistry {
	overrides := map[domain.Address]market.Royalty{}
	for addr, r := range cfg.Overrides {
		overrides[addr.ToLower()] = r
	}
	return &royaltyImpl{
		chainId:   cfg.ChainId,
		erc2981:   cfg.Erc2981,
		cache:     cfg.Cache,
		overrides: overrides,
	}
}

func (im *royaltyImpl) RoyaltyInfo(c ctx.Ctx, nftAddress domain.Address) (*market.Royalty, error) {
	return im.lookup(c, nftAddress, im.cache.GetByFunc, "cache.GetByFunc failed")
}

// RoyaltySnapshot reads the chain even when a cached answer exists, and
// refreshes the cache with what it read.
func (im *royaltyImpl) RoyaltySnapshot(c ctx.Ctx, nftAddress domain.Address) (*market.Royalty, error) {
	return im.lookup(c, nftAddress, im.cache.Refresh, "cache.Refresh failed")
}

type cacheRead func(c ctx.Ctx, key string, container interface{}, load cache.Loader) error

func (im *royaltyImpl) lookup(c ctx.Ctx, nftAddress domain.Address, read cacheRead, failure string) (*market.Royalty, error) {
	nftAddress = nftAddress.ToLower()
	if r, ok := im.overrides[nftAddress]; ok {
		return &r, nil
	}

	res := cachedRoyalty{}
	if err := read(c, nftAddress.ToLowerStr(), &res, func() (interface{}, error) {
		r, err := im.fetch(c, nftAddress)
		if err != nil {
			return nil, err
		}
		return &cachedRoyalty{Royalty: r}, nil
	}); err != nil {
		c.WithFields(log.Fields{
			"nftAddress": nftAddress,
			"err":        err,
		}).Error(failure)
		return nil, err
	}
	return res.Royalty, nil
}

func (im *royaltyImpl) fetch(c ctx.Ctx, nftAddress domain.Address) (*market.Royalty, error) {
	// without a chain only overrides apply
	if im.erc2981 == nil {
		return nil, nil
	}
	supported, err := im.erc2981.SupportsRoyalty(c, im.chainId, nftAddress.ToLowerStr())
	if err != nil {
		c.WithFields(log.Fields{
			"nftAddress": nftAddress,
			"err":        err,
		}).Error("erc2981.SupportsRoyalty failed")
		return nil, err
	}
	if !supported {
		return nil, nil
	}

	receiver, amount, err := im.erc2981.RoyaltyInfo(c, im.chainId, nftAddress.ToLowerStr(), big.NewInt(0), royaltyQuotePrice)
	if err != nil {
		c.WithFields(log.Fields{
			"nftAddress": nftAddress,
			"err":        err,
		}).Error("erc2981.RoyaltyInfo failed")
		return nil, err
	}

	receiverAddr := domain.Address(receiver).ToLower()
	if amount.Sign() == 0 || receiverAddr == domain.EmptyAddress {
		return nil, nil
	}

	share, err := market.NewFraction(decimal.NewFromBigInt(amount, -18))
	if err != nil {
		c.WithFields(log.Fields{
			"nftAddress": nftAddress,
			"amount":     amount.String(),
			"err":        err,
		}).Error("market.NewFraction failed")
		return nil, err
	}

	return &market.Royalty{PaymentAddress: receiverAddr, Share: share}, nil
}
