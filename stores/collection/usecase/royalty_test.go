package usecase

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
	"github.com/x-xyz/marketplace/service/chain/contract/mocks"
)

const chainId = domain.ChainId(1)

type royaltySuite struct {
	suite.Suite

	erc2981  *mocks.Erc2981Contract
	registry market.CollectionRegistry
}

func TestRoyaltySuite(t *testing.T) {
	suite.Run(t, new(royaltySuite))
}

func (s *royaltySuite) SetupTest() {
	s.erc2981 = mocks.NewErc2981Contract(s.T())
	s.registry = NewRoyaltyRegistry(&RoyaltyRegistryCfg{
		ChainId: chainId,
		Erc2981: s.erc2981,
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxRoyalty,
			Cache: primitive.NewPrimitive("royalty", 1),
		}),
		Overrides: map[domain.Address]market.Royalty{
			"0xOVERRIDE": {PaymentAddress: "0xdao", Share: market.MustParseFraction("0.1")},
		},
	})
}

func (s *royaltySuite) TestOnChainRoyaltyIsCached() {
	c := ctx.Background()
	nft := "0xabc"
	payee := "0x00000000000000000000000000000000000000Aa"
	// 2.5% of 1e18
	amount, _ := new(big.Int).SetString("25000000000000000", 10)

	s.erc2981.On("SupportsRoyalty", mock.Anything, chainId, nft).Return(true, nil).Once()
	s.erc2981.On("RoyaltyInfo", mock.Anything, chainId, nft, big.NewInt(0), royaltyQuotePrice).Return(payee, amount, nil).Once()

	for i := 0; i < 2; i++ {
		r, err := s.registry.RoyaltyInfo(c, "0xABC")
		s.NoError(err)
		s.Require().NotNil(r)
		s.Equal(domain.Address(payee).ToLower(), r.PaymentAddress)
		s.Equal("0.025", r.Share.String())
	}
}

func (s *royaltySuite) TestSnapshotReadsPastStaleCache() {
	c := ctx.Background()
	nft := "0xchanged"
	oldPayee := "0x00000000000000000000000000000000000000Aa"
	newPayee := "0x00000000000000000000000000000000000000Bb"
	fivePercent, _ := new(big.Int).SetString("50000000000000000", 10)
	tenPercent, _ := new(big.Int).SetString("100000000000000000", 10)

	s.erc2981.On("SupportsRoyalty", mock.Anything, chainId, nft).Return(true, nil).Twice()
	s.erc2981.On("RoyaltyInfo", mock.Anything, chainId, nft, big.NewInt(0), royaltyQuotePrice).Return(oldPayee, fivePercent, nil).Once()

	r, err := s.registry.RoyaltyInfo(c, domain.Address(nft))
	s.Require().NoError(err)
	s.Equal("0.05", r.Share.String())

	// the collection owner changes the royalty after it was cached
	s.erc2981.On("RoyaltyInfo", mock.Anything, chainId, nft, big.NewInt(0), royaltyQuotePrice).Return(newPayee, tenPercent, nil).Once()

	r, err = s.registry.RoyaltySnapshot(c, domain.Address(nft))
	s.Require().NoError(err)
	s.Equal(domain.Address(newPayee).ToLower(), r.PaymentAddress)
	s.Equal("0.1", r.Share.String())

	// the cached answer was replaced as well
	r, err = s.registry.RoyaltyInfo(c, domain.Address(nft))
	s.Require().NoError(err)
	s.Equal(domain.Address(newPayee).ToLower(), r.PaymentAddress)
}

func (s *royaltySuite) TestSnapshotFailsWhenChainIsDown() {
	errRpc := errors.New("rpc down")
	s.erc2981.On("SupportsRoyalty", mock.Anything, chainId, "0xdown").Return(false, errRpc).Once()

	_, err := s.registry.RoyaltySnapshot(ctx.Background(), "0xdown")
	s.ErrorIs(err, errRpc)
}

func (s *royaltySuite) TestSnapshotHonoursOverride() {
	r, err := s.registry.RoyaltySnapshot(ctx.Background(), "0xOverride")
	s.NoError(err)
	s.Equal(domain.Address("0xdao"), r.PaymentAddress)
}

func (s *royaltySuite) TestCollectionWithoutRoyalty() {
	c := ctx.Background()

	s.erc2981.On("SupportsRoyalty", mock.Anything, chainId, "0xnone").Return(false, nil).Once()

	r, err := s.registry.RoyaltyInfo(c, "0xnone")
	s.NoError(err)
	s.Nil(r)

	// the negative answer is cached too
	r, err = s.registry.RoyaltyInfo(c, "0xnone")
	s.NoError(err)
	s.Nil(r)
}

func (s *royaltySuite) TestZeroRoyalty() {
	c := ctx.Background()

	s.erc2981.On("SupportsRoyalty", mock.Anything, chainId, "0xzero").Return(true, nil).Once()
	s.erc2981.On("RoyaltyInfo", mock.Anything, chainId, "0xzero", mock.Anything, mock.Anything).
		Return(string(domain.EmptyAddress), big.NewInt(0), nil).Once()

	r, err := s.registry.RoyaltyInfo(c, "0xzero")
	s.NoError(err)
	s.Nil(r)
}

func (s *royaltySuite) TestOverride() {
	r, err := s.registry.RoyaltyInfo(ctx.Background(), "0xoverride")
	s.NoError(err)
	s.Equal(domain.Address("0xdao"), r.PaymentAddress)
	s.Equal("0.1", r.Share.String())
}

func (s *royaltySuite) TestChainError() {
	errRpc := errors.New("rpc down")
	s.erc2981.On("SupportsRoyalty", mock.Anything, chainId, "0xdown").Return(false, errRpc).Once()

	_, err := s.registry.RoyaltyInfo(ctx.Background(), "0xdown")
	s.ErrorIs(err, errRpc)
}

func (s *royaltySuite) TestWithoutChain() {
	registry := NewRoyaltyRegistry(&RoyaltyRegistryCfg{
		Cache: cache.New(cache.ServiceConfig{
			Ttl:   time.Minute,
			Pfx:   keys.PfxRoyalty,
			Cache: primitive.NewPrimitive("royalty", 1),
		}),
	})
	r, err := registry.RoyaltyInfo(ctx.Background(), "0xnft")
	s.NoError(err)
	s.Nil(r)
}
