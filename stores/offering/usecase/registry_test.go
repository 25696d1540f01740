package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/domain/market/mocks"
	"github.com/x-xyz/marketplace/service/query"
	contractRepository "github.com/x-xyz/marketplace/stores/contract/repository"
	offeringRepository "github.com/x-xyz/marketplace/stores/offering/repository"
)

type registrySuite struct {
	suite.Suite

	q        query.Mongo
	registry market.Registry
	now      time.Time
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(registrySuite))
}

func (s *registrySuite) SetupTest() {
	s.q = query.NewMemory()
	s.registry = NewRegistry(&RegistryCfg{
		OfferingRepo:    offeringRepository.NewOfferingRepo(s.q),
		BidOfferingRepo: offeringRepository.NewBidOfferingRepo(s.q),
		ContractRepo:    contractRepository.NewContractRepo(s.q),
	})
	s.now = time.Date(2022, 5, 1, 0, 0, 0, 0, time.UTC)
}

func (s *registrySuite) params(saleType market.SaleType) market.CreateListingParams {
	return market.CreateListingParams{
		TokenId:    "42",
		NftAddress: "0xnft",
		Seller:     "0xseller",
		SaleType:   saleType,
		Now:        s.now,
	}
}

func (s *registrySuite) TestNextIdIsSequential() {
	c := ctx.Background()
	for _, want := range []string{"1", "2", "3"} {
		id, err := s.registry.NextId(c)
		s.NoError(err)
		s.Equal(want, id)
	}
}

func (s *registrySuite) TestCreateFixedPriceListing() {
	c := ctx.Background()

	o, err := s.registry.CreateListing(c, s.params(market.NewFixedPrice(market.NewAmount(100))))
	s.NoError(err)
	s.Equal("1", o.Id)

	got, err := s.registry.GetOffering(c, "1")
	s.NoError(err)
	s.Equal("42", got.TokenId.String())
	s.True(s.now.Equal(got.ListingTime))

	_, err = s.registry.GetBidOffering(c, "1")
	s.ErrorIs(err, market.ErrOfferingNotFound)
}

func (s *registrySuite) TestCreateAuctionListing() {
	c := ctx.Background()

	auction := market.NewAuction(market.AuctionTerms{StartPrice: market.NewAmount(10), Expiration: market.AtHeight(100)})
	o, err := s.registry.CreateListing(c, s.params(auction))
	s.NoError(err)

	bid, err := s.registry.GetBidOffering(c, o.Id)
	s.NoError(err)
	s.False(bid.HasBid())
	s.True(s.now.Equal(bid.StartTimestamp))
}

func (s *registrySuite) TestCreateListingRejectsZeroPrice() {
	c := ctx.Background()

	_, err := s.registry.CreateListing(c, s.params(market.NewFixedPrice(market.NewAmount(0))))
	s.ErrorIs(err, market.ErrPriceMustBePositive)

	_, err = s.registry.CreateListing(c, s.params(market.SaleType{Kind: "dutch"}))
	s.ErrorIs(err, market.ErrInvalidSaleType)

	// no id was consumed
	id, err := s.registry.NextId(c)
	s.NoError(err)
	s.Equal("1", id)
}

func (s *registrySuite) TestRemoveListing() {
	c := ctx.Background()

	auction := market.NewAuction(market.AuctionTerms{StartPrice: market.NewAmount(10), Expiration: market.Never()})
	o, err := s.registry.CreateListing(c, s.params(auction))
	s.NoError(err)

	s.NoError(s.registry.RemoveListing(c, o.Id))
	_, err = s.registry.GetOffering(c, o.Id)
	s.ErrorIs(err, market.ErrOfferingNotFound)
	_, err = s.registry.GetBidOffering(c, o.Id)
	s.ErrorIs(err, market.ErrOfferingNotFound)

	s.ErrorIs(s.registry.RemoveListing(c, o.Id), market.ErrOfferingNotFound)
}

func (s *registrySuite) TestFindAll() {
	c := ctx.Background()

	_, err := s.registry.CreateListing(c, s.params(market.NewFixedPrice(market.NewAmount(1))))
	s.NoError(err)
	p := s.params(market.NewFixedPrice(market.NewAmount(2)))
	p.Seller = "0xother"
	_, err = s.registry.CreateListing(c, p)
	s.NoError(err)

	res, err := s.registry.FindAll(c, market.OfferingWithSeller("0xother"))
	s.NoError(err)
	s.Len(res, 1)
	s.Equal("2", res[0].Id)

	count, err := s.registry.Count(c)
	s.NoError(err)
	s.Equal(2, count)
}

func TestCreateListingStopsOnStorageError(t *testing.T) {
	req := require.New(t)
	errStore := errors.New("store down")

	offerings := mocks.NewOfferingRepo(t)
	bids := mocks.NewBidOfferingRepo(t)
	contract := mocks.NewContractRepo(t)
	contract.On("IncrementOfferingsCount", mock.Anything).Return(uint64(5), nil).Once()
	offerings.On("Upsert", mock.Anything, mock.MatchedBy(func(o *market.Offering) bool {
		return o.Id == "5"
	})).Return(errStore).Once()

	registry := NewRegistry(&RegistryCfg{OfferingRepo: offerings, BidOfferingRepo: bids, ContractRepo: contract})
	_, err := registry.CreateListing(ctx.Background(), market.CreateListingParams{
		TokenId:  "1",
		SaleType: market.NewAuction(market.AuctionTerms{StartPrice: market.NewAmount(1), Expiration: market.Never()}),
	})
	req.ErrorIs(err, errStore)
	bids.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}
