package market

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

// Royalty is the collection royalty captured when the token was listed.
type Royalty struct {
	PaymentAddress domain.Address `json:"payment_address" bson:"paymentAddress"`
	Share          Fraction       `json:"share" bson:"share"`
}

// Split divides a sale amount into the royalty fee and what is left for the seller.
func (r *Royalty) Split(amount Amount) (fee Amount, net Amount) {
	if r == nil || r.Share.IsZero() {
		return NewAmount(0), amount
	}
	fee = amount.MulFloor(r.Share)
	// fee <= amount since share <= 1
	net, _ = amount.Sub(fee)
	return fee, net
}

type Offering struct {
	Id          string         `json:"id" bson:"offeringId"`
	TokenId     domain.TokenId `json:"token_id" bson:"tokenId"`
	NftAddress  domain.Address `json:"nft_address" bson:"nftAddress"`
	RoyaltyInfo *Royalty       `json:"royalty_info" bson:"royaltyInfo"`
	Seller      domain.Address `json:"seller" bson:"seller"`
	SaleType    SaleType       `json:"sale_type" bson:"saleType"`
	ListingTime time.Time      `json:"listing_time" bson:"listingTime"`
}

// BidOffering is the escrow state of an auction listing.
// HighestBidPrice and Address are either both set or both nil.
type BidOffering struct {
	OfferingId      string          `json:"offering_id" bson:"offeringId"`
	HighestBidPrice *Amount         `json:"highest_bid_price" bson:"highestBidPrice"`
	Address         *domain.Address `json:"address" bson:"address"`
	StartTimestamp  time.Time       `json:"start_timestamp" bson:"startTimestamp"`
}

func (b *BidOffering) HasBid() bool {
	return b.HighestBidPrice != nil && b.Address != nil
}

// Place records a new highest bid.
func (b *BidOffering) Place(price Amount, bidder domain.Address) {
	b.HighestBidPrice = &price
	b.Address = &bidder
}

func (b *BidOffering) IsHighestBidder(address domain.Address) bool {
	return b.HasBid() && b.Address.Equals(address)
}

// OfferingResult is an offering with its auction state, if any.
type OfferingResult struct {
	Offering
	Bid *BidOffering `json:"bid,omitempty"`
}

type CreateListingParams struct {
	TokenId     domain.TokenId
	NftAddress  domain.Address
	Seller      domain.Address
	SaleType    SaleType
	RoyaltyInfo *Royalty
	Now         time.Time
}

type OfferingFindAllOptions struct {
	Offset     *int
	Limit      *int
	SortBy     *string
	Seller     *domain.Address
	NftAddress *domain.Address
	TokenId    *domain.TokenId
	SaleKind   *SaleKind
}

type OfferingFindAllOptionsFunc func(*OfferingFindAllOptions) error

func GetOfferingFindAllOptions(opts ...OfferingFindAllOptionsFunc) (OfferingFindAllOptions, error) {
	res := OfferingFindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func OfferingWithPagination(offset, limit int) OfferingFindAllOptionsFunc {
	return func(options *OfferingFindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

func OfferingWithSort(sortBy string) OfferingFindAllOptionsFunc {
	return func(options *OfferingFindAllOptions) error {
		options.SortBy = &sortBy
		return nil
	}
}

func OfferingWithSeller(seller domain.Address) OfferingFindAllOptionsFunc {
	return func(options *OfferingFindAllOptions) error {
		seller = seller.ToLower()
		options.Seller = &seller
		return nil
	}
}

func OfferingWithNftAddress(address domain.Address) OfferingFindAllOptionsFunc {
	return func(options *OfferingFindAllOptions) error {
		address = address.ToLower()
		options.NftAddress = &address
		return nil
	}
}

func OfferingWithTokenId(tokenId domain.TokenId) OfferingFindAllOptionsFunc {
	return func(options *OfferingFindAllOptions) error {
		options.TokenId = &tokenId
		return nil
	}
}

func OfferingWithSaleKind(kind SaleKind) OfferingFindAllOptionsFunc {
	return func(options *OfferingFindAllOptions) error {
		if kind != SaleKindFixedPrice && kind != SaleKindAuction {
			return ErrInvalidSaleType
		}
		options.SaleKind = &kind
		return nil
	}
}

type OfferingRepo interface {
	FindOne(ctx ctx.Ctx, id string) (*Offering, error)
	FindAll(ctx ctx.Ctx, opts ...OfferingFindAllOptionsFunc) ([]*Offering, error)
	Count(ctx ctx.Ctx, opts ...OfferingFindAllOptionsFunc) (int, error)
	Upsert(ctx ctx.Ctx, offering *Offering) error
	Remove(ctx ctx.Ctx, id string) error
}

type BidOfferingRepo interface {
	FindOne(ctx ctx.Ctx, offeringId string) (*BidOffering, error)
	Upsert(ctx ctx.Ctx, bid *BidOffering) error
	Remove(ctx ctx.Ctx, offeringId string) error
}

// Registry owns the listing table and the listing id sequence.
type Registry interface {
	// NextId increments the persisted counter and returns it as a decimal string
	NextId(ctx ctx.Ctx) (string, error)
	CreateListing(ctx ctx.Ctx, params CreateListingParams) (*Offering, error)
	// RemoveListing deletes the offering and its auction state
	RemoveListing(ctx ctx.Ctx, id string) error

	GetOffering(ctx ctx.Ctx, id string) (*Offering, error)
	SaveOffering(ctx ctx.Ctx, offering *Offering) error
	GetBidOffering(ctx ctx.Ctx, id string) (*BidOffering, error)
	SaveBidOffering(ctx ctx.Ctx, bid *BidOffering) error
	FindAll(ctx ctx.Ctx, opts ...OfferingFindAllOptionsFunc) ([]*Offering, error)
	Count(ctx ctx.Ctx, opts ...OfferingFindAllOptionsFunc) (int, error)
}
