package market

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/xerrors"
)

// Env is the block context a command is evaluated against.
type Env struct {
	Height uint64    `json:"height"`
	Time   time.Time `json:"time"`
}

type ExpirationKind string

const (
	ExpirationAtHeight ExpirationKind = "at_height"
	ExpirationAtTime   ExpirationKind = "at_time"
	ExpirationNever    ExpirationKind = "never"
)

// Expiration is the end of an auction, by block height, by block time or never.
type Expiration struct {
	Kind   ExpirationKind `bson:"kind"`
	Height uint64         `bson:"height"`
	Time   time.Time      `bson:"time"`
}

func AtHeight(height uint64) Expiration {
	return Expiration{Kind: ExpirationAtHeight, Height: height}
}

func AtTime(t time.Time) Expiration {
	return Expiration{Kind: ExpirationAtTime, Time: t}
}

func Never() Expiration {
	return Expiration{Kind: ExpirationNever}
}

func (e Expiration) IsExpired(env Env) bool {
	switch e.Kind {
	case ExpirationAtHeight:
		return env.Height >= e.Height
	case ExpirationAtTime:
		return !env.Time.Before(e.Time)
	default:
		return false
	}
}

func (e Expiration) String() string {
	switch e.Kind {
	case ExpirationAtHeight:
		return fmt.Sprintf("expiration height: %d", e.Height)
	case ExpirationAtTime:
		return fmt.Sprintf("expiration time: %s", e.Time.UTC().Format(time.RFC3339Nano))
	default:
		return "expiration: never"
	}
}

type expirationJSON struct {
	AtHeight *uint64   `json:"at_height,omitempty"`
	AtTime   *string   `json:"at_time,omitempty"`
	Never    *struct{} `json:"never,omitempty"`
}

// MarshalJSON writes {"at_height":N}, {"at_time":"<unix nanos>"} or {"never":{}}.
func (e Expiration) MarshalJSON() ([]byte, error) {
	res := expirationJSON{}
	switch e.Kind {
	case ExpirationAtHeight:
		res.AtHeight = &e.Height
	case ExpirationAtTime:
		nanos := strconv.FormatInt(e.Time.UnixNano(), 10)
		res.AtTime = &nanos
	case ExpirationNever:
		res.Never = &struct{}{}
	default:
		return nil, ErrInvalidExpiration
	}
	return json.Marshal(res)
}

func (e *Expiration) UnmarshalJSON(data []byte) error {
	raw := expirationJSON{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return xerrors.Errorf("%w: %v", ErrInvalidExpiration, err)
	}

	set := 0
	if raw.AtHeight != nil {
		set++
		*e = AtHeight(*raw.AtHeight)
	}
	if raw.AtTime != nil {
		set++
		nanos, err := strconv.ParseInt(*raw.AtTime, 10, 64)
		if err != nil {
			return xerrors.Errorf("%w: at_time %q", ErrInvalidExpiration, *raw.AtTime)
		}
		*e = AtTime(time.Unix(0, nanos).UTC())
	}
	if raw.Never != nil {
		set++
		*e = Never()
	}
	if set != 1 {
		return ErrInvalidExpiration
	}
	return nil
}

type SaleKind string

const (
	SaleKindFixedPrice SaleKind = "fixed_price"
	SaleKindAuction    SaleKind = "auction"
)

type AuctionTerms struct {
	StartPrice     Amount     `json:"start_price" bson:"startPrice"`
	IncreasePerBid *Amount    `json:"increase_per_bid" bson:"increasePerBid"`
	Expiration     Expiration `json:"expiration" bson:"expiration"`
}

// MinIncrement returns the configured bid increment or zero when absent.
func (a AuctionTerms) MinIncrement() Amount {
	if a.IncreasePerBid == nil {
		return NewAmount(0)
	}
	return *a.IncreasePerBid
}

// SaleType is either a fixed price sale or an english auction, never both.
type SaleType struct {
	Kind       SaleKind      `bson:"kind"`
	FixedPrice *Amount       `bson:"fixedPrice,omitempty"`
	Auction    *AuctionTerms `bson:"auction,omitempty"`
}

func NewFixedPrice(price Amount) SaleType {
	return SaleType{Kind: SaleKindFixedPrice, FixedPrice: &price}
}

func NewAuction(terms AuctionTerms) SaleType {
	return SaleType{Kind: SaleKindAuction, Auction: &terms}
}

func (s SaleType) IsFixedPrice() bool {
	return s.Kind == SaleKindFixedPrice && s.FixedPrice != nil
}

func (s SaleType) IsAuction() bool {
	return s.Kind == SaleKindAuction && s.Auction != nil
}

func (s SaleType) Validate() error {
	switch s.Kind {
	case SaleKindFixedPrice:
		if s.FixedPrice == nil || s.Auction != nil {
			return ErrInvalidSaleType
		}
	case SaleKindAuction:
		if s.Auction == nil || s.FixedPrice != nil {
			return ErrInvalidSaleType
		}
	default:
		return ErrInvalidSaleType
	}
	return nil
}

type saleTypeJSON struct {
	FixedPrice *Amount       `json:"fixed_price,omitempty"`
	Auction    *AuctionTerms `json:"auction,omitempty"`
}

// MarshalJSON writes {"fixed_price":"100"} or {"auction":{...}}.
func (s SaleType) MarshalJSON() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(saleTypeJSON{FixedPrice: s.FixedPrice, Auction: s.Auction})
}

func (s *SaleType) UnmarshalJSON(data []byte) error {
	raw := saleTypeJSON{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return xerrors.Errorf("%w: %v", ErrInvalidSaleType, err)
	}
	switch {
	case raw.FixedPrice != nil && raw.Auction == nil:
		*s = NewFixedPrice(*raw.FixedPrice)
	case raw.Auction != nil && raw.FixedPrice == nil:
		if raw.Auction.Expiration.Kind == "" {
			return ErrInvalidExpiration
		}
		*s = NewAuction(*raw.Auction)
	default:
		return ErrInvalidSaleType
	}
	return nil
}

// DecodeSaleType parses the opaque payload attached to a custody notification.
func DecodeSaleType(payload []byte) (SaleType, error) {
	s := SaleType{}
	if err := json.Unmarshal(payload, &s); err != nil {
		if errors.Is(err, ErrInvalidSaleType) || errors.Is(err, ErrInvalidExpiration) {
			return SaleType{}, err
		}
		return SaleType{}, xerrors.Errorf("%w: %v", ErrInvalidSaleType, err)
	}
	return s, nil
}
