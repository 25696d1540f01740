package market

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

const (
	ContractName    = "x-xyz:marketplace"
	ContractVersion = "0.1.0"
)

type ContractInfo struct {
	Name        string `json:"name" bson:"name"`
	NativeDenom string `json:"native_denom" bson:"nativeDenom"`
}

type Version struct {
	Contract string `json:"contract" bson:"contract"`
	Version  string `json:"version" bson:"version"`
}

type ContractInfoResult struct {
	ContractInfo
	Admin          domain.Address   `json:"admin"`
	NftContracts   []domain.Address `json:"nft_contracts"`
	Version        Version          `json:"version"`
	OfferingsCount uint64           `json:"offerings_count"`
}

// ContractRepo keeps the singleton marketplace state.
type ContractRepo interface {
	GetContractInfo(ctx ctx.Ctx) (*ContractInfo, error)
	SetContractInfo(ctx ctx.Ctx, info ContractInfo) error
	GetAdmin(ctx ctx.Ctx) (domain.Address, error)
	SetAdmin(ctx ctx.Ctx, admin domain.Address) error
	GetNftContracts(ctx ctx.Ctx) ([]domain.Address, error)
	SetNftContracts(ctx ctx.Ctx, addresses []domain.Address) error
	GetVersion(ctx ctx.Ctx) (*Version, error)
	SetVersion(ctx ctx.Ctx, version Version) error
	// IncrementOfferingsCount bumps the listing counter and returns the new value
	IncrementOfferingsCount(ctx ctx.Ctx) (uint64, error)
	GetOfferingsCount(ctx ctx.Ctx) (uint64, error)
}

// Transactor runs a function inside one storage transaction.
type Transactor interface {
	RunWithTransaction(ctx ctx.Ctx, run func(ctx.Ctx) error) error
}

// CollectionRegistry answers collection level royalty configuration.
type CollectionRegistry interface {
	// RoyaltyInfo may answer from a cache and is meant for display
	RoyaltyInfo(ctx ctx.Ctx, nftAddress domain.Address) (*Royalty, error)
	// RoyaltySnapshot reads the current configuration, it is what a new listing keeps
	RoyaltySnapshot(ctx ctx.Ctx, nftAddress domain.Address) (*Royalty, error)
}

// EnvProvider supplies the block context for commands entering through the api.
type EnvProvider interface {
	Env(ctx ctx.Ctx) (Env, error)
}

// Sale describes a settled trade.
type Sale struct {
	OfferingId string
	NftAddress domain.Address
	TokenId    domain.TokenId
	Seller     domain.Address
	Buyer      domain.Address
	Price      Coin
	RoyaltyFee Amount
	SaleKind   SaleKind
	Time       time.Time
}

type SaleNotifier interface {
	NotifySale(ctx ctx.Ctx, sale Sale) error
}

// Engine is the settlement state machine. Every execute operation runs in
// one transaction; a failed operation changes nothing and emits nothing.
type Engine interface {
	Instantiate(ctx ctx.Ctx, info MessageInfo, msg InstantiateMsg) (*Response, error)
	Execute(ctx ctx.Ctx, env Env, info MessageInfo, msg ExecuteMsg) (*Response, error)

	AddNftContract(ctx ctx.Ctx, info MessageInfo, address string) (*Response, error)
	WithdrawNft(ctx ctx.Ctx, info MessageInfo, offeringId string) (*Response, error)
	MakeOffer(ctx ctx.Ctx, env Env, info MessageInfo, offeringId string) (*Response, error)
	Bid(ctx ctx.Ctx, env Env, info MessageInfo, offeringId string) (*Response, error)
	CloseBid(ctx ctx.Ctx, env Env, info MessageInfo, offeringId string) (*Response, error)
	UpdatePrice(ctx ctx.Ctx, info MessageInfo, offeringId string, price Amount) (*Response, error)
	ReceiveNft(ctx ctx.Ctx, env Env, info MessageInfo, msg ReceiveNftMsg) (*Response, error)

	ContractInfo(ctx ctx.Ctx) (*ContractInfoResult, error)
	Offering(ctx ctx.Ctx, offeringId string) (*OfferingResult, error)
	Offerings(ctx ctx.Ctx, opts ...OfferingFindAllOptionsFunc) ([]*OfferingResult, int, error)
}
