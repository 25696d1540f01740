package market

import "errors"

var (
	ErrUnauthorized             = errors.New("Unauthorized")
	ErrNoFunds                  = errors.New("NoFunds")
	ErrMultipleDenoms           = errors.New("MultipleDenoms")
	ErrDenomNotMatch            = errors.New("DenomNotMatch")
	ErrPriceMustBePositive      = errors.New("PriceMustBePositive")
	ErrSaleTypeMustBeFixedPrice = errors.New("SaleTypeMustBeFixedPrice")
	ErrSaleTypeMustBeAuction    = errors.New("SaleTypeMustBeAuction")
	ErrInsufficientDeposit      = errors.New("InsufficientDeposit")
	ErrBidExpiration            = errors.New("BidExpiration")
	ErrNFTAddressNotMatch       = errors.New("NFTAddressNotMatch")
	ErrOfferingNotFound         = errors.New("offering not found")
	ErrNotInstantiated          = errors.New("contract not instantiated")
	ErrAlreadyInstantiated      = errors.New("contract already instantiated")

	ErrInvalidSaleType   = errors.New("invalid sale type")
	ErrInvalidExpiration = errors.New("invalid expiration")
	ErrInvalidShare      = errors.New("royalty share must be within [0, 1]")
	ErrInvalidCommand    = errors.New("command must set exactly one operation")
	ErrOverflow          = errors.New("amount overflow")
)
