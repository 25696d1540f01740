package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/query"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

var badRequestErrs = []error{
	domain.ErrBadParamInput,
	domain.ErrInvalidJsonFormat,
	domain.ErrInvalidAddress,
	market.ErrNoFunds,
	market.ErrMultipleDenoms,
	market.ErrDenomNotMatch,
	market.ErrPriceMustBePositive,
	market.ErrSaleTypeMustBeFixedPrice,
	market.ErrSaleTypeMustBeAuction,
	market.ErrInsufficientDeposit,
	market.ErrBidExpiration,
	market.ErrNFTAddressNotMatch,
	market.ErrInvalidSaleType,
	market.ErrInvalidExpiration,
	market.ErrInvalidShare,
	market.ErrInvalidCommand,
	market.ErrOverflow,
	market.ErrDepositNotFound,
	market.ErrDepositMismatch,
}

// StatusOf maps a usecase error to the http status returned to the client
func StatusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, query.ErrNotFound), errors.Is(err, market.ErrOfferingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, market.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, market.ErrNotInstantiated):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrConflict), errors.Is(err, market.ErrAlreadyInstantiated), errors.Is(err, market.ErrDepositClaimed):
		return http.StatusConflict
	}
	for _, e := range badRequestErrs {
		if errors.Is(err, e) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

// MakeJsonResp writes data in the response envelope. An error in data replaces
// status with the status mapped by StatusOf.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		if mapped := StatusOf(err); mapped != http.StatusInternalServerError || status < 400 {
			status = mapped
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
