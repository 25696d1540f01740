package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/x-xyz/marketplace/base/ctx"
	hcdomain "github.com/x-xyz/marketplace/domain/healthcheck"
	"github.com/x-xyz/marketplace/domain/healthcheck/mocks"
	"github.com/x-xyz/marketplace/domain/market"
)

func TestCheck(t *testing.T) {
	req := require.New(t)
	us := mocks.NewHealthCheckUsecase(t)

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("ctx", ctx.Background())
			return next(c)
		}
	})
	New(e, us)

	get := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		return rec
	}

	us.On("Check", mock.Anything).Return(&hcdomain.Report{
		Database: hcdomain.StatusOk,
		Cache:    hcdomain.StatusOk,
		Contract: &market.Version{Contract: "x-marketplace", Version: "1"},
	}, nil).Once()
	rec := get()
	req.Equal(http.StatusOK, rec.Code)
	req.JSONEq(`{"database":"ok","cache":"ok","contract":{"contract":"x-marketplace","version":"1"}}`, rec.Body.String())

	us.On("Check", mock.Anything).Return(&hcdomain.Report{
		Database: hcdomain.StatusDown,
		Cache:    hcdomain.StatusOk,
	}, errors.New("mongo down")).Once()
	rec = get()
	req.Equal(http.StatusServiceUnavailable, rec.Code)
	req.JSONEq(`{"database":"down","cache":"ok","contract":null}`, rec.Body.String())
}
