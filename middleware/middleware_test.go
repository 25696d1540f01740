package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/marketplace/base/ctx"
)

func TestAddContextCarriesRequestId(t *testing.T) {
	req := require.New(t)
	m := InitMiddleware()

	e := echo.New()
	e.Use(echoMiddleware.RequestID(), m.AddContext(), m.ResponseLogger(), m.CORS())

	var requestId string
	e.GET("/ping", func(c echo.Context) error {
		requestId = ctx.RequestId(c.Get("ctx").(ctx.Ctx))
		return c.NoContent(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.Header.Set(echo.HeaderOrigin, "https://any.example")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, r)
	req.Equal(http.StatusNoContent, rec.Code)
	req.NotEmpty(requestId)
	req.Equal(rec.Header().Get(echo.HeaderXRequestID), requestId)
	req.Equal("*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestCORSAllowOrigins(t *testing.T) {
	req := require.New(t)
	m := InitMiddleware()

	e := echo.New()
	e.Use(m.CORS("https://market.example"))
	e.GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	call := func(origin string) string {
		r := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.Header.Set(echo.HeaderOrigin, origin)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, r)
		return rec.Header().Get(echo.HeaderAccessControlAllowOrigin)
	}
	req.Equal("https://market.example", call("https://market.example"))
	req.Empty(call("https://other.example"))
}

func TestResponseLoggerHandlesErrors(t *testing.T) {
	req := require.New(t)
	m := InitMiddleware()

	e := echo.New()
	e.Use(m.AddContext(), m.ResponseLogger())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	req.Equal(http.StatusTeapot, rec.Code)
}
