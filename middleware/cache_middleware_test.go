package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/service/cache"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
)

type cacheMiddlewareSuite struct {
	suite.Suite

	cache cache.Service
}

func (s *cacheMiddlewareSuite) SetupTest() {
	s.cache = cache.New(cache.ServiceConfig{
		Ttl:   30 * time.Second,
		Pfx:   "httpCacheMiddleware",
		Cache: primitive.NewPrimitive("httpCacheMiddleware", 1),
	})
}

func TestCacheMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(cacheMiddlewareSuite))
}

func (s *cacheMiddlewareSuite) serve(target string, h echo.HandlerFunc, headers ...string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("ctx", ctx.WithValue(ctx.Background(), "requestID", "test"))
	s.NoError(CacheHttp(s.cache)(h)(c))
	return rec
}

func (s *cacheMiddlewareSuite) TestCacheMiddleware() {
	rec := s.serve("/offerings?b=2&a=1", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, World")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())
	s.Equal("MISS", rec.Header().Get(HeaderXCache))

	// same query in another order hits the cache
	rec = s.serve("/offerings?a=1&b=2", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, again")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Hello, World", rec.Body.String())
	s.Equal("HIT", rec.Header().Get(HeaderXCache))
	s.Equal(echo.MIMETextPlainCharsetUTF8, rec.Header().Get(echo.HeaderContentType))

	rec = s.serve("/offerings?a=3", func(c echo.Context) error {
		return c.String(http.StatusOK, "other page")
	})
	s.Equal("other page", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestErrorsAreNotCached() {
	rec := s.serve("/offerings/1", func(c echo.Context) error {
		return c.String(http.StatusNotFound, "missing")
	})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.serve("/offerings/1", func(c echo.Context) error {
		return c.String(http.StatusOK, "found")
	})
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("found", rec.Body.String())
}

func (s *cacheMiddlewareSuite) TestAuthorizedRequestsBypass() {
	s.serve("/contract", func(c echo.Context) error {
		return c.String(http.StatusOK, "public")
	})

	rec := s.serve("/contract", func(c echo.Context) error {
		return c.String(http.StatusOK, "private")
	}, echo.HeaderAuthorization, "Bearer tkn")
	s.Equal("private", rec.Body.String())
	s.Empty(rec.Header().Get(HeaderXCache))
}
