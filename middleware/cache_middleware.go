package middleware

import (
	"bytes"
	"hash/fnv"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/service/cache"
)

const (
	HeaderXCache = "X-Cache"
	cacheHit     = "HIT"
	cacheMiss    = "MISS"
)

// CachedResponse is what CacheHttp stores per url
type CachedResponse struct {
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type recordingWriter struct {
	http.ResponseWriter
	body   io.Writer
	status int
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// cacheKey hashes the path and the query with its keys and values sorted,
// so the same listing query in any param order shares one entry.
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, values := range params {
		sort.Strings(values)
	}
	// Encode sorts by key
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(u.Path + "?" + params.Encode()))
	return strconv.FormatUint(hash.Sum64(), 36)
}

// CacheHttp serves GET responses from cacheService. Only 200 responses of
// anonymous requests are stored, an Authorization header bypasses the cache.
func CacheHttp(cacheService cache.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet || req.Header.Get(echo.HeaderAuthorization) != "" {
				return next(c)
			}

			context := c.Get("ctx").(ctx.Ctx)
			key := cacheKey(req.URL)

			cached := CachedResponse{}
			err := cacheService.Get(context, key, &cached)
			if err == nil {
				c.Response().Header().Set(HeaderXCache, cacheHit)
				return c.Blob(http.StatusOK, cached.ContentType, cached.Body)
			}
			if err != cache.ErrNotFound {
				context.WithFields(log.Fields{"key": key, "err": err}).Error("cacheService.Get failed")
			}

			body := new(bytes.Buffer)
			res := c.Response()
			writer := &recordingWriter{ResponseWriter: res.Writer, body: io.MultiWriter(res.Writer, body)}
			res.Writer = writer
			res.Header().Set(HeaderXCache, cacheMiss)
			if err := next(c); err != nil {
				c.Error(err)
			}

			if writer.status != http.StatusOK {
				return nil
			}
			stored := CachedResponse{
				ContentType: res.Header().Get(echo.HeaderContentType),
				Body:        body.Bytes(),
			}
			if err := cacheService.Set(context, key, stored); err != nil {
				context.WithFields(log.Fields{"key": key, "err": err}).Error("cacheService.Set failed")
			}
			return nil
		}
	}
}
