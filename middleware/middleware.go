package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/base/metrics"
)

var timeNow = time.Now

// GoMiddleware holds the middlewares shared by every route
type GoMiddleware struct {
	met metrics.Service
}

func InitMiddleware() *GoMiddleware {
	return &GoMiddleware{met: metrics.New("http")}
}

// CORS allows the given origins, every origin when none is given
func (m *GoMiddleware) CORS(allowOrigins ...string) echo.MiddlewareFunc {
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	return echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	})
}

// AddContext puts a ctx.Ctx carrying the request id under "ctx"
func (m *GoMiddleware) AddContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestId := c.Response().Header().Get(echo.HeaderXRequestID)
			c.Set("ctx", ctx.WithRequestId(ctx.WithContext(ctx.Background(), c.Request().Context()), requestId))
			return next(c)
		}
	}
}

// ResponseLogger logs and times every response. It reads "ctx" after the
// handler ran so the caller set by the auth middleware is logged too.
func (m *GoMiddleware) ResponseLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := timeNow()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			elapsed := timeNow().Sub(start)
			m.met.BumpHistogram("request.ms", float64(elapsed.Milliseconds()),
				"method", req.Method,
				"path", c.Path(),
				"status", strconv.Itoa(res.Status),
			)

			fields := log.Fields{
				"ms":         float64(elapsed.Microseconds()) / 1000,
				"httpStatus": res.Status,
				"httpMethod": req.Method,
				"uri":        req.URL.Path,
				"route":      c.Path(),
				"remoteIP":   c.RealIP(),
				"size":       res.Size,
				"userAgent":  req.UserAgent(),
			}
			if err != nil {
				fields["nextErr"] = err
			}

			logger := log.Log().WithFields(fields)
			if cc, ok := c.Get("ctx").(ctx.Ctx); ok {
				logger = cc.WithFields(fields)
			}
			if res.Status >= 500 {
				logger.Warn("response")
			} else {
				logger.Info("response")
			}
			return nil
		}
	}
}
