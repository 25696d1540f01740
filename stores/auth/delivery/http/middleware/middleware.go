package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
)

type AuthMiddleware struct {
	auth domain.AuthUsecase
}

func New(auth domain.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{
		auth: auth,
	}
}

// Auth requires a bearer token. The caller is set under "address" and tagged
// on the request ctx.
func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	context := c.Get("ctx").(ctx.Ctx)
	address, err := m.auth.ParseToken(context, key)
	if err != nil {
		context.WithField("err", err).Warn("auth.ParseToken failed")
		return false, err
	}
	c.Set("address", address)
	c.Set("ctx", ctx.WithCaller(context, address.ToLowerStr()))
	return true, nil
}
