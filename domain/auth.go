package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt"
	"github.com/x-xyz/marketplace/base/ctx"
)

const SessionIssuer = "marketplace"

// SessionClaims is the jwt payload of a login session, Subject is the lower
// case address the session acts for.
type SessionClaims struct {
	jwt.StandardClaims
}

func NewSessionClaims(address Address, issuedAt time.Time, ttl time.Duration) SessionClaims {
	return SessionClaims{jwt.StandardClaims{
		Issuer:    SessionIssuer,
		Subject:   address.ToLowerStr(),
		IssuedAt:  issuedAt.Unix(),
		ExpiresAt: issuedAt.Add(ttl).Unix(),
	}}
}

func (c SessionClaims) Address() Address {
	return Address(c.Subject)
}

// Valid extends the expiry checks with our issuer and a well formed subject.
func (c SessionClaims) Valid() error {
	if err := c.StandardClaims.Valid(); err != nil {
		return err
	}
	if !c.VerifyIssuer(SessionIssuer, true) {
		return ErrInvalidSignature
	}
	if !common.IsHexAddress(c.Subject) {
		return ErrInvalidAddress
	}
	return nil
}

type AuthUsecase interface {
	// SigningMessage returns the text an address has to personal_sign to get a token
	SigningMessage(ctx ctx.Ctx, address Address) string
	// Login verifies the signature and signs a token for the address
	Login(ctx ctx.Ctx, address Address, signature string) (string, error)
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (Address, error)
}
