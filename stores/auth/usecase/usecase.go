package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/base/log"
	"github.com/x-xyz/marketplace/domain"
)

const defaultTokenTtl = 24 * time.Hour

var timeNow = time.Now

type AuthCfg struct {
	JwtSecret string
	// SigningMsgTemplate must contain one %s, replaced by the lower case address
	SigningMsgTemplate string
	TokenTtl           time.Duration
}

type impl struct {
	jwtSecret []byte
	template  string
	ttl       time.Duration
}

func New(cfg *AuthCfg) domain.AuthUsecase {
	ttl := cfg.TokenTtl
	if ttl <= 0 {
		ttl = defaultTokenTtl
	}
	return &impl{
		jwtSecret: []byte(cfg.JwtSecret),
		template:  cfg.SigningMsgTemplate,
		ttl:       ttl,
	}
}

func (im *impl) SigningMessage(ctx ctx.Ctx, address domain.Address) string {
	return fmt.Sprintf(im.template, address.ToLower())
}

func (im *impl) Login(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	ok, err := ethereum.ValidateMsgSignature([]byte(im.SigningMessage(ctx, address)), signature, address.ToLowerStr())
	if err != nil {
		ctx.WithFields(log.Fields{
			"address": address,
			"err":     err,
		}).Warn("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrInvalidSignature
	}
	if !ok {
		return "", domain.ErrInvalidSignature
	}
	return im.SignToken(ctx, address)
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address) (string, error) {
	claims := domain.NewSessionClaims(address, timeNow(), im.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	ss, err := token.SignedString(im.jwtSecret)
	if err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	}
	return ss, nil
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (domain.Address, error) {
	claims := &domain.SessionClaims{}
	token, err := jwt.ParseWithClaims(str, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if ve, ok := err.(*jwt.ValidationError); ok && ve.Inner != nil {
		// surface claim check failures as our own errors
		err = ve.Inner
	}
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", domain.ErrInvalidSignature
	}
	return claims.Address(), nil
}
