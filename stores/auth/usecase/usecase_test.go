package usecase_test

import (
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/base/ethereum"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/stores/auth/usecase"
)

const (
	template = "Sign in to the marketplace as %s"
	user     = domain.Address("0x00000000000000000000000000000000000ABCDE")
)

func TestSignAndParseToken(t *testing.T) {
	c := ctx.Background()
	u := usecase.New(&usecase.AuthCfg{JwtSecret: "jwt-secret", SigningMsgTemplate: template})

	tkn, err := u.SignToken(c, user)
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)
	ads, err := u.ParseToken(c, tkn)
	assert.NoError(t, err)
	assert.Equal(t, user.ToLower(), ads)

	other := usecase.New(&usecase.AuthCfg{JwtSecret: "another-secret"})
	_, err = other.ParseToken(c, tkn)
	assert.Error(t, err)
}

func TestDefaultTokenTtl(t *testing.T) {
	c := ctx.Background()
	u := usecase.New(&usecase.AuthCfg{JwtSecret: "jwt-secret", TokenTtl: -time.Hour})
	// a non positive ttl falls back to the default
	tkn, err := u.SignToken(c, user)
	require.NoError(t, err)
	_, err = u.ParseToken(c, tkn)
	assert.NoError(t, err)

	_, err = u.ParseToken(c, "not-a-token")
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	u := usecase.New(&usecase.AuthCfg{JwtSecret: "jwt-secret", SigningMsgTemplate: template})

	key, err := crypto.GenerateKey()
	req.NoError(err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	msg := u.SigningMessage(c, address)
	req.Contains(msg, string(address.ToLower()))
	sig, err := ethereum.SignMessage([]byte(msg), key)
	req.NoError(err)

	tkn, err := u.Login(c, address, sig)
	req.NoError(err)
	ads, err := u.ParseToken(c, tkn)
	req.NoError(err)
	req.Equal(address.ToLower(), ads)

	otherKey, err := crypto.GenerateKey()
	req.NoError(err)
	badSig, err := ethereum.SignMessage([]byte(msg), otherKey)
	req.NoError(err)
	_, err = u.Login(c, address, badSig)
	req.ErrorIs(err, domain.ErrInvalidSignature)

	_, err = u.Login(c, address, "0xzz")
	req.ErrorIs(err, domain.ErrInvalidSignature)
}

func TestParseTokenChecksClaims(t *testing.T) {
	c := ctx.Background()
	u := usecase.New(&usecase.AuthCfg{JwtSecret: "jwt-secret"})
	sign := func(claims jwt.Claims) string {
		ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("jwt-secret"))
		require.NoError(t, err)
		return ss
	}
	now := time.Now()

	expired := domain.NewSessionClaims(user, now.Add(-2*time.Hour), time.Hour)
	_, err := u.ParseToken(c, sign(expired))
	assert.Error(t, err)

	foreign := domain.NewSessionClaims(user, now, time.Hour)
	foreign.Issuer = "someone else"
	_, err = u.ParseToken(c, sign(foreign))
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	malformed := domain.NewSessionClaims(user, now, time.Hour)
	malformed.Subject = "admin"
	_, err = u.ParseToken(c, sign(malformed))
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)

	ads, err := u.ParseToken(c, sign(domain.NewSessionClaims(user, now, time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, user.ToLower(), ads)
}
