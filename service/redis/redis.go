package redis

import (
	"errors"
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
)

const (
	// Forever is the expire value for keys without ttl
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = errors.New("redis: key not found")
	// ErrNoTTL is returned by TTL for a key without expire
	ErrNoTTL = errors.New("redis: key has no ttl")
	// ErrNotSet is returned by SetNX when the key already exists
	ErrNotSet = errors.New("redis: key not set")
)

// Service is the subset of redis commands the marketplace uses
type Service interface {
	Get(context ctx.Ctx, key string) ([]byte, error)
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	// SetNX sets key only when it does not exist, ErrNotSet otherwise
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error
	Del(context ctx.Ctx, keys ...string) (int, error)
	Exists(context ctx.Ctx, key string) (bool, error)
	Expire(context ctx.Ctx, key string, ttl time.Duration) error
	// TTL returns the remaining seconds of key
	TTL(context ctx.Ctx, key string) (int, error)
	Incrby(context ctx.Ctx, key string, val int) (int64, error)
}
