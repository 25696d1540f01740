package cache

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/service/cache/provider"
)

// ErrNotFound is the provider miss, surfaced unchanged by Get
var ErrNotFound = provider.ErrNotFound

// Loader produces the value for a key. It returns the value or a pointer to
// it, either is assigned to the caller's container.
type Loader func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// Service stores values under Pfx through a byte Provider.
//
// GetByFunc serves from the cache and loads on a miss. Refresh always loads
// and overwrites the cached value, for readers that must not see a stale one
// while later GetByFunc calls still benefit.
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, load Loader) error
	Refresh(c ctx.Ctx, key string, container interface{}, load Loader) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
	// Serialize and Deserialize default to json
	Serialize   Serializer
	Deserialize Deserializer
}
