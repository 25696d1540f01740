package provider

import (
	"errors"
	"strings"
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
)

var ErrNotFound = errors.New("cache entry not found")

// Provider is a raw byte store. Get also returns the remaining ttl, zero when
// the entry never expires.
type Provider interface {
	// Name tags the metrics of the services built on the provider
	Name() string
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}

// JoinNames names a stack of providers, fastest first
func JoinNames(layers ...Provider) string {
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		names = append(names, l.Name())
	}
	return strings.Join(names, "+")
}
