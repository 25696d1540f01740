package ctx

import (
	"context"
	"time"

	log "github.com/x-xyz/marketplace/base/log"
)

// Ctx carries a request scoped logger alongside the standard context.
type Ctx struct {
	context.Context
	log.Logger
}

type contextKey string

const (
	requestIdKey contextKey = "requestId"
	callerKey    contextKey = "caller"
)

func Background() Ctx {
	return Ctx{
		Context: context.Background(),
		Logger:  log.Log(),
	}
}

// WithContext swaps the underlying context and keeps the logger, e.g. for mongo session contexts.
func WithContext(parent Ctx, c context.Context) Ctx {
	return Ctx{
		Context: c,
		Logger:  parent.Logger,
	}
}

func WithValue(parent Ctx, key string, val interface{}) Ctx {
	return Ctx{
		Context: context.WithValue(parent, contextKey(key), val),
		Logger:  parent.Logger.WithField(key, val),
	}
}

func WithValues(parent Ctx, kvs map[string]interface{}) Ctx {
	c := parent
	for k, v := range kvs {
		c = WithValue(c, k, v)
	}
	return c
}

// Value returns the value stored by WithValue.
func Value(c Ctx, key string) interface{} {
	return c.Value(contextKey(key))
}

func WithRequestId(parent Ctx, requestId string) Ctx {
	return WithValue(parent, string(requestIdKey), requestId)
}

func RequestId(c Ctx) string {
	id, _ := Value(c, string(requestIdKey)).(string)
	return id
}

// WithCaller tags the context with the authenticated address acting in this request.
func WithCaller(parent Ctx, caller string) Ctx {
	return WithValue(parent, string(callerKey), caller)
}

func Caller(c Ctx) string {
	caller, _ := Value(c, string(callerKey)).(string)
	return caller
}

func WithCancel(parent Ctx) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return WithContext(parent, ctx), cancel
}

func WithTimeout(parent Ctx, timeout time.Duration) (Ctx, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return WithContext(parent, ctx), cancel
}
