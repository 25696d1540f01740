package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain/keys"
	"github.com/x-xyz/marketplace/service/cache/provider"
	"github.com/x-xyz/marketplace/service/cache/provider/primitive"
)

var (
	mockCtx = ctx.Background()
)

type value struct {
	Value string `json:"value"`
}

type testsuite struct {
	suite.Suite
	im    *impl
	cache provider.Provider
}

func (ts *testsuite) SetupTest() {
	ts.cache = primitive.NewPrimitive("test", 1)
	ts.im = New(ServiceConfig{
		Ttl:   time.Minute,
		Pfx:   "testing",
		Cache: ts.cache,
	}).(*impl)
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestGetSet() {
	c := &value{}
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "key", c))

	ts.NoError(ts.im.Set(mockCtx, "key", value{"v"}))
	raw, _, err := ts.cache.Get(mockCtx, keys.RedisKey("testing", "key"))
	ts.NoError(err)
	ts.JSONEq(`{"value":"v"}`, string(raw))

	ts.NoError(ts.im.Get(mockCtx, "key", c))
	ts.Equal("v", c.Value)

	ts.NoError(ts.im.Del(mockCtx, "key"))
	ts.Equal(ErrNotFound, ts.im.Get(mockCtx, "key", c))
}

func (ts *testsuite) TestGetByFunc() {
	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &value{"loaded"}, nil
	}

	c := &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, "key", c, getter))
	ts.Equal("loaded", c.Value)

	c2 := &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, "key", c2, getter))
	ts.Equal("loaded", c2.Value)
	ts.Equal(1, calls)

	// getters may return the value itself
	c3 := &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, "other", c3, func() (interface{}, error) { return value{"plain"}, nil }))
	ts.Equal("plain", c3.Value)

	// pointer containers keep pointer values
	var p *value
	ts.NoError(ts.im.GetByFunc(mockCtx, "ptr", &p, func() (interface{}, error) { return &value{"ptr"}, nil }))
	ts.Equal("ptr", p.Value)

	errLoad := errors.New("load")
	ts.Equal(errLoad, ts.im.GetByFunc(mockCtx, "failed", &value{}, func() (interface{}, error) { return nil, errLoad }))
}

func (ts *testsuite) TestRefreshOverwritesCachedValue() {
	ts.NoError(ts.im.Set(mockCtx, "key", value{"stale"}))

	c := &value{}
	ts.NoError(ts.im.Refresh(mockCtx, "key", c, func() (interface{}, error) { return &value{"fresh"}, nil }))
	ts.Equal("fresh", c.Value)

	// later cached reads see the refreshed value without loading
	c2 := &value{}
	ts.NoError(ts.im.GetByFunc(mockCtx, "key", c2, func() (interface{}, error) {
		ts.Fail("loaded again")
		return nil, nil
	}))
	ts.Equal("fresh", c2.Value)

	// a failed load keeps the cached value
	errLoad := errors.New("load")
	ts.Equal(errLoad, ts.im.Refresh(mockCtx, "key", &value{}, func() (interface{}, error) { return nil, errLoad }))
	ts.NoError(ts.im.Get(mockCtx, "key", c2))
	ts.Equal("fresh", c2.Value)
}
