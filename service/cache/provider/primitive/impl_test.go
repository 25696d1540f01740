package primitive

import (
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/suite"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/service/cache/provider"
)

var (
	mockCtx = ctx.Background()
)

type testsuite struct {
	suite.Suite
	im *impl
}

func (ts *testsuite) SetupTest() {
	ts.im = NewPrimitive("", 1).(*impl)
}

func (ts *testsuite) TearDownTest() {
	ts.im.cache.Clear()
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (ts *testsuite) TestSet() {
	k := "key"
	v := []byte("value")

	ts.NoError(ts.im.Set(mockCtx, k, v, time.Second))
	r, e := ts.im.cache.Get([]byte(k))
	ts.NoError(e)
	ts.Equal(v, r)

	time.Sleep(1100 * time.Millisecond)
	_, e = ts.im.cache.Get([]byte(k))
	ts.Equal(freecache.ErrNotFound, e)
}

func (ts *testsuite) TestGet() {
	_, _, e := ts.im.Get(mockCtx, "missing")
	ts.Equal(provider.ErrNotFound, e)

	ts.NoError(ts.im.Set(mockCtx, "forever", []byte("v"), 0))
	v, ttl, e := ts.im.Get(mockCtx, "forever")
	ts.NoError(e)
	ts.Equal("v", string(v))
	ts.Equal(time.Duration(0), ttl)

	ts.NoError(ts.im.Set(mockCtx, "minute", []byte("v"), time.Minute))
	_, ttl, e = ts.im.Get(mockCtx, "minute")
	ts.NoError(e)
	ts.True(ttl > 58*time.Second && ttl <= time.Minute, ttl.String())
}

func (ts *testsuite) TestDel() {
	ts.NoError(ts.im.Set(mockCtx, "key", []byte("v"), time.Minute))
	ts.NoError(ts.im.Del(mockCtx, "key"))
	_, _, e := ts.im.Get(mockCtx, "key")
	ts.Equal(provider.ErrNotFound, e)
}
