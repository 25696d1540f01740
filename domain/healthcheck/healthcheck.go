package healthcheck

import (
	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain/market"
)

const (
	StatusOk   = "ok"
	StatusDown = "down"
)

// Report is the state of every dependency the marketplace serves from
type Report struct {
	Database string          `json:"database"`
	Cache    string          `json:"cache"`
	Contract *market.Version `json:"contract"`
}

func (r *Report) Healthy() bool {
	return r.Database == StatusOk && r.Cache == StatusOk && r.Contract != nil
}

type HealthCheckUsecase interface {
	// Check pings every dependency, err is the first failure met
	Check(context ctx.Ctx) (*Report, error)
}

type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
	PingCache(context ctx.Ctx) error
}
