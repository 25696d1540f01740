package usecase

import (
	"github.com/x-xyz/marketplace/base/ctx"
	hcdomain "github.com/x-xyz/marketplace/domain/healthcheck"
	"github.com/x-xyz/marketplace/domain/market"
)

type impl struct {
	repo     hcdomain.HealthCheckRepo
	contract market.ContractRepo
}

// New returns a check that passes when storage answers and the marketplace is instantiated
func New(repo hcdomain.HealthCheckRepo, contract market.ContractRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo:     repo,
		contract: contract,
	}
}

func (im *impl) Check(context ctx.Ctx) (*hcdomain.Report, error) {
	report := &hcdomain.Report{Database: hcdomain.StatusOk, Cache: hcdomain.StatusOk}
	var first error
	fail := func(err error) {
		if first == nil {
			first = err
		}
	}

	if err := im.repo.PingDB(context); err != nil {
		report.Database = hcdomain.StatusDown
		fail(err)
	}
	if err := im.repo.PingCache(context); err != nil {
		report.Cache = hcdomain.StatusDown
		fail(err)
	}
	// reading the version needs the database, skip it when the ping failed
	if report.Database == hcdomain.StatusOk {
		version, err := im.contract.GetVersion(context)
		if err != nil {
			context.WithField("err", err).Warn("contract.GetVersion failed")
			fail(err)
		}
		report.Contract = version
	}
	return report, first
}
