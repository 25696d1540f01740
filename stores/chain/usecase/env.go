package usecase

import (
	"time"

	"github.com/x-xyz/marketplace/base/ctx"
	"github.com/x-xyz/marketplace/domain"
	"github.com/x-xyz/marketplace/domain/market"
	"github.com/x-xyz/marketplace/service/chain"
)

var timeNow = time.Now

type chainEnvProvider struct {
	chainId domain.ChainId
	client  chain.Client
}

// NewChainEnvProvider reads the block context from the latest header.
func NewChainEnvProvider(chainId domain.ChainId, client chain.Client) market.EnvProvider {
	return &chainEnvProvider{chainId: chainId, client: client}
}

func (p *chainEnvProvider) Env(c ctx.Ctx) (market.Env, error) {
	header, err := p.client.HeaderByNumber(c, p.chainId, nil)
	if err != nil {
		c.WithField("err", err).Error("client.HeaderByNumber failed")
		return market.Env{}, err
	}
	return market.Env{
		Height: header.Number.Uint64(),
		Time:   time.Unix(int64(header.Time), 0).UTC(),
	}, nil
}

type clockEnvProvider struct {
	genesis   time.Time
	blockTime time.Duration
}

// NewClockEnvProvider derives heights from wall clock time, one block per
// blockTime since genesis. Used when no rpc endpoint is configured.
func NewClockEnvProvider(genesis time.Time, blockTime time.Duration) market.EnvProvider {
	if blockTime <= 0 {
		blockTime = time.Second
	}
	return &clockEnvProvider{genesis: genesis, blockTime: blockTime}
}

func (p *clockEnvProvider) Env(c ctx.Ctx) (market.Env, error) {
	now := timeNow().UTC()
	height := uint64(0)
	if elapsed := now.Sub(p.genesis); elapsed > 0 {
		height = uint64(elapsed / p.blockTime)
	}
	return market.Env{Height: height, Time: now}, nil
}
