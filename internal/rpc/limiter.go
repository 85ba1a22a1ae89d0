package rpc

import (
	"context"
	"time"

	"github.com/goran-ethernal/NomadIndexer/pkg/config"
	"golang.org/x/time/rate"
)

// Compute unit cost of each RPC method.
const (
	CostGetLogs        = 75
	CostGetBlockNumber = 10
	CostGetBlock       = 16
	CostGetTxReceipt   = 15
)

const maxCost = CostGetLogs

// Limiter meters RPC calls of one domain in compute units.
// A nil Limiter does not limit.
type Limiter struct {
	limiter *rate.Limiter
	domain  uint32
}

// NewLimiter returns nil when cfg is nil, which disables limiting.
func NewLimiter(domain uint32, cfg *config.RateLimitConfig) *Limiter {
	if cfg == nil || cfg.ComputeUnitsPerSecond <= 0 {
		return nil
	}

	burst := max(cfg.Burst, maxCost)

	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.ComputeUnitsPerSecond), burst),
		domain:  domain,
	}
}

// Wait blocks until cost compute units are available or ctx is done.
func (l *Limiter) Wait(ctx context.Context, cost int) error {
	if l == nil {
		return nil
	}

	start := time.Now()
	err := l.limiter.WaitN(ctx, min(cost, l.limiter.Burst()))
	RPCRateLimitWaitLog(l.domain, time.Since(start))
	return err
}
