package ratelimit

import (
	"context"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/ecoai/internal/config"
)

const keyEnergyIngest = "ecoai:ingest:company:%s"

// IngestLimiter throttles energy writes per company. A nil limiter allows everything.
type IngestLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

// NewIngestLimiter returns nil when Redis or the limit is not configured.
func NewIngestLimiter(client *redis.Client, cfg config.Config) *IngestLimiter {
	limit := cfg.RateLimit
	if client == nil || !limit.Enabled || limit.IngestRate <= 0 || limit.IngestBurst <= 0 {
		return nil
	}
	return &IngestLimiter{
		bucket: NewTokenBucket(client),
		rate:   limit.IngestRate,
		burst:  limit.IngestBurst,
	}
}

func (l *IngestLimiter) Enabled() bool {
	return l != nil && l.bucket != nil
}

func (l *IngestLimiter) Allow(ctx context.Context, companyID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyEnergyIngest, companyID), l.rate, l.burst)
}
