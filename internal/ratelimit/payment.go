package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/warungkit/warungpos/internal/config"
)

const keyPaymentCashier = "payment:cashier:%s"

// PaymentLimiter throttles payment submissions per cashier. A nil
// limiter means rate limiting is disabled and every request passes.
type PaymentLimiter struct {
	bucket *TokenBucket
	rate   float64
	burst  int
}

func NewPaymentLimiter(cfg config.Config) (*PaymentLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled {
		return nil, nil
	}

	addr := strings.TrimSpace(limitCfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}
	if limitCfg.PaymentPerMinute <= 0 {
		return nil, errors.New("payment rate limit must be positive")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(limitCfg.RedisPassword),
	})

	return &PaymentLimiter{
		bucket: NewTokenBucket(client),
		rate:   float64(limitCfg.PaymentPerMinute) / 60,
		burst:  limitCfg.PaymentPerMinute,
	}, nil
}

func (l *PaymentLimiter) Enabled() bool {
	return l != nil
}

func (l *PaymentLimiter) AllowCashier(ctx context.Context, cashierID string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	return l.bucket.Allow(ctx, fmt.Sprintf(keyPaymentCashier, strings.TrimSpace(cashierID)), l.rate, l.burst)
}
