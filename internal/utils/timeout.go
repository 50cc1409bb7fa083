package utils

import (
	"context"
	"time"
)

// Store access is bounded per backend so a slow node cannot stall a shopper
// request for longer than the request itself is worth. Redis sits on the
// cart hot path and gets a tighter budget than Postgres.
const (
	SQLTimeout   = 5 * time.Second
	RedisTimeout = 2 * time.Second
)

func WithSQLTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, SQLTimeout)
}

func WithRedisTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, RedisTimeout)
}
