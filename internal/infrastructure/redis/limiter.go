package redis

import (
	"context"
	"time"
)

// Limiter ventana fija sobre INCR + EXPIRE.
type Limiter struct {
	client *Client
	limit  int64
	window time.Duration
}

// NewLimiter permite limit intentos por clave en cada ventana.
func (c *Client) NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{client: c, limit: int64(limit), window: window}
}

// Allow cuenta el intento y dice si sigue dentro del límite.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.client.incrWithTTL(ctx, buildKey("rate_limit", key), l.window)
	if err != nil {
		return false, err
	}
	return count <= l.limit, nil
}
