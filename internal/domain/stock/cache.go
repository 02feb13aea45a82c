package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/example/bookstore-gateway/internal/query"
)

// pager is the read operation the cache wraps.
type pager interface {
	GetPagination(ctx context.Context, q query.PaginationQuery) (json.RawMessage, error)
}

// PaginationCache serves repeated stock pagination queries from Redis.
// Entries expire by TTL only; a Redis failure falls through to the
// downstream query.
type PaginationCache struct {
	base   pager
	redis  *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewPaginationCache(base pager, client *redis.Client, ttl time.Duration, logger *slog.Logger) *PaginationCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PaginationCache{base: base, redis: client, ttl: ttl, logger: logger}
}

func (c *PaginationCache) GetPagination(ctx context.Context, q query.PaginationQuery) (json.RawMessage, error) {
	key := c.key(q)

	if cached, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		return cached, nil
	} else if err != redis.Nil {
		c.logger.Warn("pagination cache read failed", "error", err)
	}

	page, err := c.base.GetPagination(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := c.redis.Set(ctx, key, []byte(page), c.ttl).Err(); err != nil {
		c.logger.Warn("pagination cache write failed", "error", err)
	}
	return page, nil
}

func (c *PaginationCache) key(q query.PaginationQuery) string {
	return fmt.Sprintf("books-stock:pagination:%s:%s:%s:%d", q.Category, q.KSort, q.BookName, q.Page)
}
