// Package rediscache provides a read-through cache in front of the
// product repository. Catalog rows change rarely, so a short TTL keeps
// the hot path off PostgreSQL without a dedicated invalidation channel.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/davidrico/checkout/internal/domain/product"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultTTL is used when no TTL is configured.
const DefaultTTL = 5 * time.Minute

// ProductCache wraps a product.Repository with a Redis read-through
// cache. Cache failures degrade to the inner repository, never to an
// error.
type ProductCache struct {
	inner  product.Repository
	client *goredis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewProductCache creates a caching product repository.
func NewProductCache(inner product.Repository, client *goredis.Client, ttl time.Duration, logger zerolog.Logger) *ProductCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProductCache{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(id string) string {
	return fmt.Sprintf("product:%s", id)
}

// GetByID serves from cache when possible, falling back to the inner
// repository. Only found products are cached; absence is not.
func (c *ProductCache) GetByID(ctx context.Context, id string) (*product.Product, error) {
	key := cacheKey(id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		p := &product.Product{}
		if err := json.Unmarshal(data, p); err == nil {
			return p, nil
		}
		c.logger.Warn().Str("key", key).Msg("corrupt cache entry, deleting")
		c.client.Del(ctx, key)
	} else if !errors.Is(err, goredis.Nil) {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back")
	}

	p, err := c.inner.GetByID(ctx, id)
	if err != nil || p == nil {
		return p, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	return p, nil
}
