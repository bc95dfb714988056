package cache

import (
	"context"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listingViewKey      = "views:reports:index"
	reportViewKeyPrefix = "views:reports:"
	invalidationChannel = "views:invalidations"
)

// RedisViewInvalidator signals stale cached renderings by dropping the view
// keys the presentation layer caches under and publishing the affected key on
// a channel for renderers that subscribe instead of polling.
type RedisViewInvalidator struct {
	client *redis.Client
}

func NewRedisViewInvalidator(client *redis.Client) *RedisViewInvalidator {
	return &RedisViewInvalidator{client: client}
}

func (v *RedisViewInvalidator) InvalidateListing(ctx context.Context) error {
	return v.invalidate(ctx, listingViewKey)
}

func (v *RedisViewInvalidator) InvalidateReport(ctx context.Context, avalancheID uuid.UUID) error {
	return v.invalidate(ctx, reportViewKeyPrefix+avalancheID.String())
}

func (v *RedisViewInvalidator) invalidate(ctx context.Context, key string) error {
	_, err := v.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		p.Publish(ctx, invalidationChannel, key)
		return nil
	})
	return err
}
