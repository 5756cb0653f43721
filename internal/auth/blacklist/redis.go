package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "idli:blacklist:"

// Redis is a blacklist shared across instances, leaning on Redis's native
// TTL for pruning.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{
		client: client,
		prefix: defaultKeyPrefix,
	}
}

func (b *Redis) Add(ctx context.Context, accessToken string, ttl time.Duration) error {
	key := b.prefix + accessToken

	if err := b.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (b *Redis) Contains(ctx context.Context, accessToken string) (bool, error) {
	key := b.prefix + accessToken

	n, err := b.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return n > 0, nil
}

func (b *Redis) Close() error {
	return b.client.Close()
}
