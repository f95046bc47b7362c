package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores each record as a plain string key: <prefix>:<workspace>:<key>.
type RedisKV struct {
	client redis.Cmdable
	prefix string
}

// NewRedisKV wraps a go-redis client. An empty prefix defaults to "careercraft".
func NewRedisKV(client redis.Cmdable, prefix string) *RedisKV {
	if prefix == "" {
		prefix = "careercraft"
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) redisKey(workspace, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, workspace, key)
}

func (r *RedisKV) Get(ctx context.Context, workspace, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.redisKey(workspace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

func (r *RedisKV) Set(ctx context.Context, workspace, key string, value []byte) error {
	if err := r.client.Set(ctx, r.redisKey(workspace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, workspace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.redisKey(workspace, k))
	}
	if err := r.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
