package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/anantbhadani/CareerCraft/internal/config"
	"github.com/anantbhadani/CareerCraft/internal/database"
)

// OpenKV connects the backend named by cfg.Store.Driver. The returned close
// function releases its connections.
func OpenKV(ctx context.Context, cfg *config.Config) (KV, func() error, error) {
	switch cfg.Store.Driver {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return NewRedisKV(client, cfg.Redis.Prefix), client.Close, nil

	case config.StorePostgres:
		db, err := database.InitDatabase(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("unwrap db: %w", err)
		}
		return NewGormKV(db), sqlDB.Close, nil

	case config.StoreMemory:
		return NewMemoryKV(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
