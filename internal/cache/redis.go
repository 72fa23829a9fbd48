package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/glowbook/artist-scheduler/internal/config"
	"github.com/glowbook/artist-scheduler/internal/logger"
)

// NewClient connects to redis. The cache is an optimization, not a
// dependency: when redis is unreachable the caller gets nil and
// availability reads go straight to postgres.
func NewClient(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Get().Warn("redis unavailable, availability cache disabled",
			zap.String("addr", cfg.RedisAddr),
			zap.Error(err),
		)
		return nil
	}

	return client
}
