package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/decisio-app/decisio-backend/config"
)

// OpenRedis connects to redis. A dead redis is not fatal: the service runs
// without the context cache and logs the degradation.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable at %s, running without context cache: %v", cfg.Addr, err)
		_ = client.Close()
		return nil
	}

	return client
}
