package config

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisMu     sync.Mutex
)

// ConnectRedis opens the shared Redis client (idempotent). It returns nil
// when no address is configured or the ping fails; callers fall back to the
// in-process cache.
func ConnectRedis(env Env) *redis.Client {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		return redisClient
	}
	if env.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         env.RedisAddr,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Gagal ping Redis (%s): %v", env.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	redisClient = client
	log.Println("Berhasil konek ke Redis")
	return redisClient
}

func CloseRedis() {
	redisMu.Lock()
	defer redisMu.Unlock()

	if redisClient != nil {
		_ = redisClient.Close()
		redisClient = nil
	}
}
