package rdx

import (
	"context"
	"log"
	"os"
	"time"

	"cadastra/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

func init() {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	Conn = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}

// SetJSON stores a pre-marshalled JSON blob at key. Errors are logged, not
// returned; callers treat snapshot writes as fire-and-forget.
func SetJSON(key string, data []byte) {
	if err := Conn.Set(globals.Ctx, key, data, 0).Err(); err != nil {
		log.Println("Redis SET error for key", key, ":", err)
	}
}

// GetJSON fetches the blob at key. A missing key returns (nil, false).
func GetJSON(key string) ([]byte, bool) {
	val, err := Conn.Get(globals.Ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Println("Redis GET error for key", key, ":", err)
		return nil, false
	}
	return val, true
}

// Publish sends a payload on a pub/sub channel.
func Publish(channel string, data []byte) error {
	return Conn.Publish(globals.Ctx, channel, data).Err()
}

// HealthCheck pings Redis with a short timeout.
func HealthCheck() error {
	ctx, cancel := context.WithTimeout(globals.Ctx, 2*time.Second)
	defer cancel()
	return Conn.Ping(ctx).Err()
}
