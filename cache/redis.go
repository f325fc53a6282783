package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Board caches rendered TV board payloads in Redis. A Board with no client
// (Redis not configured or unreachable) misses every Get and ignores writes,
// so callers never branch on availability.
type Board struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. An empty addr disables caching; a failed
// ping is logged and also disables caching.
func New(addr, password string, db int, ttl time.Duration) *Board {
	b := &Board{ttl: ttl}
	if addr == "" {
		return b
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[Cache] Redis at %s unavailable, board cache disabled: %v", addr, err)
		client.Close()
		return b
	}
	log.Printf("[Cache] Connected to Redis at %s", addr)
	b.client = client
	return b
}

func (b *Board) Enabled() bool {
	return b != nil && b.client != nil
}

func (b *Board) Get(ctx context.Context, key string) ([]byte, bool) {
	if !b.Enabled() {
		return nil, false
	}
	data, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (b *Board) Set(ctx context.Context, key string, data []byte) {
	if !b.Enabled() || b.ttl <= 0 {
		return
	}
	if err := b.client.Set(ctx, key, data, b.ttl).Err(); err != nil {
		log.Printf("[Cache] Set %s failed: %v", key, err)
	}
}

func (b *Board) Invalidate(ctx context.Context, keys ...string) {
	if !b.Enabled() || len(keys) == 0 {
		return
	}
	if err := b.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[Cache] Invalidate %v failed: %v", keys, err)
	}
}

// Ping reports Redis health; a disabled cache is healthy.
func (b *Board) Ping(ctx context.Context) error {
	if !b.Enabled() {
		return nil
	}
	return b.client.Ping(ctx).Err()
}

func (b *Board) Close() error {
	if !b.Enabled() {
		return nil
	}
	return b.client.Close()
}
