package locks

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage holds short-lived exclusive flags, one per key.
type Storage struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStorage creates a lock storage. ttl bounds how long a lock survives a
// crashed holder.
func NewStorage(client *redis.Client, ttl time.Duration) *Storage {
	return &Storage{
		redis: client,
		ttl:   ttl,
	}
}

func key(name string) string {
	return fmt.Sprintf("lock:%s", name)
}

func (s *Storage) Acquire(ctx context.Context, name string) (bool, error) {
	return s.redis.SetNX(ctx, key(name), 1, s.ttl).Result()
}

func (s *Storage) Release(ctx context.Context, name string) error {
	return s.redis.Del(ctx, key(name)).Err()
}
