package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/Badsnus/qr-crafter-bot/internal/adapters/database/redis/locks"
	"github.com/Badsnus/qr-crafter-bot/internal/adapters/database/redis/sessions"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	Sessions *sessions.Storage
	Locks    *locks.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
	// LockTTL bounds the lifetime of an export lock.
	LockTTL time.Duration
}

func newClient(opts Options, db int, name string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping %s storage: %w", name, err)
	}
	return client, nil
}

func New(opts Options) (*Client, error) {
	sessionStorage, err := newClient(opts, 0, "session")
	if err != nil {
		return nil, err
	}

	lockStorage, err := newClient(opts, 1, "lock")
	if err != nil {
		return nil, err
	}

	lockTTL := opts.LockTTL
	if lockTTL <= 0 {
		lockTTL = time.Minute
	}

	return &Client{
		Sessions: sessions.NewStorage(sessionStorage),
		Locks:    locks.NewStorage(lockStorage, lockTTL),
	}, nil
}
