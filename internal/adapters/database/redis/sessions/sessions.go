package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Badsnus/qr-crafter-bot/internal/domain/common/errorz"
	"github.com/Badsnus/qr-crafter-bot/internal/domain/dto"
	"github.com/redis/go-redis/v9"
)

type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func key(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

func (s *Storage) Get(ctx context.Context, userID int64) (*dto.Session, error) {
	data, err := s.redis.Get(ctx, key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errorz.ErrSessionNotFound
		}
		return nil, err
	}

	var session dto.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %d: %w", userID, err)
	}
	return &session, nil
}

// Set stores the session snapshot, a zero ttl keeps it forever.
func (s *Storage) Set(ctx context.Context, session dto.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key(session.UserID), data, ttl).Err()
}

func (s *Storage) Delete(ctx context.Context, userID int64) error {
	return s.redis.Del(ctx, key(userID)).Err()
}
