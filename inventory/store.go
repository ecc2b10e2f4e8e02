package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Store.Load when no save exists for a profile.
var ErrNotFound = errors.New("inventory: save not found")

// Store persists SaveData per profile.
type Store interface {
	Load(ctx context.Context, profile string) (*SaveData, error)
	Save(ctx context.Context, profile string, data *SaveData) error
}

// RedisStore keeps each profile's save as a JSON string under
// "<prefix>:inventory:<profile>".
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisStore connects to addr and pings it.
func NewRedisStore(ctx context.Context, addr, prefix string, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("inventory: connect redis %s: %w", addr, err)
	}
	return NewRedisStoreWithClient(client, prefix, logger), nil
}

func NewRedisStoreWithClient(client *redis.Client, prefix string, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisStore) key(profile string) string {
	return s.prefix + ":inventory:" + profile
}

func (s *RedisStore) Load(ctx context.Context, profile string) (*SaveData, error) {
	raw, err := s.client.Get(ctx, s.key(profile)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("inventory: load %s: %w", profile, err)
	}

	var data SaveData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("inventory: decode %s: %w", profile, err)
	}
	s.logger.Debug("inventory loaded", zap.String("profile", profile), zap.Int("stacks", len(data.Inventory)))
	return &data, nil
}

func (s *RedisStore) Save(ctx context.Context, profile string, data *SaveData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("inventory: encode %s: %w", profile, err)
	}
	if err := s.client.Set(ctx, s.key(profile), raw, 0).Err(); err != nil {
		return fmt.Errorf("inventory: save %s: %w", profile, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
