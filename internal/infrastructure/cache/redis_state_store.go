package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/salesbridge/backend/internal/domain/resolution"
)

// RedisStateStore persists refresh state in Redis so that multiple
// instances share one watermark and config-dirty flag.
type RedisStateStore struct {
	client *redis.Client
	key    string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisStateStore creates a new Redis-backed refresh state store
func NewRedisStateStore(cfg RedisConfig) (*RedisStateStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStateStore{
		client: client,
		key:    "salesbridge:refresh:state",
	}, nil
}

// NewRedisStateStoreWithClient creates a store with an existing client,
// useful for testing or sharing a client across components.
func NewRedisStateStoreWithClient(client *redis.Client, key string) *RedisStateStore {
	if key == "" {
		key = "salesbridge:refresh:state"
	}
	return &RedisStateStore{client: client, key: key}
}

// Get loads the stored refresh state. A missing key yields a zero state
// with ConfigDirty set, which forces the next refresh to run full.
func (s *RedisStateStore) Get(ctx context.Context) (*resolution.RefreshState, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return &resolution.RefreshState{ConfigDirty: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load refresh state: %w", err)
	}

	var state resolution.RefreshState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("failed to decode refresh state: %w", err)
	}
	return &state, nil
}

// Put replaces the stored refresh state
func (s *RedisStateStore) Put(ctx context.Context, state *resolution.RefreshState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode refresh state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store refresh state: %w", err)
	}
	return nil
}

// MarkConfigDirty flags the configuration as changed
func (s *RedisStateStore) MarkConfigDirty(ctx context.Context) error {
	state, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if state.ConfigDirty {
		return nil
	}
	state.ConfigDirty = true
	return s.Put(ctx, state)
}

// Close closes the underlying Redis client
func (s *RedisStateStore) Close() error {
	return s.client.Close()
}

var _ resolution.StateStore = (*RedisStateStore)(nil)
