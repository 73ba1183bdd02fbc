package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/salesbridge/backend/internal/domain/resolution"
	"github.com/salesbridge/backend/internal/infrastructure/config"
)

// StateStoreFactory creates refresh state stores based on configuration
type StateStoreFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StateStoreFactoryOption is a functional option for configuring the factory
type StateStoreFactoryOption func(*StateStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StateStoreFactoryOption {
	return func(f *StateStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory
// store when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StateStoreFactoryOption {
	return func(f *StateStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStateStoreFactory creates a new factory
func NewStateStoreFactory(cfg config.RedisConfig, opts ...StateStoreFactoryOption) *StateStoreFactory {
	f := &StateStoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateStore creates a refresh state store. When Redis is enabled it
// is tried first; failure falls back to memory if allowed.
func (f *StateStoreFactory) CreateStore() (resolution.StateStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory refresh state store")
		return NewInMemoryStateStore(), nil
	}

	store, err := NewRedisStateStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err == nil {
		f.logger.Info("using Redis refresh state store",
			zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("failed to create Redis refresh state store: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory refresh state store",
		zap.Error(err))
	return NewInMemoryStateStore(), nil
}
