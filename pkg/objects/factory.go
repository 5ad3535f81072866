package objects

import "fmt"

// Backend represents the storage backend type
type Backend string

const (
	// BackendMemory uses the in-memory store
	BackendMemory Backend = "memory"
	// BackendRedis uses Redis as the backend
	BackendRedis Backend = "redis"
)

// Config holds configuration for creating a Store instance
type Config struct {
	// Backend specifies which storage backend to use
	Backend Backend

	// RedisURL is the connection string for Redis (required when Backend is "redis")
	// Format: redis://localhost:6379/0 or redis://:password@localhost:6379/1
	RedisURL string

	// Namespace is an optional prefix applied to every structure key by
	// clients built from this config.
	Namespace string
}

// StoreFactory defines a function that creates a Store instance
type StoreFactory func(cfg Config) (Store, error)

// factories holds registered store factories
var factories = make(map[Backend]StoreFactory)

// RegisterBackend registers a store factory for a given backend
func RegisterBackend(backend Backend, factory StoreFactory) {
	factories[backend] = factory
}

// NewStoreFromConfig creates a new Store instance based on the provided
// configuration. The backend package must be imported so its init hook has
// registered the factory.
func NewStoreFromConfig(cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendMemory, BackendRedis:
		factory, exists := factories[cfg.Backend]
		if !exists {
			return nil, fmt.Errorf("%s backend not registered", cfg.Backend)
		}
		return factory(cfg)

	default:
		return nil, fmt.Errorf("unsupported backend: %s (supported: %s, %s)",
			cfg.Backend, BackendMemory, BackendRedis)
	}
}

// NewClientFromConfig builds the store named by cfg and wraps it in a
// Client, applying the configured namespace before any extra options.
func NewClientFromConfig(cfg Config, opts ...Option) (*Client, error) {
	store, err := NewStoreFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Namespace != "" {
		opts = append([]Option{WithNamespace(cfg.Namespace)}, opts...)
	}
	return NewClient(store, opts...), nil
}
