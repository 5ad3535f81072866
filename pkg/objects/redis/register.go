package redis

import (
	"fmt"

	"github.com/namihq/redisobj-go/pkg/objects"
)

func init() {
	objects.RegisterBackend(objects.BackendRedis, func(cfg objects.Config) (objects.Store, error) {
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis URL is required when backend is 'redis'")
		}
		return New(cfg.RedisURL)
	})
}

// NewStore creates a new Redis-backed store
func NewStore(redisURL string) (objects.Store, error) {
	return New(redisURL)
}
