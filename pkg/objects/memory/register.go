package memory

import (
	"github.com/namihq/redisobj-go/pkg/objects"
)

func init() {
	objects.RegisterBackend(objects.BackendMemory, func(cfg objects.Config) (objects.Store, error) {
		return New(), nil
	})
}

// NewStore creates a new in-memory store
func NewStore() objects.Store {
	return New()
}
