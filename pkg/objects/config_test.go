package objects_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namihq/redisobj-go/pkg/objects"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := objects.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, objects.BackendRedis, cfg.Backend)
	assert.Equal(t, "redis://127.0.0.1:6379/0", cfg.RedisURL)
	assert.Empty(t, cfg.Namespace)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ROBJ_BACKEND", "memory")
	t.Setenv("ROBJ_NAMESPACE", "staging")

	cfg, err := objects.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, objects.BackendMemory, cfg.Backend)
	assert.Equal(t, "staging", cfg.Namespace)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("ROBJ_BACKEND", "etcd")

	_, err := objects.LoadConfig()
	require.Error(t, err)
}
