package objects_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namihq/redisobj-go/pkg/objects"
)

func TestMetricsRecordedThroughClient(t *testing.T) {
	metrics, handler, err := objects.SetupMetrics("redisobj-test")
	require.NoError(t, err)

	ctx := context.Background()
	client := newTestClient(t, objects.WithMetrics(metrics))
	queue := client.Queue("metered")

	require.NoError(t, queue.Push(ctx, "item"))

	got, err := queue.Pop(ctx, time.Second)
	require.NoError(t, err)
	require.True(t, got.Present())

	// Empty pop records a miss
	got, err = queue.PopReady(ctx)
	require.NoError(t, err)
	require.False(t, got.Present())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "robj_ops_total")
	assert.Contains(t, body, "robj_hits_total")
	assert.Contains(t, body, "robj_misses_total")
}
