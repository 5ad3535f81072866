package objects_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namihq/redisobj-go/pkg/objects"
)

func TestQueueFIFOOrder(t *testing.T) {
	ctx := context.Background()
	queue := objects.NewQueue[string](newTestClient(t), "work")

	require.NoError(t, queue.Push(ctx, "first"))
	require.NoError(t, queue.Push(ctx, "second"))

	got, err := queue.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Or(""))

	got, err = queue.Pop(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Or(""))
}

func TestQueuePopReadyEmptyReturnsImmediately(t *testing.T) {
	ctx := context.Background()
	queue := objects.NewQueue[string](newTestClient(t), "work")

	start := time.Now()
	got, err := queue.PopReady(ctx)
	require.NoError(t, err)
	assert.False(t, got.Present())
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestQueuePopTimesOut(t *testing.T) {
	ctx := context.Background()
	queue := objects.NewQueue[string](newTestClient(t), "work")

	start := time.Now()
	got, err := queue.Pop(ctx, time.Second)
	elapsed := time.Since(start)

	require.NoError(t, err, "a timeout is not an error")
	assert.False(t, got.Present())
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond)
}

func TestQueuePopUnblockedByConcurrentPush(t *testing.T) {
	ctx := context.Background()
	queue := objects.NewQueue[job](newTestClient(t), "work")

	go func() {
		time.Sleep(200 * time.Millisecond)
		queue.Push(ctx, job{ID: "late"})
	}()

	got, err := queue.Pop(ctx, 5*time.Second)
	require.NoError(t, err)
	v, ok := got.Get()
	require.True(t, ok)
	assert.Equal(t, "late", v.ID)
}

func TestQueueLengthAndClear(t *testing.T) {
	ctx := context.Background()
	queue := objects.NewQueue[int](newTestClient(t), "work")

	for i := 0; i < 3; i++ {
		require.NoError(t, queue.Push(ctx, i))
	}

	n, err := queue.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	require.NoError(t, queue.Clear(ctx))

	n, err = queue.Length(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := queue.PopReady(ctx)
	require.NoError(t, err)
	assert.False(t, got.Present())
}
