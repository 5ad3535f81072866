package objects_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namihq/redisobj-go/pkg/objects"
)

func TestPriorityQueuePopsDescendingPriority(t *testing.T) {
	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](newTestClient(t), "tasks")

	require.NoError(t, pq.Push(ctx, "a", 1))
	require.NoError(t, pq.Push(ctx, "b", 5))
	require.NoError(t, pq.Push(ctx, "c", 3))

	for _, want := range []string{"b", "c", "a"} {
		got, err := pq.PopReady(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got.Or(""))
	}

	got, err := pq.PopReady(ctx)
	require.NoError(t, err)
	assert.False(t, got.Present())
}

func TestPriorityQueueRePushUpdatesWithoutDuplicating(t *testing.T) {
	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](newTestClient(t), "tasks")

	require.NoError(t, pq.Push(ctx, "item", 1))
	require.NoError(t, pq.Push(ctx, "other", 5))

	n, err := pq.Length(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	// Re-pushing overwrites the priority, leaving the length unchanged
	require.NoError(t, pq.Push(ctx, "item", 9))

	n, err = pq.Length(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	score, err := pq.Score(ctx, "item")
	require.NoError(t, err)
	assert.Equal(t, 9.0, score.Or(0))

	rank, err := pq.Rank(ctx, "item")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rank.Or(-1))
}

func TestPriorityQueueScoreAndRankAbsent(t *testing.T) {
	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](newTestClient(t), "tasks")

	score, err := pq.Score(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, score.Present())

	rank, err := pq.Rank(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, rank.Present())
}

func TestPriorityQueueBlockingPop(t *testing.T) {
	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](newTestClient(t), "tasks")

	go func() {
		time.Sleep(200 * time.Millisecond)
		pq.Push(ctx, "urgent", 10)
	}()

	got, err := pq.Pop(ctx, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "urgent", got.Or(""))
}

func TestPriorityQueuePopTimesOut(t *testing.T) {
	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](newTestClient(t), "tasks")

	got, err := pq.Pop(ctx, time.Second)
	require.NoError(t, err, "a timeout is not an error")
	assert.False(t, got.Present())
}

func TestPriorityQueueClear(t *testing.T) {
	ctx := context.Background()
	pq := objects.NewPriorityQueue[string](newTestClient(t), "tasks")

	require.NoError(t, pq.Push(ctx, "a", 1))
	require.NoError(t, pq.Clear(ctx))

	n, err := pq.Length(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
