package objects_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/namihq/redisobj-go/pkg/objects"
	"github.com/namihq/redisobj-go/pkg/objects/memory"
)

type job struct {
	ID       string   `json:"id"`
	Attempts int      `json:"attempts"`
	Tags     []string `json:"tags,omitempty"`
}

func newTestClient(t *testing.T, opts ...objects.Option) *objects.Client {
	t.Helper()
	client := objects.NewClient(memory.New(), opts...)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestHashRoundTrip(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[job](newTestClient(t), "jobs")

	want := job{ID: "j1", Attempts: 2, Tags: []string{"slow", "batch"}}
	created, err := hash.Set(ctx, "j1", want)
	require.NoError(t, err)
	assert.True(t, created)

	got, err := hash.Get(ctx, "j1")
	require.NoError(t, err)
	v, ok := got.Get()
	require.True(t, ok)
	assert.Equal(t, want, v)
}

func TestHashSetReportsInsertOnce(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[int](newTestClient(t), "counts")

	created, err := hash.Set(ctx, "f", 1)
	require.NoError(t, err)
	assert.True(t, created, "first write is an insert")

	created, err = hash.Set(ctx, "f", 2)
	require.NoError(t, err)
	assert.False(t, created, "second write is an overwrite")

	got, err := hash.Get(ctx, "f")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Or(0))
}

func TestHashAddFirstWriteWins(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[string](newTestClient(t), "settings")

	added, err := hash.Add(ctx, "mode", "fast")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = hash.Add(ctx, "mode", "slow")
	require.NoError(t, err)
	assert.False(t, added)

	got, err := hash.Get(ctx, "mode")
	require.NoError(t, err)
	assert.Equal(t, "fast", got.Or(""))
}

func TestHashGetMissingIsAbsent(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[job](newTestClient(t), "jobs")

	got, err := hash.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, got.Present())
}

func TestHashMultiGetSkipsMissingFields(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[string](newTestClient(t), "partial")

	_, err := hash.Set(ctx, "f1", "present")
	require.NoError(t, err)

	result, err := hash.MultiGet(ctx, "f1", "f2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"f1": "present"}, result)

	result, err = hash.MultiGet(ctx)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestHashGetAllKeysSize(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[int](newTestClient(t), "scores")

	for field, value := range map[string]int{"a": 1, "b": 2, "c": 3} {
		_, err := hash.Set(ctx, field, value)
		require.NoError(t, err)
	}

	all, err := hash.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2, "c": 3}, all)

	keys, err := hash.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, keys)

	size, err := hash.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
}

func TestHashDeleteAndClear(t *testing.T) {
	ctx := context.Background()
	hash := objects.NewHash[int](newTestClient(t), "scores")

	_, err := hash.Set(ctx, "a", 1)
	require.NoError(t, err)
	_, err = hash.Set(ctx, "b", 2)
	require.NoError(t, err)

	existed, err := hash.Delete(ctx, "a")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = hash.Delete(ctx, "a")
	require.NoError(t, err)
	assert.False(t, existed)

	require.NoError(t, hash.Clear(ctx))

	size, err := hash.Size(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)

	got, err := hash.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, got.Present())
}

func TestHashCorruptValueIsAnError(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	hash := objects.NewHash[job](client, "jobs")

	// Plant raw bytes that are not valid JSON behind the accessor's back
	_, err := client.Store().HSet(ctx, "jobs", "broken", []byte("{not json"))
	require.NoError(t, err)

	_, err = hash.Get(ctx, "broken")
	require.ErrorIs(t, err, objects.ErrCorruptValue)
}
