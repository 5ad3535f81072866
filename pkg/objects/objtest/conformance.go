// Package objtest provides conformance tests for objects.Store
// implementations. Every backend must pass the same suite, so accessor
// behavior cannot drift between Redis and the in-memory substitute.
package objtest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/namihq/redisobj-go/pkg/objects"
)

// StoreFactory creates a fresh Store instance for testing
type StoreFactory func(t *testing.T) objects.Store

// testKey returns a unique key so suites can run against a shared Redis
// without stepping on each other
func testKey(name string) string {
	return fmt.Sprintf("objtest:%s:%s", name, uuid.NewString())
}

// RunConformanceTests runs all conformance tests against a Store implementation
func RunConformanceTests(t *testing.T, factory StoreFactory) {
	t.Run("HashOperations", func(t *testing.T) {
		testHashOperations(t, factory)
	})
	t.Run("ListOperations", func(t *testing.T) {
		testListOperations(t, factory)
	})
	t.Run("SortedSetOperations", func(t *testing.T) {
		testSortedSetOperations(t, factory)
	})
	t.Run("KeyOperations", func(t *testing.T) {
		testKeyOperations(t, factory)
	})
	t.Run("HealthCheck", func(t *testing.T) {
		store := factory(t)
		defer store.Close()
		if err := store.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})
}

func testHashOperations(t *testing.T, factory StoreFactory) {
	tests := []struct {
		name string
		test func(t *testing.T, store objects.Store)
	}{
		{"SetReportsNewField", testHSetReportsNewField},
		{"SetNXFirstWriteWins", testHSetNXFirstWriteWins},
		{"GetMissingField", testHGetMissingField},
		{"MultiGetAlignment", testHMGetAlignment},
		{"GetAllAndKeys", testHGetAllAndKeys},
		{"DeleteField", testHDelField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()
			tt.test(t, store)
		})
	}
}

func testHSetReportsNewField(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("hash")

	created, err := store.HSet(ctx, key, "field", []byte(`"a"`))
	if err != nil {
		t.Fatalf("HSet failed: %v", err)
	}
	if !created {
		t.Fatal("Expected first HSet to report a new field")
	}

	created, err = store.HSet(ctx, key, "field", []byte(`"b"`))
	if err != nil {
		t.Fatalf("HSet failed: %v", err)
	}
	if created {
		t.Fatal("Expected overwrite to report an existing field")
	}

	value, err := store.HGet(ctx, key, "field")
	if err != nil {
		t.Fatalf("HGet failed: %v", err)
	}
	if string(value) != `"b"` {
		t.Fatalf("Expected overwritten value, got %q", value)
	}
}

func testHSetNXFirstWriteWins(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("hash")

	added, err := store.HSetNX(ctx, key, "field", []byte(`1`))
	if err != nil {
		t.Fatalf("HSetNX failed: %v", err)
	}
	if !added {
		t.Fatal("Expected first HSetNX to write")
	}

	added, err = store.HSetNX(ctx, key, "field", []byte(`2`))
	if err != nil {
		t.Fatalf("HSetNX failed: %v", err)
	}
	if added {
		t.Fatal("Expected second HSetNX to be a no-op")
	}

	value, err := store.HGet(ctx, key, "field")
	if err != nil {
		t.Fatalf("HGet failed: %v", err)
	}
	if string(value) != `1` {
		t.Fatalf("Expected first write to win, got %q", value)
	}
}

func testHGetMissingField(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("hash")

	if _, err := store.HGet(ctx, key, "nope"); !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func testHMGetAlignment(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("hash")

	if _, err := store.HSet(ctx, key, "present", []byte(`"x"`)); err != nil {
		t.Fatalf("HSet failed: %v", err)
	}

	values, err := store.HMGet(ctx, key, "present", "missing")
	if err != nil {
		t.Fatalf("HMGet failed: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(values))
	}
	if string(values[0]) != `"x"` {
		t.Fatalf("Expected present field value, got %q", values[0])
	}
	if values[1] != nil {
		t.Fatalf("Expected nil for missing field, got %q", values[1])
	}
}

func testHGetAllAndKeys(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("hash")

	fields := map[string][]byte{"a": []byte(`1`), "b": []byte(`2`), "c": []byte(`3`)}
	for field, value := range fields {
		if _, err := store.HSet(ctx, key, field, value); err != nil {
			t.Fatalf("HSet failed: %v", err)
		}
	}

	all, err := store.HGetAll(ctx, key)
	if err != nil {
		t.Fatalf("HGetAll failed: %v", err)
	}
	if len(all) != len(fields) {
		t.Fatalf("Expected %d fields, got %d", len(fields), len(all))
	}
	for field, want := range fields {
		if string(all[field]) != string(want) {
			t.Fatalf("Field %s: expected %q, got %q", field, want, all[field])
		}
	}

	names, err := store.HKeys(ctx, key)
	if err != nil {
		t.Fatalf("HKeys failed: %v", err)
	}
	if len(names) != len(fields) {
		t.Fatalf("Expected %d field names, got %d", len(fields), len(names))
	}

	n, err := store.HLen(ctx, key)
	if err != nil {
		t.Fatalf("HLen failed: %v", err)
	}
	if n != int64(len(fields)) {
		t.Fatalf("Expected HLen %d, got %d", len(fields), n)
	}
}

func testHDelField(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("hash")

	if _, err := store.HSet(ctx, key, "field", []byte(`1`)); err != nil {
		t.Fatalf("HSet failed: %v", err)
	}

	deleted, err := store.HDel(ctx, key, "field")
	if err != nil {
		t.Fatalf("HDel failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("Expected 1 deleted field, got %d", deleted)
	}

	deleted, err = store.HDel(ctx, key, "field")
	if err != nil {
		t.Fatalf("HDel failed: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("Expected 0 deleted fields, got %d", deleted)
	}
}

func testListOperations(t *testing.T, factory StoreFactory) {
	tests := []struct {
		name string
		test func(t *testing.T, store objects.Store)
	}{
		{"FIFOOrder", testListFIFOOrder},
		{"PopEmpty", testListPopEmpty},
		{"BlockingPopImmediate", testListBlockingPopImmediate},
		{"BlockingPopTimeout", testListBlockingPopTimeout},
		{"BlockingPopUnblockedByPush", testListBlockingPopUnblockedByPush},
		{"BlockingPopCancellation", testListBlockingPopCancellation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()
			tt.test(t, store)
		})
	}
}

func testListFIFOOrder(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("list")

	for _, v := range []string{`"first"`, `"second"`, `"third"`} {
		if _, err := store.LPush(ctx, key, []byte(v)); err != nil {
			t.Fatalf("LPush failed: %v", err)
		}
	}

	n, err := store.LLen(ctx, key)
	if err != nil {
		t.Fatalf("LLen failed: %v", err)
	}
	if n != 3 {
		t.Fatalf("Expected length 3, got %d", n)
	}

	for _, want := range []string{`"first"`, `"second"`, `"third"`} {
		value, err := store.RPop(ctx, key)
		if err != nil {
			t.Fatalf("RPop failed: %v", err)
		}
		if string(value) != want {
			t.Fatalf("Expected %s, got %s", want, value)
		}
	}
}

func testListPopEmpty(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("list")

	if _, err := store.RPop(ctx, key); !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func testListBlockingPopImmediate(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("list")

	if _, err := store.LPush(ctx, key, []byte(`"ready"`)); err != nil {
		t.Fatalf("LPush failed: %v", err)
	}

	value, err := store.BRPop(ctx, key, time.Second)
	if err != nil {
		t.Fatalf("BRPop failed: %v", err)
	}
	if string(value) != `"ready"` {
		t.Fatalf("Expected ready item, got %s", value)
	}
}

func testListBlockingPopTimeout(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("list")

	start := time.Now()
	_, err := store.BRPop(ctx, key, time.Second)
	elapsed := time.Since(start)

	if !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on timeout, got %v", err)
	}
	if elapsed < 900*time.Millisecond {
		t.Fatalf("Timed out too early after %v", elapsed)
	}
	if elapsed > 3*time.Second {
		t.Fatalf("Timed out too late after %v", elapsed)
	}
}

func testListBlockingPopUnblockedByPush(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("list")

	go func() {
		time.Sleep(200 * time.Millisecond)
		store.LPush(ctx, key, []byte(`"late"`))
	}()

	value, err := store.BRPop(ctx, key, 5*time.Second)
	if err != nil {
		t.Fatalf("BRPop failed: %v", err)
	}
	if string(value) != `"late"` {
		t.Fatalf("Expected late item, got %s", value)
	}
}

func testListBlockingPopCancellation(t *testing.T, store objects.Store) {
	key := testKey("list")

	// A caller deadline must cut an indefinite wait short, and the abort
	// must not masquerade as an ordinary empty-queue timeout
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := store.BRPop(ctx, key, 0)
	if err == nil {
		t.Fatal("Expected cancellation error")
	}
	if errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Cancellation must not look like a timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Cancellation took %v", elapsed)
	}
}

func testSortedSetOperations(t *testing.T, factory StoreFactory) {
	tests := []struct {
		name string
		test func(t *testing.T, store objects.Store)
	}{
		{"PopMaxOrder", testZPopMaxOrder},
		{"ReAddKeepsCardinality", testZReAddKeepsCardinality},
		{"PopMaxEmpty", testZPopMaxEmpty},
		{"ScoreAndRank", testZScoreAndRank},
		{"BlockingPopMax", testBZPopMax},
		{"BlockingPopMaxTimeout", testBZPopMaxTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := factory(t)
			defer store.Close()
			tt.test(t, store)
		})
	}
}

func testZPopMaxOrder(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("zset")

	entries := []struct {
		member string
		score  float64
	}{
		{`"a"`, 1},
		{`"b"`, 5},
		{`"c"`, 3},
	}
	for _, e := range entries {
		if _, err := store.ZAdd(ctx, key, e.score, []byte(e.member)); err != nil {
			t.Fatalf("ZAdd failed: %v", err)
		}
	}

	for _, want := range []struct {
		member string
		score  float64
	}{
		{`"b"`, 5},
		{`"c"`, 3},
		{`"a"`, 1},
	} {
		member, score, err := store.ZPopMax(ctx, key)
		if err != nil {
			t.Fatalf("ZPopMax failed: %v", err)
		}
		if string(member) != want.member || score != want.score {
			t.Fatalf("Expected (%s, %v), got (%s, %v)", want.member, want.score, member, score)
		}
	}
}

func testZReAddKeepsCardinality(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("zset")

	added, err := store.ZAdd(ctx, key, 1, []byte(`"item"`))
	if err != nil {
		t.Fatalf("ZAdd failed: %v", err)
	}
	if added != 1 {
		t.Fatalf("Expected 1 new member, got %d", added)
	}

	added, err = store.ZAdd(ctx, key, 9, []byte(`"item"`))
	if err != nil {
		t.Fatalf("ZAdd failed: %v", err)
	}
	if added != 0 {
		t.Fatalf("Expected score update, not a new member, got %d", added)
	}

	n, err := store.ZCard(ctx, key)
	if err != nil {
		t.Fatalf("ZCard failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("Expected cardinality 1 after re-add, got %d", n)
	}

	score, err := store.ZScore(ctx, key, []byte(`"item"`))
	if err != nil {
		t.Fatalf("ZScore failed: %v", err)
	}
	if score != 9 {
		t.Fatalf("Expected updated score 9, got %v", score)
	}
}

func testZPopMaxEmpty(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("zset")

	if _, _, err := store.ZPopMax(ctx, key); !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func testZScoreAndRank(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("zset")

	for member, score := range map[string]float64{`"low"`: 1, `"mid"`: 2, `"high"`: 3} {
		if _, err := store.ZAdd(ctx, key, score, []byte(member)); err != nil {
			t.Fatalf("ZAdd failed: %v", err)
		}
	}

	rank, err := store.ZRevRank(ctx, key, []byte(`"high"`))
	if err != nil {
		t.Fatalf("ZRevRank failed: %v", err)
	}
	if rank != 0 {
		t.Fatalf("Expected highest-priority member at rank 0, got %d", rank)
	}

	rank, err = store.ZRevRank(ctx, key, []byte(`"low"`))
	if err != nil {
		t.Fatalf("ZRevRank failed: %v", err)
	}
	if rank != 2 {
		t.Fatalf("Expected lowest-priority member at rank 2, got %d", rank)
	}

	if _, err := store.ZScore(ctx, key, []byte(`"absent"`)); !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for absent member score, got %v", err)
	}
	if _, err := store.ZRevRank(ctx, key, []byte(`"absent"`)); !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for absent member rank, got %v", err)
	}
}

func testBZPopMax(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("zset")

	go func() {
		time.Sleep(200 * time.Millisecond)
		store.ZAdd(ctx, key, 7, []byte(`"urgent"`))
	}()

	member, score, err := store.BZPopMax(ctx, key, 5*time.Second)
	if err != nil {
		t.Fatalf("BZPopMax failed: %v", err)
	}
	if string(member) != `"urgent"` || score != 7 {
		t.Fatalf("Expected (\"urgent\", 7), got (%s, %v)", member, score)
	}
}

func testBZPopMaxTimeout(t *testing.T, store objects.Store) {
	ctx := context.Background()
	key := testKey("zset")

	start := time.Now()
	_, _, err := store.BZPopMax(ctx, key, time.Second)
	elapsed := time.Since(start)

	if !errors.Is(err, objects.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on timeout, got %v", err)
	}
	if elapsed < 900*time.Millisecond {
		t.Fatalf("Timed out too early after %v", elapsed)
	}
}

func testKeyOperations(t *testing.T, factory StoreFactory) {
	store := factory(t)
	defer store.Close()

	ctx := context.Background()
	hashKey := testKey("hash")
	listKey := testKey("list")

	if _, err := store.HSet(ctx, hashKey, "field", []byte(`1`)); err != nil {
		t.Fatalf("HSet failed: %v", err)
	}
	if _, err := store.LPush(ctx, listKey, []byte(`1`)); err != nil {
		t.Fatalf("LPush failed: %v", err)
	}

	count, err := store.Exists(ctx, hashKey, listKey, testKey("nope"))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 existing keys, got %d", count)
	}

	deleted, err := store.Del(ctx, hashKey, listKey)
	if err != nil {
		t.Fatalf("Del failed: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("Expected 2 deleted keys, got %d", deleted)
	}

	n, err := store.HLen(ctx, hashKey)
	if err != nil {
		t.Fatalf("HLen failed: %v", err)
	}
	if n != 0 {
		t.Fatalf("Expected empty hash after Del, got %d fields", n)
	}
}
