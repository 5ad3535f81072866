package objects

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Store methods when a key, field or member is
// not present. Accessors translate it into an absent Value.
var ErrNotFound = errors.New("not found")

// ErrBackendUnavailable is returned when the backend storage is unavailable
var ErrBackendUnavailable = errors.New("backend unavailable")

// ErrCorruptValue is wrapped around decode failures for raw data that does
// not parse as the configured encoding.
var ErrCorruptValue = errors.New("corrupt value")

// Store defines the remote operations the accessors are built on. It is the
// injected connection collaborator: implementations exist for Redis and for
// an in-memory substitute used in development and tests.
//
// Blocking operations honor context cancellation; a timeout of zero means
// "wait indefinitely", matching the Redis convention.
type Store interface {
	// Hash operations. HSet and HSetNX report whether the field was newly
	// created. HMGet results are index-aligned with the requested fields;
	// missing fields are nil entries, never an error.
	HSet(ctx context.Context, key, field string, value []byte) (bool, error)
	HSetNX(ctx context.Context, key, field string, value []byte) (bool, error)
	HGet(ctx context.Context, key, field string) ([]byte, error)
	HMGet(ctx context.Context, key string, fields ...string) ([][]byte, error)
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
	HKeys(ctx context.Context, key string) ([]string, error)
	HLen(ctx context.Context, key string) (int64, error)
	HDel(ctx context.Context, key string, fields ...string) (int64, error)

	// List operations. BRPop returns ErrNotFound when the timeout elapses
	// with nothing to pop; cancelling the context aborts the wait with
	// ctx.Err().
	LPush(ctx context.Context, key string, values ...[]byte) (int64, error)
	RPop(ctx context.Context, key string) ([]byte, error)
	BRPop(ctx context.Context, key string, timeout time.Duration) ([]byte, error)
	LLen(ctx context.Context, key string) (int64, error)

	// Sorted set operations. ZAdd reports how many members were newly
	// added (0 when an existing member had its score updated). BZPopMax
	// follows the same timeout rules as BRPop.
	ZAdd(ctx context.Context, key string, score float64, member []byte) (int64, error)
	ZPopMax(ctx context.Context, key string) ([]byte, float64, error)
	BZPopMax(ctx context.Context, key string, timeout time.Duration) ([]byte, float64, error)
	ZScore(ctx context.Context, key string, member []byte) (float64, error)
	ZRevRank(ctx context.Context, key string, member []byte) (int64, error)
	ZCard(ctx context.Context, key string) (int64, error)

	// Key operations
	Del(ctx context.Context, keys ...string) (int64, error)
	Exists(ctx context.Context, keys ...string) (int64, error)

	// Health check
	Ping(ctx context.Context) error

	// Cleanup
	Close() error
}
