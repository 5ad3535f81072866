package objects

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Queue is an accessor for one remote FIFO queue of values of type T,
// backed by a list: pushes go to the head, pops come off the tail.
type Queue[T any] struct {
	key string
	c   *Client
}

// NewQueue returns an accessor for the named queue. Construction performs
// no I/O.
func NewQueue[T any](c *Client, name string) *Queue[T] {
	return &Queue[T]{key: c.key(name), c: c}
}

// Key returns the remote key this accessor addresses.
func (q *Queue[T]) Key() string {
	return q.key
}

// Push appends value to the queue.
func (q *Queue[T]) Push(ctx context.Context, value T) error {
	data, err := encode(q.c.codec, value)
	if err != nil {
		return err
	}
	if _, err := q.c.store.LPush(ctx, q.key, data); err != nil {
		q.c.errorw("queue push error", "key", q.key, "error", err)
		return fmt.Errorf("queue push error: %w", err)
	}
	q.c.recordOp(ctx, "queue", "push")
	q.c.debugw("queue item pushed", "key", q.key)
	return nil
}

// Pop removes and returns the oldest item, waiting up to timeout for one to
// become available. A timeout of zero waits indefinitely. Only the calling
// goroutine waits; concurrent pushes through the same client proceed and
// unblock it. An elapsed timeout is an absent Value, not an error.
func (q *Queue[T]) Pop(ctx context.Context, timeout time.Duration) (Value[T], error) {
	start := time.Now()
	data, err := q.c.store.BRPop(ctx, q.key, timeout)
	q.c.recordWait(ctx, "queue", time.Since(start))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			q.c.recordMiss(ctx, q.key)
			return None[T](), nil
		}
		q.c.errorw("queue pop error", "key", q.key, "error", err)
		return None[T](), fmt.Errorf("queue pop error: %w", err)
	}
	v, err := decode[T](q.c.codec, data)
	if err != nil {
		return None[T](), err
	}
	q.c.recordHit(ctx, q.key)
	return Some(v), nil
}

// PopReady removes and returns the oldest item without waiting. An empty
// queue is an absent Value.
func (q *Queue[T]) PopReady(ctx context.Context) (Value[T], error) {
	data, err := q.c.store.RPop(ctx, q.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			q.c.recordMiss(ctx, q.key)
			return None[T](), nil
		}
		q.c.errorw("queue pop error", "key", q.key, "error", err)
		return None[T](), fmt.Errorf("queue pop error: %w", err)
	}
	v, err := decode[T](q.c.codec, data)
	if err != nil {
		return None[T](), err
	}
	q.c.recordHit(ctx, q.key)
	return Some(v), nil
}

// Length returns the current number of items.
func (q *Queue[T]) Length(ctx context.Context) (int64, error) {
	n, err := q.c.store.LLen(ctx, q.key)
	if err != nil {
		return 0, fmt.Errorf("queue length error: %w", err)
	}
	return n, nil
}

// Clear removes the entire queue.
func (q *Queue[T]) Clear(ctx context.Context) error {
	if _, err := q.c.store.Del(ctx, q.key); err != nil {
		q.c.errorw("queue clear error", "key", q.key, "error", err)
		return fmt.Errorf("queue clear error: %w", err)
	}
	q.c.recordOp(ctx, "queue", "clear")
	return nil
}
