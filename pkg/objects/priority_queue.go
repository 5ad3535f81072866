package objects

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PriorityQueue is an accessor for one remote priority queue of values of
// type T, backed by a sorted set keyed on a numeric priority. Members are
// unique: re-pushing an existing value overwrites its priority instead of
// duplicating it. Pops take the highest priority first; ties fall back to
// the store's ordering on the serialized value.
type PriorityQueue[T any] struct {
	key string
	c   *Client
}

// NewPriorityQueue returns an accessor for the named priority queue.
// Construction performs no I/O.
func NewPriorityQueue[T any](c *Client, name string) *PriorityQueue[T] {
	return &PriorityQueue[T]{key: c.key(name), c: c}
}

// Key returns the remote key this accessor addresses.
func (p *PriorityQueue[T]) Key() string {
	return p.key
}

// Push inserts value with the given priority, or resets the priority of an
// already-present value.
func (p *PriorityQueue[T]) Push(ctx context.Context, value T, priority float64) error {
	data, err := encode(p.c.codec, value)
	if err != nil {
		return err
	}
	if _, err := p.c.store.ZAdd(ctx, p.key, priority, data); err != nil {
		p.c.errorw("priority queue push error", "key", p.key, "error", err)
		return fmt.Errorf("priority queue push error: %w", err)
	}
	p.c.recordOp(ctx, "priority_queue", "push")
	p.c.debugw("priority queue item pushed", "key", p.key, "priority", priority)
	return nil
}

// Pop removes and returns the highest-priority item, waiting up to timeout
// for one to become available. A timeout of zero waits indefinitely. An
// elapsed timeout is an absent Value, not an error.
func (p *PriorityQueue[T]) Pop(ctx context.Context, timeout time.Duration) (Value[T], error) {
	start := time.Now()
	data, _, err := p.c.store.BZPopMax(ctx, p.key, timeout)
	p.c.recordWait(ctx, "priority_queue", time.Since(start))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			p.c.recordMiss(ctx, p.key)
			return None[T](), nil
		}
		p.c.errorw("priority queue pop error", "key", p.key, "error", err)
		return None[T](), fmt.Errorf("priority queue pop error: %w", err)
	}
	v, err := decode[T](p.c.codec, data)
	if err != nil {
		return None[T](), err
	}
	p.c.recordHit(ctx, p.key)
	return Some(v), nil
}

// PopReady removes and returns the highest-priority item without waiting.
// An empty queue is an absent Value.
func (p *PriorityQueue[T]) PopReady(ctx context.Context) (Value[T], error) {
	data, _, err := p.c.store.ZPopMax(ctx, p.key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			p.c.recordMiss(ctx, p.key)
			return None[T](), nil
		}
		p.c.errorw("priority queue pop error", "key", p.key, "error", err)
		return None[T](), fmt.Errorf("priority queue pop error: %w", err)
	}
	v, err := decode[T](p.c.codec, data)
	if err != nil {
		return None[T](), err
	}
	p.c.recordHit(ctx, p.key)
	return Some(v), nil
}

// Score returns the current priority of value, absent when value is not in
// the queue.
func (p *PriorityQueue[T]) Score(ctx context.Context, value T) (Value[float64], error) {
	data, err := encode(p.c.codec, value)
	if err != nil {
		return None[float64](), err
	}
	score, err := p.c.store.ZScore(ctx, p.key, data)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return None[float64](), nil
		}
		return None[float64](), fmt.Errorf("priority queue score error: %w", err)
	}
	return Some(score), nil
}

// Rank returns the zero-based distance of value from the front of the
// queue, counting from the highest priority down. Absent when value is not
// in the queue.
func (p *PriorityQueue[T]) Rank(ctx context.Context, value T) (Value[int64], error) {
	data, err := encode(p.c.codec, value)
	if err != nil {
		return None[int64](), err
	}
	rank, err := p.c.store.ZRevRank(ctx, p.key, data)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return None[int64](), nil
		}
		return None[int64](), fmt.Errorf("priority queue rank error: %w", err)
	}
	return Some(rank), nil
}

// Length returns the total number of entries across all priorities.
func (p *PriorityQueue[T]) Length(ctx context.Context) (int64, error) {
	n, err := p.c.store.ZCard(ctx, p.key)
	if err != nil {
		return 0, fmt.Errorf("priority queue length error: %w", err)
	}
	return n, nil
}

// Clear removes the entire queue.
func (p *PriorityQueue[T]) Clear(ctx context.Context) error {
	if _, err := p.c.store.Del(ctx, p.key); err != nil {
		p.c.errorw("priority queue clear error", "key", p.key, "error", err)
		return fmt.Errorf("priority queue clear error: %w", err)
	}
	p.c.recordOp(ctx, "priority_queue", "clear")
	return nil
}
