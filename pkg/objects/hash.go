package objects

import (
	"context"
	"errors"
	"fmt"
)

// Hash is an accessor for one remote hash mapping field names to values of
// type T. It holds no local state: every method is a remote call.
type Hash[T any] struct {
	key string
	c   *Client
}

// NewHash returns an accessor for the named hash. Construction performs no
// I/O; the remote key materializes on the first write.
func NewHash[T any](c *Client, name string) *Hash[T] {
	return &Hash[T]{key: c.key(name), c: c}
}

// Key returns the remote key this accessor addresses.
func (h *Hash[T]) Key() string {
	return h.key
}

// Set writes value to field unconditionally. It returns true when the field
// did not exist before, false when an existing field was overwritten.
func (h *Hash[T]) Set(ctx context.Context, field string, value T) (bool, error) {
	data, err := encode(h.c.codec, value)
	if err != nil {
		return false, err
	}
	created, err := h.c.store.HSet(ctx, h.key, field, data)
	if err != nil {
		h.c.errorw("hash set error", "key", h.key, "field", field, "error", err)
		return false, fmt.Errorf("hash set error: %w", err)
	}
	h.c.recordOp(ctx, "hash", "set")
	h.c.debugw("hash field set", "key", h.key, "field", field, "created", created)
	return created, nil
}

// Add writes value to field only if the field is absent. It returns true
// when the write happened, false when an existing field was left untouched.
func (h *Hash[T]) Add(ctx context.Context, field string, value T) (bool, error) {
	data, err := encode(h.c.codec, value)
	if err != nil {
		return false, err
	}
	added, err := h.c.store.HSetNX(ctx, h.key, field, data)
	if err != nil {
		h.c.errorw("hash add error", "key", h.key, "field", field, "error", err)
		return false, fmt.Errorf("hash add error: %w", err)
	}
	h.c.recordOp(ctx, "hash", "add")
	return added, nil
}

// Get reads one field. A missing field, or a field whose stored raw value is
// empty, is an absent Value, not an error.
func (h *Hash[T]) Get(ctx context.Context, field string) (Value[T], error) {
	data, err := h.c.store.HGet(ctx, h.key, field)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			h.c.recordMiss(ctx, h.key)
			return None[T](), nil
		}
		h.c.errorw("hash get error", "key", h.key, "field", field, "error", err)
		return None[T](), fmt.Errorf("hash get error: %w", err)
	}
	if len(data) == 0 {
		h.c.recordMiss(ctx, h.key)
		return None[T](), nil
	}
	v, err := decode[T](h.c.codec, data)
	if err != nil {
		return None[T](), err
	}
	h.c.recordHit(ctx, h.key)
	return Some(v), nil
}

// MultiGet reads several fields in one round trip. The result holds an entry
// for every requested field that exists; missing fields are simply omitted,
// never decoded.
func (h *Hash[T]) MultiGet(ctx context.Context, fields ...string) (map[string]T, error) {
	result := make(map[string]T, len(fields))
	if len(fields) == 0 {
		return result, nil
	}
	values, err := h.c.store.HMGet(ctx, h.key, fields...)
	if err != nil {
		h.c.errorw("hash multi get error", "key", h.key, "error", err)
		return nil, fmt.Errorf("hash multi get error: %w", err)
	}
	for i, field := range fields {
		if values[i] == nil {
			continue
		}
		v, err := decode[T](h.c.codec, values[i])
		if err != nil {
			return nil, err
		}
		result[field] = v
	}
	h.c.recordOp(ctx, "hash", "mget")
	return result, nil
}

// GetAll loads every field of the hash. An absent key yields an empty map.
func (h *Hash[T]) GetAll(ctx context.Context) (map[string]T, error) {
	values, err := h.c.store.HGetAll(ctx, h.key)
	if err != nil {
		h.c.errorw("hash get all error", "key", h.key, "error", err)
		return nil, fmt.Errorf("hash get all error: %w", err)
	}
	result := make(map[string]T, len(values))
	for field, data := range values {
		v, err := decode[T](h.c.codec, data)
		if err != nil {
			return nil, err
		}
		result[field] = v
	}
	h.c.recordOp(ctx, "hash", "getall")
	return result, nil
}

// Keys returns every defined field name.
func (h *Hash[T]) Keys(ctx context.Context) ([]string, error) {
	fields, err := h.c.store.HKeys(ctx, h.key)
	if err != nil {
		return nil, fmt.Errorf("hash keys error: %w", err)
	}
	return fields, nil
}

// Size returns the number of defined fields.
func (h *Hash[T]) Size(ctx context.Context) (int64, error) {
	n, err := h.c.store.HLen(ctx, h.key)
	if err != nil {
		return 0, fmt.Errorf("hash size error: %w", err)
	}
	return n, nil
}

// Delete removes one field. It returns true when the field existed.
func (h *Hash[T]) Delete(ctx context.Context, field string) (bool, error) {
	n, err := h.c.store.HDel(ctx, h.key, field)
	if err != nil {
		h.c.errorw("hash delete error", "key", h.key, "field", field, "error", err)
		return false, fmt.Errorf("hash delete error: %w", err)
	}
	h.c.recordOp(ctx, "hash", "delete")
	return n == 1, nil
}

// Clear removes the entire hash, top-level key included.
func (h *Hash[T]) Clear(ctx context.Context) error {
	if _, err := h.c.store.Del(ctx, h.key); err != nil {
		h.c.errorw("hash clear error", "key", h.key, "error", err)
		return fmt.Errorf("hash clear error: %w", err)
	}
	h.c.recordOp(ctx, "hash", "clear")
	return nil
}
