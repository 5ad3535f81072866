package memory

import (
	"context"
	"sync"
	"time"

	"github.com/namihq/redisobj-go/pkg/objects"
)

// Store is an in-memory implementation of the objects.Store interface. It
// reproduces the Redis semantics the accessors rely on, including blocking
// pops and sorted-set ordering, so it can stand in for Redis in development
// and tests.
type Store struct {
	mu     sync.Mutex
	hashes map[string]map[string][]byte
	lists  map[string][][]byte
	zsets  map[string]map[string]float64

	// wake is closed and replaced on every push so blocked poppers can
	// re-check their key.
	wake   chan struct{}
	closed bool
}

// New creates a new in-memory store
func New() *Store {
	return &Store{
		hashes: make(map[string]map[string][]byte),
		lists:  make(map[string][][]byte),
		zsets:  make(map[string]map[string]float64),
		wake:   make(chan struct{}),
	}
}

// broadcast wakes every blocked popper (must hold lock)
func (s *Store) broadcast() {
	close(s.wake)
	s.wake = make(chan struct{})
}

// Hash operations

func (s *Store) HSet(ctx context.Context, key, field string, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, exists := s.hashes[key]
	if !exists {
		h = make(map[string][]byte)
		s.hashes[key] = h
	}
	_, existed := h[field]
	h[field] = value
	return !existed, nil
}

func (s *Store) HSetNX(ctx context.Context, key, field string, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, exists := s.hashes[key]
	if !exists {
		h = make(map[string][]byte)
		s.hashes[key] = h
	}
	if _, existed := h[field]; existed {
		return false, nil
	}
	h[field] = value
	return true, nil
}

func (s *Store) HGet(ctx context.Context, key, field string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, exists := s.hashes[key][field]
	if !exists {
		return nil, objects.ErrNotFound
	}
	return value, nil
}

func (s *Store) HMGet(ctx context.Context, key string, fields ...string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := make([][]byte, len(fields))
	for i, field := range fields {
		if value, exists := s.hashes[key][field]; exists {
			values[i] = value
		}
	}
	return values, nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string][]byte, len(s.hashes[key]))
	for field, value := range s.hashes[key] {
		result[field] = value
	}
	return result, nil
}

func (s *Store) HKeys(ctx context.Context, key string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields := make([]string, 0, len(s.hashes[key]))
	for field := range s.hashes[key] {
		fields = append(fields, field)
	}
	return fields, nil
}

func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.hashes[key])), nil
}

func (s *Store) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := s.hashes[key]
	var deleted int64
	for _, field := range fields {
		if _, exists := h[field]; exists {
			delete(h, field)
			deleted++
		}
	}
	if len(h) == 0 {
		delete(s.hashes, key)
	}
	return deleted, nil
}

// List operations

func (s *Store) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest items sit at the head, as with Redis LPUSH
	list := s.lists[key]
	for _, value := range values {
		list = append([][]byte{value}, list...)
	}
	s.lists[key] = list
	s.broadcast()
	return int64(len(list)), nil
}

// rpopLocked removes the tail (oldest) item (must hold lock)
func (s *Store) rpopLocked(key string) ([]byte, bool) {
	list := s.lists[key]
	if len(list) == 0 {
		return nil, false
	}
	value := list[len(list)-1]
	if len(list) == 1 {
		// Emptied list keys disappear, matching Redis
		delete(s.lists, key)
	} else {
		s.lists[key] = list[:len(list)-1]
	}
	return value, true
}

func (s *Store) RPop(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.rpopLocked(key)
	if !ok {
		return nil, objects.ErrNotFound
	}
	return value, nil
}

func (s *Store) BRPop(ctx context.Context, key string, timeout time.Duration) ([]byte, error) {
	return blockingPop(ctx, s, timeout, func() ([]byte, bool) {
		value, ok := s.rpopLocked(key)
		return value, ok
	})
}

func (s *Store) LLen(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.lists[key])), nil
}

// Sorted set operations

func (s *Store) ZAdd(ctx context.Context, key string, score float64, member []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z, exists := s.zsets[key]
	if !exists {
		z = make(map[string]float64)
		s.zsets[key] = z
	}
	_, existed := z[string(member)]
	z[string(member)] = score
	s.broadcast()
	if existed {
		return 0, nil
	}
	return 1, nil
}

// zpopmaxLocked removes the entry with the greatest (score, member) pair
// (must hold lock). Ties on score break toward the lexicographically
// greater member, as in Redis.
func (s *Store) zpopmaxLocked(key string) (string, float64, bool) {
	z := s.zsets[key]
	if len(z) == 0 {
		return "", 0, false
	}
	var best string
	var bestScore float64
	first := true
	for member, score := range z {
		if first || score > bestScore || (score == bestScore && member > best) {
			best, bestScore = member, score
			first = false
		}
	}
	delete(z, best)
	if len(z) == 0 {
		delete(s.zsets, key)
	}
	return best, bestScore, true
}

func (s *Store) ZPopMax(ctx context.Context, key string) ([]byte, float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	member, score, ok := s.zpopmaxLocked(key)
	if !ok {
		return nil, 0, objects.ErrNotFound
	}
	return []byte(member), score, nil
}

func (s *Store) BZPopMax(ctx context.Context, key string, timeout time.Duration) ([]byte, float64, error) {
	var poppedScore float64
	member, err := blockingPop(ctx, s, timeout, func() ([]byte, bool) {
		member, score, ok := s.zpopmaxLocked(key)
		if !ok {
			return nil, false
		}
		poppedScore = score
		return []byte(member), true
	})
	if err != nil {
		return nil, 0, err
	}
	return member, poppedScore, nil
}

func (s *Store) ZScore(ctx context.Context, key string, member []byte) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	score, exists := s.zsets[key][string(member)]
	if !exists {
		return 0, objects.ErrNotFound
	}
	return score, nil
}

func (s *Store) ZRevRank(ctx context.Context, key string, member []byte) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	z := s.zsets[key]
	target := string(member)
	targetScore, exists := z[target]
	if !exists {
		return 0, objects.ErrNotFound
	}

	// Rank is the number of entries ordered ahead of member, counting from
	// the highest (score, member) pair down
	var rank int64
	for m, score := range z {
		if score > targetScore || (score == targetScore && m > target) {
			rank++
		}
	}
	return rank, nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.zsets[key])), nil
}

// Key operations

func (s *Store) Del(ctx context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for _, key := range keys {
		if s.existsLocked(key) {
			deleted++
		}
		delete(s.hashes, key)
		delete(s.lists, key)
		delete(s.zsets, key)
	}
	return deleted, nil
}

func (s *Store) existsLocked(key string) bool {
	if _, ok := s.hashes[key]; ok {
		return true
	}
	if _, ok := s.lists[key]; ok {
		return true
	}
	_, ok := s.zsets[key]
	return ok
}

func (s *Store) Exists(ctx context.Context, keys ...string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, key := range keys {
		if s.existsLocked(key) {
			count++
		}
	}
	return count, nil
}

// Ping reports whether the store is still open
func (s *Store) Ping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return objects.ErrBackendUnavailable
	}
	return nil
}

// Close marks the store closed and releases any blocked poppers
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		s.broadcast()
	}
	return nil
}

// blockingPop retries tryPop until it yields an item, the timeout elapses,
// or the context is cancelled. A timeout of zero waits indefinitely. Only
// the calling goroutine waits; pushes from other goroutines land between
// retries and wake it through the broadcast channel.
func blockingPop(ctx context.Context, s *Store, timeout time.Duration, tryPop func() ([]byte, bool)) ([]byte, error) {
	var deadline <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return nil, objects.ErrBackendUnavailable
		}
		if value, ok := tryPop(); ok {
			s.mu.Unlock()
			return value, nil
		}
		wake := s.wake
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-deadline:
			return nil, objects.ErrNotFound
		case <-wake:
		}
	}
}
