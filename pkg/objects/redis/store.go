package redis

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/namihq/redisobj-go/pkg/objects"
)

// Store is a Redis-backed implementation of the objects.Store interface
type Store struct {
	client *redis.Client
}

// New creates a new Redis-backed store
func New(redisURL string) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// Fallback for simple address format
		u, parseErr := url.Parse("redis://" + redisURL)
		if parseErr != nil {
			return nil, err // Return original error
		}

		db := 0
		if u.Path != "" && u.Path != "/" {
			if dbNum, dbErr := strconv.Atoi(u.Path[1:]); dbErr == nil {
				db = dbNum
			}
		}

		opt = &redis.Options{
			Addr: u.Host,
			DB:   db,
		}

		if u.User != nil {
			if password, hasPassword := u.User.Password(); hasPassword {
				opt.Password = password
			}
		}
	}

	// Blocking pops must honor caller deadlines, not just the command timeout
	opt.ContextTimeoutEnabled = true

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Store{client: client}, nil
}

// NewFromClient wraps an existing go-redis client. The client stays owned
// by the caller; Close closes it.
func NewFromClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// IsConnectionError checks if an error is a connection-level failure rather
// than a normal command outcome
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	// redis.Nil means "nothing there", not a broken connection
	if errors.Is(err, redis.Nil) {
		return false
	}

	// Context cancellation by the caller is not a backend failure
	if errors.Is(err, context.Canceled) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		switch sysErr {
		case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ECONNABORTED, syscall.ETIMEDOUT:
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	connectionErrors := []string{
		"connection refused",
		"connection reset",
		"broken pipe",
		"no such host",
		"network is unreachable",
		"timeout",
		"connection closed",
		"eof",
	}
	for _, connErr := range connectionErrors {
		if strings.Contains(errStr, connErr) {
			return true
		}
	}

	return false
}

// wrapErr maps redis.Nil to ErrNotFound and connection failures to
// ErrBackendUnavailable
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.Nil) {
		return objects.ErrNotFound
	}
	if IsConnectionError(err) {
		return fmt.Errorf("%w: %v", objects.ErrBackendUnavailable, err)
	}
	return err
}

// Hash operations

func (s *Store) HSet(ctx context.Context, key, field string, value []byte) (bool, error) {
	created, err := s.client.HSet(ctx, key, field, value).Result()
	if err != nil {
		return false, wrapErr(err)
	}
	return created == 1, nil
}

func (s *Store) HSetNX(ctx context.Context, key, field string, value []byte) (bool, error) {
	added, err := s.client.HSetNX(ctx, key, field, value).Result()
	if err != nil {
		return false, wrapErr(err)
	}
	return added, nil
}

func (s *Store) HGet(ctx context.Context, key, field string) ([]byte, error) {
	result, err := s.client.HGet(ctx, key, field).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return []byte(result), nil
}

func (s *Store) HMGet(ctx context.Context, key string, fields ...string) ([][]byte, error) {
	result, err := s.client.HMGet(ctx, key, fields...).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	values := make([][]byte, len(result))
	for i, value := range result {
		if value == nil {
			continue // missing fields stay nil
		}
		if str, ok := value.(string); ok {
			values[i] = []byte(str)
		}
	}
	return values, nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, wrapErr(err)
	}

	// An absent key and an empty hash are indistinguishable in Redis; both
	// come back as an empty map.
	byteMap := make(map[string][]byte, len(result))
	for field, value := range result {
		byteMap[field] = []byte(value)
	}
	return byteMap, nil
}

func (s *Store) HKeys(ctx context.Context, key string) ([]string, error) {
	fields, err := s.client.HKeys(ctx, key).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return fields, nil
}

func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.HLen(ctx, key).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

func (s *Store) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	n, err := s.client.HDel(ctx, key, fields...).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

// List operations

func (s *Store) LPush(ctx context.Context, key string, values ...[]byte) (int64, error) {
	args := make([]interface{}, len(values))
	for i, value := range values {
		args[i] = value
	}
	n, err := s.client.LPush(ctx, key, args...).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

func (s *Store) RPop(ctx context.Context, key string) ([]byte, error) {
	result, err := s.client.RPop(ctx, key).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	return []byte(result), nil
}

func (s *Store) BRPop(ctx context.Context, key string, timeout time.Duration) ([]byte, error) {
	// BRPOP returns [key, value]; redis.Nil on timeout
	result, err := s.client.BRPop(ctx, timeout, key).Result()
	if err != nil {
		return nil, wrapErr(err)
	}
	if len(result) != 2 {
		return nil, objects.ErrNotFound
	}
	return []byte(result[1]), nil
}

func (s *Store) LLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

// Sorted set operations

func (s *Store) ZAdd(ctx context.Context, key string, score float64, member []byte) (int64, error) {
	added, err := s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return added, nil
}

func (s *Store) ZPopMax(ctx context.Context, key string) ([]byte, float64, error) {
	// ZPOPMAX on a missing key is an empty reply, not redis.Nil
	result, err := s.client.ZPopMax(ctx, key).Result()
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	if len(result) == 0 {
		return nil, 0, objects.ErrNotFound
	}
	member, ok := result[0].Member.(string)
	if !ok {
		return nil, 0, fmt.Errorf("unexpected member type %T", result[0].Member)
	}
	return []byte(member), result[0].Score, nil
}

func (s *Store) BZPopMax(ctx context.Context, key string, timeout time.Duration) ([]byte, float64, error) {
	result, err := s.client.BZPopMax(ctx, timeout, key).Result()
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	member, ok := result.Member.(string)
	if !ok {
		return nil, 0, fmt.Errorf("unexpected member type %T", result.Member)
	}
	return []byte(member), result.Score, nil
}

func (s *Store) ZScore(ctx context.Context, key string, member []byte) (float64, error) {
	score, err := s.client.ZScore(ctx, key, string(member)).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return score, nil
}

func (s *Store) ZRevRank(ctx context.Context, key string, member []byte) (int64, error) {
	rank, err := s.client.ZRevRank(ctx, key, string(member)).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return rank, nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	n, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

// Key operations

func (s *Store) Del(ctx context.Context, keys ...string) (int64, error) {
	n, err := s.client.Del(ctx, keys...).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

func (s *Store) Exists(ctx context.Context, keys ...string) (int64, error) {
	n, err := s.client.Exists(ctx, keys...).Result()
	if err != nil {
		return 0, wrapErr(err)
	}
	return n, nil
}

// Ping checks if Redis is reachable
func (s *Store) Ping(ctx context.Context) error {
	return wrapErr(s.client.Ping(ctx).Err())
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}
