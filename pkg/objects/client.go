package objects

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Client binds a Store to named structure accessors. It is a factory:
// constructing an accessor performs no I/O, and two accessors built with the
// same name and store address the same remote state.
type Client struct {
	store     Store
	codec     Codec
	namespace string
	logger    *zap.SugaredLogger
	metrics   *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger attaches a logger. Operations log at debug, failures at error.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics attaches operation metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithNamespace prefixes every structure key with ns, so independent
// applications can share one database without key collisions.
func WithNamespace(ns string) Option {
	return func(c *Client) { c.namespace = ns }
}

// WithCodec replaces the default JSON codec.
func WithCodec(codec Codec) Option {
	return func(c *Client) { c.codec = codec }
}

// NewClient creates a client over the given store.
func NewClient(store Store, opts ...Option) *Client {
	c := &Client{
		store: store,
		codec: JSONCodec{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hash returns an accessor for the named hash holding dynamically typed
// values. Use NewHash for a statically typed accessor.
func (c *Client) Hash(name string) *Hash[any] {
	return NewHash[any](c, name)
}

// Queue returns an accessor for the named FIFO queue holding dynamically
// typed values. Use NewQueue for a statically typed accessor.
func (c *Client) Queue(name string) *Queue[any] {
	return NewQueue[any](c, name)
}

// PriorityQueue returns an accessor for the named priority queue holding
// dynamically typed values. Use NewPriorityQueue for a statically typed
// accessor.
func (c *Client) PriorityQueue(name string) *PriorityQueue[any] {
	return NewPriorityQueue[any](c, name)
}

// Ping checks that the underlying store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

// Close closes the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// Store exposes the underlying store for operations the accessors do not
// cover.
func (c *Client) Store() Store {
	return c.store
}

func (c *Client) key(name string) string {
	if c.namespace == "" {
		return name
	}
	return c.namespace + ":" + name
}

func (c *Client) debugw(msg string, keysAndValues ...any) {
	if c.logger != nil {
		c.logger.Debugw(msg, keysAndValues...)
	}
}

func (c *Client) errorw(msg string, keysAndValues ...any) {
	if c.logger != nil {
		c.logger.Errorw(msg, keysAndValues...)
	}
}

func (c *Client) recordOp(ctx context.Context, structure, op string) {
	if c.metrics != nil {
		c.metrics.RecordOp(ctx, structure, op)
	}
}

func (c *Client) recordHit(ctx context.Context, key string) {
	if c.metrics != nil {
		c.metrics.RecordHit(ctx, key)
	}
}

func (c *Client) recordMiss(ctx context.Context, key string) {
	if c.metrics != nil {
		c.metrics.RecordMiss(ctx, key)
	}
}

func (c *Client) recordWait(ctx context.Context, structure string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordWait(ctx, structure, d)
	}
}
