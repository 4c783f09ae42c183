// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache is a fixed-size least-recently-used cache keyed by string.

Entries can expire a fixed time after they were stored ([WithTTL]). Caches of
[]byte or string values can keep them zstd-compressed ([WithCompression]),
which suits the mostly repetitive JSON the dictionary API returns.

A Cache is safe for concurrent use.
*/
package lrucache

import (
	"container/list"
	"errors"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

type settings struct {
	ttl      time.Duration
	compress bool
	now      func() time.Time
}

// Option configures New.
type Option func(*settings)

// WithTTL expires entries ttl after they were last stored. Zero or less
// keeps them until evicted.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) { s.ttl = ttl }
}

// WithCompression stores []byte and string values as zstd frames whenever the
// frame is smaller. Other value types are unaffected.
func WithCompression() Option {
	return func(s *settings) { s.compress = true }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// Cache holds at most a fixed number of values of type V.
type Cache[V any] struct {
	mu    sync.Mutex
	limit int
	cfg   settings

	// recency has the most recently used entry at the front
	recency *list.List
	index   map[string]*list.Element

	enc *zstd.Encoder
	dec *zstd.Decoder
}

type entry[V any] struct {
	key   string
	value V

	// packed replaces value when it was compressed
	packed []byte

	// deadline is zero without a TTL
	deadline time.Time
}

// New returns an empty cache for size entries.
func New[V any](size int, opts ...Option) (*Cache[V], error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache[V]{
		limit:   size,
		cfg:     settings{now: time.Now},
		recency: list.New(),
		index:   make(map[string]*list.Element, size),
	}

	for _, opt := range opts {
		opt(&c.cfg)
	}

	if c.cfg.compress {
		var err error

		// EncodeAll and DecodeAll need no stream
		if c.enc, err = zstd.NewWriter(nil); err != nil {
			return nil, err
		}

		if c.dec, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0)); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Add stores value under key as the most recent entry and restarts its TTL.
// It reports whether another entry was evicted to make room.
func (c *Cache[V]) Add(key string, value V) bool {
	e := c.pack(key, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfg.ttl > 0 {
		e.deadline = c.cfg.now().Add(c.cfg.ttl)
	}

	if el, ok := c.index[key]; ok {
		el.Value = e
		c.recency.MoveToFront(el)

		return false
	}

	c.index[key] = c.recency.PushFront(e)

	if c.recency.Len() <= c.limit {
		return false
	}

	c.drop(c.recency.Back())

	return true
}

// Get returns the live value for key and marks it most recently used.
// An expired entry is dropped and reported missing.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.find(key, true)
}

// Peek is Get without the recency update.
func (c *Cache[V]) Peek(key string) (V, bool) {
	return c.find(key, false)
}

func (c *Cache[V]) find(key string, touch bool) (V, bool) {
	var zero V

	c.mu.Lock()

	el, ok := c.index[key]
	if !ok {
		c.mu.Unlock()

		return zero, false
	}

	e := el.Value.(*entry[V])
	if c.expired(e) {
		c.drop(el)
		c.mu.Unlock()

		return zero, false
	}

	if touch {
		c.recency.MoveToFront(el)
	}

	c.mu.Unlock()

	// entries are replaced, never mutated, so e is safe to read unlocked
	return c.unpack(e)
}

// Remove deletes key and reports whether it was present.
func (c *Cache[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}

	return ok
}

// Keys lists the live keys from least to most recently used.
func (c *Cache[V]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.index))

	for el := c.recency.Back(); el != nil; el = el.Prev() {
		if e := el.Value.(*entry[V]); !c.expired(e) {
			keys = append(keys, e.key)
		}
	}

	return keys
}

// Len counts stored entries. Expired entries count until they are touched.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.index)
}

// Purge empties the cache.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.recency.Init()
	clear(c.index)
}

func (c *Cache[V]) expired(e *entry[V]) bool {
	return !e.deadline.IsZero() && !c.cfg.now().Before(e.deadline)
}

// drop must be called with mu held.
func (c *Cache[V]) drop(el *list.Element) {
	c.recency.Remove(el)
	delete(c.index, el.Value.(*entry[V]).key)
}
