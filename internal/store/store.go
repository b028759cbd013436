// Package store persists transactions and budgets as whole collections over
// an injected Backend.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/tally/internal/log"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

type options struct {
	now    func() time.Time
	newID  func() string
	logger *log.Logger
}

// Option configures a store.
type Option func(*options)

// WithClock sets the source of CreatedAt/UpdatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator sets the function that assigns record ids.
func WithIDGenerator(newID func() string) Option {
	return func(o *options) { o.newID = newID }
}

// WithLogger sets the logger used to report storage failures.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// stamp returns the current time in UTC with no monotonic reading, so a
// record compares equal to itself after a round trip through the backend.
func (o options) stamp() time.Time {
	return o.now().UTC()
}

// touch returns an UpdatedAt that is strictly after prev even when the clock
// has not advanced.
func (o options) touch(prev time.Time) time.Time {
	ts := o.stamp()
	if !ts.After(prev) {
		ts = prev.Add(time.Nanosecond)
	}
	return ts
}

// collection is a mutex-guarded, whole-collection read-modify-write cycle
// over one backend key.
type collection[T any] struct {
	mu      sync.Mutex
	backend Backend
	key     string
	encode  func([]T) ([]byte, error)
	decode  func([]byte) ([]T, error)
	logger  *log.Logger
}

// load reads and decodes the collection. Callers hold mu.
func (c *collection[T]) load() ([]T, error) {
	data, err := c.backend.Read(c.key)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.key, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	items, err := c.decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.key, err)
	}
	return items, nil
}

// save encodes and writes the collection. Callers hold mu.
func (c *collection[T]) save(items []T) error {
	data, err := c.encode(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.key, err)
	}
	if err := c.backend.Write(c.key, data); err != nil {
		c.logger.Error("write failed", "key", c.key, "error", err)
		return fmt.Errorf("writing %s: %w", c.key, err)
	}
	c.logger.Debug("collection written", "key", c.key, "records", len(items))
	return nil
}

// Load returns the collection or the read/decode error.
func (c *collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// All returns the collection, or an empty one if it cannot be read.
func (c *collection[T]) All() []T {
	items, err := c.Load()
	if err != nil {
		c.logger.Error("read failed, treating collection as empty", "key", c.key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// mutate runs fn over the loaded collection and persists the result when fn
// reports a change. A collection that cannot be read is never overwritten.
func (c *collection[T]) mutate(fn func([]T) ([]T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		c.logger.Error("read failed, refusing to overwrite", "key", c.key, "error", err)
		return err
	}
	next, changed, err := fn(items)
	if err != nil || !changed {
		return err
	}
	return c.save(next)
}

// ReplaceAll overwrites the collection with items.
func (c *collection[T]) ReplaceAll(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return c.save(items)
}

// Clear removes the persisted collection.
func (c *collection[T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.backend.Remove(c.key); err != nil {
		c.logger.Error("clear failed", "key", c.key, "error", err)
		return fmt.Errorf("clearing %s: %w", c.key, err)
	}
	return nil
}
