// Package resource holds the dashboard's cached copy of each backend
// collection. One store per resource is shared by every handler; the backend
// stays authoritative and the cache is refreshed on demand or on schedule.
package resource

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// Keyed is implemented by every cached entity.
type Keyed interface {
	Key() string
}

// State is a snapshot of a store.
type State[T any] struct {
	Loading bool
	Err     string
	Data    []T
	// Loaded is set after the first successful fetch.
	Loaded bool
}

// Callbacks are invoked once the call resolves. Either may be nil.
type Callbacks[T any] struct {
	OnSuccess func(T)
	OnError   func(msg string)
}

func (cb Callbacks[T]) success(v T) {
	if cb.OnSuccess != nil {
		cb.OnSuccess(v)
	}
}

func (cb Callbacks[T]) failure(msg string) {
	if cb.OnError != nil {
		cb.OnError(msg)
	}
}

// Store tracks loading, error and data for one collection. Overlapping calls
// are not serialised: whichever resolves last wins.
type Store[T Keyed] struct {
	name     string
	fallback string
	mu       sync.RWMutex
	state    State[T]
	group    singleflight.Group
}

func newStore[T Keyed](name, fallback string) *Store[T] {
	return &Store[T]{name: name, fallback: fallback}
}

// State returns a copy of the store's current state.
func (s *Store[T]) State() State[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := s.state
	st.Data = slices.Clone(s.state.Data)
	return st
}

func (s *Store[T]) Items() []T {
	return s.State().Data
}

// Find returns the cached item with the given key.
func (s *Store[T]) Find(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.state.Data {
		if item.Key() == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// ResetState clears the error and loading flags, keeping data.
func (s *Store[T]) ResetState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Err = ""
	s.state.Loading = false
}

// Invalidate drops the cache so the next EnsureLoaded refetches.
func (s *Store[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loaded = false
}

func (s *Store[T]) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Loading = true
	s.state.Err = ""
}

func (s *Store[T]) fail(ctx context.Context, action string, err error) string {
	msg := errorMessage(err, s.fallback)
	s.mu.Lock()
	s.state.Loading = false
	s.state.Err = msg
	s.mu.Unlock()

	log.Ctx(ctx).Warn().Err(err).Str("resource", s.name).Str("action", action).Msg("Resource call failed")
	return msg
}

// refetch replaces the cache with fetch's result. Concurrent callers share a
// single in-flight request.
func (s *Store[T]) refetch(ctx context.Context, fetch func(context.Context) ([]T, error), cb Callbacks[[]T]) ([]T, bool) {
	s.begin()
	v, err, _ := s.group.Do("list", func() (any, error) {
		items, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.state.Loading = false
		s.state.Data = items
		s.state.Loaded = true
		s.mu.Unlock()
		return items, nil
	})
	if err != nil {
		cb.failure(s.fail(ctx, "refetch", err))
		return nil, false
	}
	s.mu.Lock()
	s.state.Loading = false
	s.mu.Unlock()

	items := slices.Clone(v.([]T))
	cb.success(items)
	return items, true
}

// ensureLoaded fetches only when nothing has been loaded yet.
func (s *Store[T]) ensureLoaded(ctx context.Context, fetch func(context.Context) ([]T, error)) bool {
	s.mu.RLock()
	loaded := s.state.Loaded
	s.mu.RUnlock()
	if loaded {
		return true
	}
	_, ok := s.refetch(ctx, fetch, Callbacks[[]T]{})
	return ok
}

// create appends the created item to the cache.
func (s *Store[T]) create(ctx context.Context, fn func(context.Context) (T, error), cb Callbacks[T]) (T, bool) {
	s.begin()
	item, err := fn(ctx)
	if err != nil {
		cb.failure(s.fail(ctx, "create", err))
		var zero T
		return zero, false
	}
	s.mu.Lock()
	s.state.Loading = false
	s.state.Data = append(s.state.Data, item)
	s.mu.Unlock()

	cb.success(item)
	return item, true
}

// update replaces the cached item with the same key, appending it when absent.
func (s *Store[T]) update(ctx context.Context, fn func(context.Context) (T, error), cb Callbacks[T]) (T, bool) {
	s.begin()
	item, err := fn(ctx)
	if err != nil {
		cb.failure(s.fail(ctx, "update", err))
		var zero T
		return zero, false
	}
	s.mu.Lock()
	s.state.Loading = false
	s.state.Data = replaceOrAppend(s.state.Data, item)
	s.mu.Unlock()

	cb.success(item)
	return item, true
}

// remove drops the cached item with key once fn succeeds.
func (s *Store[T]) remove(ctx context.Context, key string, fn func(context.Context) error, cb Callbacks[string]) bool {
	s.begin()
	if err := fn(ctx); err != nil {
		cb.failure(s.fail(ctx, "delete", err))
		return false
	}
	s.mu.Lock()
	s.state.Loading = false
	s.state.Data = slices.DeleteFunc(s.state.Data, func(item T) bool { return item.Key() == key })
	s.mu.Unlock()

	cb.success(key)
	return true
}

func replaceOrAppend[T Keyed](items []T, item T) []T {
	for i, existing := range items {
		if existing.Key() == item.Key() {
			out := slices.Clone(items)
			out[i] = item
			return out
		}
	}
	return append(items, item)
}

func errorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
