// Package viewcache keeps derived views (notes list, dashboard, per-note
// detail) consistent with the last known mutation without over-fetching.
// It is a bounded, in-memory, single-process cache; no distributed
// consistency is attempted.
package viewcache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/notevault/notevault-go/internal/domain"
	"github.com/notevault/notevault-go/internal/metrics"
)

// DefaultStaleAfter is the staleness window: past it a cached view is
// refetched on next read. Copied from the observed production default;
// tunable, not load-bearing.
const DefaultStaleAfter = 30 * time.Second

// DefaultRetries is the number of automatic refetch attempts after a failed
// fetch, before the error surfaces to the caller.
const DefaultRetries = 1

// State describes a view key for observability and tests.
type State string

const (
	StateFresh    State = "fresh"
	StateFetching State = "fetching"
	// StateInvalid covers never-fetched, expired, and explicitly
	// invalidated views alike: all of them force a refetch on next read.
	StateInvalid State = "invalid"
)

// Coordinator owns every CachedView. Payload storage and the staleness
// clock live in a go-cache instance; the coordinator layers fetch
// deduplication, retries, the invalidation table, and the per-key
// generation check on top.
type Coordinator struct {
	store   *gocache.Cache
	group   singleflight.Group
	retries int
	logger  *zap.Logger

	mu       sync.Mutex
	gens     map[domain.ViewKey]uint64
	inflight map[domain.ViewKey]int
}

// New creates a coordinator. staleAfter <= 0 and retries < 0 fall back to
// the defaults.
func New(staleAfter time.Duration, retries int, logger *zap.Logger) *Coordinator {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if retries < 0 {
		retries = DefaultRetries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:    gocache.New(staleAfter, 2*staleAfter),
		retries:  retries,
		logger:   logger,
		gens:     make(map[domain.ViewKey]uint64),
		inflight: make(map[domain.ViewKey]int),
	}
}

// Get returns the cached payload for key when it is still fresh; otherwise
// it fetches, caches, and returns. Concurrent callers for the same key
// share one in-flight fetch. A fetch that completes after the key was
// invalidated is handed to its callers but never cached.
func (c *Coordinator) Get(ctx context.Context, key domain.ViewKey, fetch func(context.Context) (any, error)) (any, error) {
	if v, ok := c.store.Get(string(key)); ok {
		metrics.ViewCacheTotal.WithLabelValues("hit").Inc()
		return v, nil
	}
	metrics.ViewCacheTotal.WithLabelValues("miss").Inc()

	v, err, shared := c.group.Do(string(key), func() (any, error) {
		gen := c.generation(key)
		c.markFetching(key, 1)
		defer c.markFetching(key, -1)

		v, err := c.fetchWithRetry(ctx, key, fetch)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		current := c.gens[key]
		c.mu.Unlock()
		if current != gen {
			// The view moved on while this fetch was in flight; a stale
			// payload must not overwrite current state.
			c.logger.Debug("discarding stale fetch result",
				zap.String("view", string(key)),
				zap.Uint64("fetched_gen", gen),
				zap.Uint64("current_gen", current))
			return v, nil
		}
		c.store.SetDefault(string(key), v)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		c.logger.Debug("deduplicated concurrent fetch", zap.String("view", string(key)))
	}
	return v, nil
}

// Mutate runs the write and, on success, marks every view in the
// mutation's effect set invalid. A failed write leaves cache state exactly
// as it was: nothing is ever marked fresh by a mutation.
func (c *Coordinator) Mutate(ctx context.Context, m domain.Mutation, write func(context.Context) error) error {
	if err := write(ctx); err != nil {
		return err
	}
	c.Invalidate(m.Invalidates...)
	return nil
}

// Invalidate drops the named views and bumps their generations so that
// in-flight fetches for them cannot repopulate the cache. The singleflight
// entry is forgotten as well: a Get arriving after the invalidation must
// start a fresh fetch, not join a flight that began before the mutation.
func (c *Coordinator) Invalidate(keys ...domain.ViewKey) {
	c.mu.Lock()
	for _, key := range keys {
		c.gens[key]++
	}
	c.mu.Unlock()
	for _, key := range keys {
		c.group.Forget(string(key))
		c.store.Delete(string(key))
		metrics.ViewInvalidationsTotal.WithLabelValues(string(key)).Inc()
	}
}

// State reports the key's current state. Anything not cached and not being
// fetched reads as invalid: the fail-safe direction is refetch, not
// staleness.
func (c *Coordinator) State(key domain.ViewKey) State {
	c.mu.Lock()
	fetching := c.inflight[key] > 0
	c.mu.Unlock()
	if fetching {
		return StateFetching
	}
	if _, ok := c.store.Get(string(key)); ok {
		return StateFresh
	}
	return StateInvalid
}

// Flush drops every cached view. Used on logout. Views with a fetch in
// flight are covered too: their generations move on and their flights are
// forgotten, so nothing started before the flush lands in the cache or is
// joined after it.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	for key := range c.inflight {
		if _, ok := c.gens[key]; !ok {
			c.gens[key] = 0
		}
	}
	keys := make([]domain.ViewKey, 0, len(c.gens))
	for key := range c.gens {
		c.gens[key]++
		keys = append(keys, key)
	}
	c.mu.Unlock()
	for _, key := range keys {
		c.group.Forget(string(key))
	}
	c.store.Flush()
}

func (c *Coordinator) fetchWithRetry(ctx context.Context, key domain.ViewKey, fetch func(context.Context) (any, error)) (any, error) {
	v, err := fetch(ctx)
	for attempt := 0; err != nil && attempt < c.retries; attempt++ {
		if ctx.Err() != nil {
			break
		}
		metrics.FetchRetriesTotal.Inc()
		c.logger.Debug("retrying view fetch",
			zap.String("view", string(key)), zap.Error(err))
		v, err = fetch(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch view %s: %w", key, err)
	}
	return v, nil
}

func (c *Coordinator) generation(key domain.ViewKey) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

func (c *Coordinator) markFetching(key domain.ViewKey, delta int) {
	c.mu.Lock()
	c.inflight[key] += delta
	if c.inflight[key] <= 0 {
		delete(c.inflight, key)
	}
	c.mu.Unlock()
}

// Getter is the read side of the coordinator, split out so that consumers
// can depend on a narrow contract.
type Getter interface {
	Get(ctx context.Context, key domain.ViewKey, fetch func(context.Context) (any, error)) (any, error)
}

// GetAs fetches through the coordinator and type-asserts the payload.
// Views are stored by the same call site that reads them, so a mismatch is
// a programming error and is reported as one.
func GetAs[T any](ctx context.Context, c Getter, key domain.ViewKey, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Get(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("view %s holds %T, want %T", key, v, zero)
	}
	return typed, nil
}
