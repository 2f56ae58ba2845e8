package controller

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/listing"
)

// State is the lifecycle of a list view.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// FetchFunc loads the full collection from the remote API.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// SelectFunc narrows and orders a snapshot for a query. It may return a
// usable result together with an error (unknown filter key).
type SelectFunc[T any] func(items []T, q domain.ListQuery) ([]T, error)

// View is what the rendering layer draws for one list.
type View[T any] struct {
	State       State            `json:"state"`
	Query       domain.ListQuery `json:"query"`
	Page        listing.Page[T]  `json:"page"`
	Error       string           `json:"error,omitempty"`
	FilterError string           `json:"filterError,omitempty"`
	LoadedAt    *time.Time       `json:"loadedAt,omitempty"`
}

// ListController holds the snapshot of one remote collection and derives
// the visible page from it. Query changes never hit the network.
type ListController[T any] struct {
	name   string
	fetch  FetchFunc[T]
	sel    SelectFunc[T]
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	snapshot []T
	query    domain.ListQuery
	err      error
	loadedAt time.Time
	// issued is the token of the most recent Load; older responses are dropped.
	issued uint64
}

func NewListController[T any](name string, fetch FetchFunc[T], sel SelectFunc[T], pageSize int, logger *zap.Logger) *ListController[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListController[T]{
		name:   name,
		fetch:  fetch,
		sel:    sel,
		logger: logger,
		state:  StateIdle,
		query:  domain.DefaultListQuery(pageSize),
	}
}

// Load fetches the collection and replaces the snapshot wholesale.
// On failure the previous snapshot is kept and the state becomes Error.
// A response that arrives after a newer Load was issued is discarded.
func (c *ListController[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	token := c.issued
	c.state = StateLoading
	c.mu.Unlock()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.issued {
		c.logger.Debug("discarding stale response",
			zap.String("list", c.name),
			zap.Uint64("token", token),
			zap.Uint64("latest", c.issued))
		return err
	}

	if err != nil {
		c.state = StateError
		c.err = err
		c.logger.Warn("failed to load list", zap.String("list", c.name), zap.Error(err))
		return err
	}

	if items == nil {
		items = []T{}
	}
	c.snapshot = items
	c.state = StateReady
	c.err = nil
	c.loadedAt = time.Now()
	return nil
}

// Patch rewrites the first snapshot item matching fn in place.
func (c *ListController[T]) Patch(match func(T) bool, update func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, item := range c.snapshot {
		if match(item) {
			next := make([]T, len(c.snapshot))
			copy(next, c.snapshot)
			next[i] = update(item)
			c.snapshot = next
			return true
		}
	}
	return false
}

// EnsureLoaded performs the initial load of an idle controller.
func (c *ListController[T]) EnsureLoaded(ctx context.Context) error {
	c.mu.Lock()
	idle := c.state == StateIdle
	c.mu.Unlock()
	if !idle {
		return nil
	}
	return c.Load(ctx)
}

func (c *ListController[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the last failed load, if the list is in Error.
func (c *ListController[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Snapshot returns a copy of the last successfully fetched collection.
func (c *ListController[T]) Snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.snapshot))
	copy(out, c.snapshot)
	return out
}

// Find returns the first snapshot item matching fn.
func (c *ListController[T]) Find(fn func(T) bool) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.snapshot {
		if fn(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *ListController[T]) Query() domain.ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Search sets the search term and returns to the first page.
func (c *ListController[T]) Search(term string) View[T] {
	return c.update(func(q *domain.ListQuery) {
		q.SearchTerm = term
		q.Page = 1
	})
}

// SetFilter sets the filter key and returns to the first page.
func (c *ListController[T]) SetFilter(key string) View[T] {
	return c.update(func(q *domain.ListQuery) {
		if key == "" {
			key = domain.FilterAll
		}
		q.FilterKey = key
		q.Page = 1
	})
}

func (c *ListController[T]) SetSort(key string) View[T] {
	return c.update(func(q *domain.ListQuery) {
		q.SortKey = key
	})
}

// SetPage moves to page n. Out-of-range pages render empty.
func (c *ListController[T]) SetPage(n int) View[T] {
	return c.update(func(q *domain.ListQuery) {
		q.Page = n
	})
}

// SetPageSize changes the page size and returns to the first page.
func (c *ListController[T]) SetPageSize(n int) View[T] {
	return c.update(func(q *domain.ListQuery) {
		q.PageSize = n
		q.Page = 1
	})
}

// Apply replaces the whole query at once.
func (c *ListController[T]) Apply(q domain.ListQuery) View[T] {
	return c.update(func(cur *domain.ListQuery) {
		if q.FilterKey == "" {
			q.FilterKey = domain.FilterAll
		}
		*cur = q
	})
}

func (c *ListController[T]) update(fn func(q *domain.ListQuery)) View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.query)
	return c.viewLocked()
}

// View recomputes the visible page from the held snapshot.
func (c *ListController[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *ListController[T]) viewLocked() View[T] {
	v := View[T]{State: c.state, Query: c.query}

	selected, err := c.sel(c.snapshot, c.query)
	if err != nil {
		v.FilterError = err.Error()
	}
	v.Page = listing.Paginate(selected, c.query.Page, c.query.PageSize)

	if c.err != nil {
		v.Error = c.err.Error()
	}
	if !c.loadedAt.IsZero() {
		t := c.loadedAt
		v.LoadedAt = &t
	}
	return v
}
