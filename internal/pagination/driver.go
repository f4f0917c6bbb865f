// Package pagination drives page loads for the active query: a search resets
// the cursor, a scroll-near-end signal loads the next page, and at most one
// page load runs at a time.
package pagination

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gauthierbraillon/mediamix/internal/aggregator"
)

// ErrEmptyQuery is returned when a search is submitted with blank text.
var ErrEmptyQuery = errors.New("search query must not be empty")

// ErrStale reports that a load was superseded by a newer search.
var ErrStale = aggregator.ErrStale

// State is the driver's position in its state machine.
type State string

const (
	StateIdle      State = "idle"
	StateLoading   State = "loading"
	StateExhausted State = "exhausted"
)

// Loader is the feed operation the driver coordinates.
type Loader interface {
	Load(ctx context.Context, query string, page int, mode aggregator.Mode, opts ...aggregator.LoadOption) (aggregator.Result, error)
}

// Snapshot is the pagination state for one query.
type Snapshot struct {
	Query   string `json:"query"`
	Cursor  int    `json:"cursor"`
	HasMore bool   `json:"has_more"`
	State   State  `json:"state"`
}

// Driver tracks the cursor of the active query.
type Driver struct {
	loader Loader

	mu      sync.Mutex
	query   string
	cursor  int
	hasMore bool
	state   State
	token   uint64
}

// New creates an idle Driver with no active query.
func New(loader Loader) *Driver {
	return &Driver{
		loader:  loader,
		cursor:  1,
		hasMore: true,
		state:   StateIdle,
	}
}

// Search makes query the active query and loads its first page, replacing the feed.
// It may be called in any state; an older in-flight load becomes stale.
func (d *Driver) Search(ctx context.Context, query string) (aggregator.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return aggregator.Result{}, ErrEmptyQuery
	}

	d.mu.Lock()
	d.token++
	token := d.token
	d.query = query
	d.cursor = 1
	d.hasMore = true
	d.state = StateLoading
	d.mu.Unlock()

	res, err := d.loader.Load(ctx, query, 1, aggregator.ModeReplace, aggregator.WithGuard(d.current(token)))

	d.mu.Lock()
	defer d.mu.Unlock()
	if token != d.token {
		return aggregator.Result{}, ErrStale
	}
	if err != nil {
		d.state = StateIdle
		return aggregator.Result{}, err
	}
	d.settle(res.HasMore)
	return res, nil
}

// SelectCategory is a search for a predefined category name.
func (d *Driver) SelectCategory(ctx context.Context, name string) (aggregator.Result, error) {
	return d.Search(ctx, name)
}

// ScrollNearEnd loads the page after the cursor and appends it to the feed.
// It is a no-op (false, nil) while a load is in flight, after the query is
// exhausted, or before any search.
func (d *Driver) ScrollNearEnd(ctx context.Context) (bool, aggregator.Result, error) {
	d.mu.Lock()
	if d.state != StateIdle || !d.hasMore || d.query == "" {
		d.mu.Unlock()
		return false, aggregator.Result{}, nil
	}
	token := d.token
	query := d.query
	page := d.cursor + 1
	d.state = StateLoading
	d.mu.Unlock()

	res, err := d.loader.Load(ctx, query, page, aggregator.ModeAppend, aggregator.WithGuard(d.current(token)))

	d.mu.Lock()
	defer d.mu.Unlock()
	if token != d.token {
		return false, aggregator.Result{}, ErrStale
	}
	if err != nil {
		d.state = StateIdle
		return false, aggregator.Result{}, err
	}
	d.cursor = page
	d.settle(res.HasMore)
	return true, res, nil
}

// Snapshot returns the current pagination state.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return Snapshot{Query: d.query, Cursor: d.cursor, HasMore: d.hasMore, State: d.state}
}

// settle leaves the loading state. d.mu must be held.
func (d *Driver) settle(hasMore bool) {
	d.hasMore = hasMore
	if hasMore {
		d.state = StateIdle
	} else {
		d.state = StateExhausted
	}
}

// current returns a guard reporting whether token still names the active query.
func (d *Driver) current(token uint64) func() bool {
	return func() bool {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.token == token
	}
}
