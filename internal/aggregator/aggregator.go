package aggregator

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/metrics"
)

// ErrStale is returned when a load finished after its query was superseded.
var ErrStale = errors.New("stale page load discarded")

// Aggregator collects and merges media items page by page.
// It is the only component that mutates the feed.
type Aggregator struct {
	fetcher PageFetcher

	mu      sync.Mutex
	items   []media.MediaItem
	hasMore bool
}

// New creates an Aggregator with an empty feed.
func New(fetcher PageFetcher) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		items:   make([]media.MediaItem, 0),
		hasMore: true,
	}
}

// Load fetches page of query and merges it into the feed according to mode.
func (a *Aggregator) Load(ctx context.Context, query string, page int, mode Mode, opts ...LoadOption) (Result, error) {
	if mode != ModeReplace && mode != ModeAppend {
		return Result{}, fmt.Errorf("unknown load mode %q", mode)
	}
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	fetched, err := a.fetcher.FetchPage(ctx, query, page)
	if err != nil {
		metrics.PageLoadsTotal.WithLabelValues(string(mode), "error").Inc()
		return Result{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if cfg.guard != nil && !cfg.guard() {
		metrics.PageLoadsTotal.WithLabelValues(string(mode), "stale").Inc()
		return Result{}, ErrStale
	}

	res := Result{Fetched: len(fetched)}
	if len(fetched) == 0 {
		a.hasMore = false
		if mode == ModeReplace {
			a.items = make([]media.MediaItem, 0)
			res.NoResults = true
		}
		metrics.PageLoadsTotal.WithLabelValues(string(mode), "empty").Inc()
	} else {
		a.hasMore = true
		if mode == ModeReplace {
			a.items = slices.Clone(fetched)
		} else {
			a.items = merge(a.items, fetched)
		}
		metrics.PageLoadsTotal.WithLabelValues(string(mode), "ok").Inc()
	}
	metrics.FeedSize.Set(float64(len(a.items)))

	res.HasMore = a.hasMore
	res.Items = slices.Clone(a.items)
	return res, nil
}

// merge behaves like an insertion-ordered map built from existing then incoming:
// known ids keep their position but take the newest value, new ids are appended.
func merge(existing, incoming []media.MediaItem) []media.MediaItem {
	out := make([]media.MediaItem, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))

	for _, batch := range [][]media.MediaItem{existing, incoming} {
		for _, item := range batch {
			if i, ok := index[item.ID]; ok {
				out[i] = item
				continue
			}
			index[item.ID] = len(out)
			out = append(out, item)
		}
	}
	return out
}

// Items returns a copy of the feed in display order.
func (a *Aggregator) Items() []media.MediaItem {
	a.mu.Lock()
	defer a.mu.Unlock()
	return slices.Clone(a.items)
}

// HasMore reports whether the last load returned any items.
func (a *Aggregator) HasMore() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hasMore
}

// Len returns the number of items in the feed.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// GetFeed returns feed items filtered by options. Never nil.
func (a *Aggregator) GetFeed(opts FeedOptions) []media.MediaItem {
	a.mu.Lock()
	feed := make([]media.MediaItem, 0, len(a.items))
	for _, item := range a.items {
		if len(opts.Kinds) > 0 && !slices.Contains(opts.Kinds, item.Kind) {
			continue
		}
		feed = append(feed, item)
	}
	a.mu.Unlock()

	if opts.Shuffle {
		shuffle(feed, opts.Rand)
	}
	if opts.Limit > 0 && len(feed) > opts.Limit {
		feed = feed[:opts.Limit]
	}
	return feed
}

// Shuffled returns a randomly ordered copy of the feed for display.
// The stored feed keeps its order.
func (a *Aggregator) Shuffled(rng *rand.Rand) []media.MediaItem {
	items := a.Items()
	shuffle(items, rng)
	return items
}

func shuffle(items []media.MediaItem, rng *rand.Rand) {
	swap := func(i, j int) { items[i], items[j] = items[j], items[i] }
	if rng != nil {
		rng.Shuffle(len(items), swap)
		return
	}
	rand.Shuffle(len(items), swap)
}
