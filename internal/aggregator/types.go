// Package aggregator owns the cumulative media feed shown to the user.
//
// This package enables mediamix to:
// - Replace the feed wholesale when a new search starts
// - Append further pages with identity-based deduplication
// - Detect when a query has run out of results
// - Hand out filtered or shuffled read-only copies for presentation
package aggregator

import (
	"context"
	"math/rand/v2"

	"github.com/gauthierbraillon/mediamix/internal/media"
)

// Mode selects how a loaded page is merged into the feed.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeAppend  Mode = "append"
)

// PageFetcher returns one combined page of items for a query.
type PageFetcher interface {
	FetchPage(ctx context.Context, query string, page int) ([]media.MediaItem, error)
}

// Result describes the feed after a load.
type Result struct {
	Items     []media.MediaItem `json:"items"`
	Fetched   int               `json:"fetched"`
	HasMore   bool              `json:"has_more"`
	NoResults bool              `json:"no_results"`
}

// FeedOptions configures feed retrieval.
type FeedOptions struct {
	Limit int
	Kinds []media.Kind
	// Shuffle randomizes the returned copy before Limit applies.
	Shuffle bool
	Rand    *rand.Rand
}

// LoadOption configures a single Load call.
type LoadOption func(*loadConfig)

type loadConfig struct {
	guard func() bool
}

// WithGuard makes Load discard its result with ErrStale when guard reports false.
// The guard runs after the fetch, under the feed lock, before any mutation.
func WithGuard(guard func() bool) LoadOption {
	return func(c *loadConfig) {
		c.guard = guard
	}
}
