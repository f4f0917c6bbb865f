// Package fetcher issues the photo and video searches for one page concurrently
// and turns them into a single page of canonical media items.
package fetcher

import (
	"context"
	"errors"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/metrics"
)

var (
	ErrEmptyQuery  = errors.New("search query must not be empty")
	ErrInvalidPage = errors.New("page must be 1 or greater")
)

// Searcher is the remote search contract, one call per media kind.
type Searcher interface {
	SearchPhotos(ctx context.Context, query string, page int) ([]media.Photo, error)
	SearchVideos(ctx context.Context, query string, page int) ([]media.Video, error)
}

// Fetcher combines both kinds of one search page.
type Fetcher struct {
	searcher Searcher
}

// New creates a Fetcher backed by searcher.
func New(searcher Searcher) *Fetcher {
	return &Fetcher{searcher: searcher}
}

// FetchPage returns photos (provider order) followed by videos (provider order)
// for query and page. A failure of one kind yields no items for that kind and
// is never returned. Invalid arguments produce an error, and so does a context
// that ended during the fetch, so callers never mistake it for an empty page.
func (f *Fetcher) FetchPage(ctx context.Context, query string, page int) ([]media.MediaItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if page < 1 {
		return nil, ErrInvalidPage
	}

	var photos, videos []media.MediaItem
	var g errgroup.Group

	g.Go(func() error {
		raw, err := f.searcher.SearchPhotos(ctx, query, page)
		photos = settle(media.KindPhoto, query, page, err, func() []media.MediaItem {
			return media.NormalizePhotos(raw)
		})
		return nil
	})
	g.Go(func() error {
		raw, err := f.searcher.SearchVideos(ctx, query, page)
		videos = settle(media.KindVideo, query, page, err, func() []media.MediaItem {
			return media.NormalizeVideos(raw)
		})
		return nil
	})
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	items := make([]media.MediaItem, 0, len(photos)+len(videos))
	items = append(items, photos...)
	items = append(items, videos...)
	return items, nil
}

// settle applies the partial-failure policy to one kind's result.
func settle(kind media.Kind, query string, page int, err error, normalize func() []media.MediaItem) []media.MediaItem {
	if err != nil {
		log.Printf("[fetcher] %s page %d for %q failed: %v", kind, page, query, err)
		metrics.KindFetchesTotal.WithLabelValues(string(kind), "error").Inc()
		return nil
	}

	items := normalize()
	metrics.KindFetchesTotal.WithLabelValues(string(kind), "ok").Inc()
	metrics.ItemsFetchedTotal.WithLabelValues(string(kind)).Add(float64(len(items)))
	return items
}
