package app

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/gauthierbraillon/mediamix/internal/media"
)

// FeedCacheKey holds the last loaded feed so one-shot CLI runs can refer to it.
const FeedCacheKey = "cache:lastFeed"

// RememberedFeed is the persisted copy of the last loaded feed.
type RememberedFeed struct {
	Query   string            `json:"query"`
	Page    int               `json:"page"`
	Items   []media.MediaItem `json:"items"`
	SavedAt time.Time         `json:"saved_at"`
}

func (a *App) rememberFeed(ctx context.Context) {
	snap := a.Driver.Snapshot()
	data, err := json.Marshal(RememberedFeed{
		Query:   snap.Query,
		Page:    snap.Cursor,
		Items:   a.Feed.Items(),
		SavedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("[app] marshal feed cache: %v", err)
		return
	}
	if err := a.KV.Set(ctx, FeedCacheKey, data); err != nil {
		log.Printf("[app] save feed cache: %v", err)
	}
}

// RememberedFeed returns the last loaded feed, or an empty one when absent or
// older than the cache TTL.
func (a *App) RememberedFeed(ctx context.Context) RememberedFeed {
	data, ok, err := a.KV.Get(ctx, FeedCacheKey)
	if err != nil || !ok {
		return RememberedFeed{}
	}
	var rf RememberedFeed
	if err := json.Unmarshal(data, &rf); err != nil {
		log.Printf("[app] ignoring malformed feed cache: %v", err)
		return RememberedFeed{}
	}
	if a.Config.CacheTTL > 0 && time.Since(rf.SavedAt) > a.Config.CacheTTL {
		return RememberedFeed{}
	}
	return rf
}
