package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gauthierbraillon/mediamix/internal/aggregator"
	"github.com/gauthierbraillon/mediamix/internal/download"
	"github.com/gauthierbraillon/mediamix/internal/events"
	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/pagination"
	"github.com/gauthierbraillon/mediamix/internal/prefs"
)

// ErrUnknownItem is returned when a favorite toggle names an item that is
// neither a favorite nor in the feed.
var ErrUnknownItem = errors.New("item not found in feed or favorites")

// LoadDefault loads the configured startup query without touching recent searches.
func (a *App) LoadDefault(ctx context.Context) (aggregator.Result, error) {
	return a.search(ctx, a.Config.Query, "startup")
}

// Search records query in recent searches then makes it the active query.
func (a *App) Search(ctx context.Context, query string) (aggregator.Result, error) {
	if _, err := a.Prefs.PushRecent(ctx, query); err != nil {
		log.Printf("[app] %v", err)
	}
	return a.search(ctx, query, "search")
}

// SelectCategory searches a predefined category name.
func (a *App) SelectCategory(ctx context.Context, name string) (aggregator.Result, error) {
	return a.search(ctx, name, "category")
}

func (a *App) search(ctx context.Context, query, origin string) (aggregator.Result, error) {
	if strings.TrimSpace(query) == "" {
		return aggregator.Result{}, pagination.ErrEmptyQuery
	}

	e := events.New(events.TypeSearch)
	e.Query = query
	e.Value = origin
	events.Emit(ctx, a.Events, e)

	res, err := a.Driver.Search(ctx, query)
	if err != nil {
		return res, err
	}
	a.pageLoaded(ctx, 1, res)
	a.rememberFeed(ctx)
	return res, nil
}

// Scroll loads the next page of the active query when one is due.
func (a *App) Scroll(ctx context.Context) (bool, aggregator.Result, error) {
	loaded, res, err := a.Driver.ScrollNearEnd(ctx)
	if err != nil || !loaded {
		return loaded, res, err
	}
	a.pageLoaded(ctx, a.Driver.Snapshot().Cursor, res)
	a.rememberFeed(ctx)
	return true, res, nil
}

func (a *App) pageLoaded(ctx context.Context, page int, res aggregator.Result) {
	e := events.New(events.TypePageLoaded)
	e.Query = a.Driver.Snapshot().Query
	e.Page = page
	e.Count = res.Fetched
	events.Emit(ctx, a.Events, e)
}

// ToggleFavorite flips the favorite state of item.
func (a *App) ToggleFavorite(ctx context.Context, item media.MediaItem) (bool, error) {
	favorited, err := a.Favorites.Toggle(ctx, item)
	if err != nil {
		return false, err
	}
	e := events.New(events.TypeFavoriteToggled)
	e.ItemID = item.ID
	e.Count = a.Favorites.Count()
	e.Value = fmt.Sprint(favorited)
	events.Emit(ctx, a.Events, e)
	return favorited, nil
}

// ToggleFavoriteByID resolves id against favorites, the live feed and the
// remembered feed, then toggles it.
func (a *App) ToggleFavoriteByID(ctx context.Context, id string) (bool, media.MediaItem, error) {
	item, ok := a.lookup(ctx, id)
	if !ok {
		return false, media.MediaItem{}, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	favorited, err := a.ToggleFavorite(ctx, item)
	return favorited, item, err
}

func (a *App) lookup(ctx context.Context, id string) (media.MediaItem, bool) {
	if item, ok := a.Favorites.Get(id); ok {
		return item, true
	}
	for _, item := range a.Feed.Items() {
		if item.ID == id {
			return item, true
		}
	}
	for _, item := range a.RememberedFeed(ctx).Items {
		if item.ID == id {
			return item, true
		}
	}
	return media.MediaItem{}, false
}

// ToggleTheme flips and persists the theme.
func (a *App) ToggleTheme(ctx context.Context) (prefs.Theme, error) {
	theme, err := a.Prefs.ToggleTheme(ctx)
	if err != nil {
		return "", err
	}
	e := events.New(events.TypeThemeChanged)
	e.Value = string(theme)
	events.Emit(ctx, a.Events, e)
	return theme, nil
}

// Download saves url to the download directory.
func (a *App) Download(ctx context.Context, url, name string) (download.Result, error) {
	res, err := a.Downloader.Download(ctx, url, name)

	e := events.New(events.TypeDownload)
	e.Value = url
	if err != nil {
		e.Value = "error: " + err.Error()
	}
	events.Emit(ctx, a.Events, e)

	return res, err
}

// ClearCache drops cached responses and every stored record other than
// favorites, theme and recent searches.
func (a *App) ClearCache(ctx context.Context) (int, error) {
	a.Client.ClearCache()
	return prefs.ClearCache(ctx, a.KV)
}
