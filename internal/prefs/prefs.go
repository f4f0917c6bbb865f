// Package prefs stores the theme preference and recent searches.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/gauthierbraillon/mediamix/internal/favorites"
	"github.com/gauthierbraillon/mediamix/internal/store"
)

const (
	ThemeKey  = "theme"
	RecentKey = "recentSearches"

	// MaxRecent caps the recent searches list.
	MaxRecent = 6
)

// DefaultRecent is offered before the user has searched anything.
var DefaultRecent = []string{"Nature", "Technology", "Cars", "People", "Space"}

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("invalid theme %q: must be 'light' or 'dark'", s)
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Prefs reads and writes preference records in a store.
// Updates are serialized so concurrent toggles and searches are not lost.
type Prefs struct {
	mu           sync.Mutex
	kv           store.Store
	defaultTheme Theme
}

// New returns Prefs backed by kv. defaultTheme is used when no valid theme is stored.
func New(kv store.Store, defaultTheme Theme) *Prefs {
	if defaultTheme != ThemeDark {
		defaultTheme = ThemeLight
	}
	return &Prefs{kv: kv, defaultTheme: defaultTheme}
}

// Theme returns the stored theme or the default when absent or malformed.
func (p *Prefs) Theme(ctx context.Context) Theme {
	data, ok, err := p.kv.Get(ctx, ThemeKey)
	if err != nil {
		log.Printf("[prefs] read theme: %v", err)
		return p.defaultTheme
	}
	if !ok {
		return p.defaultTheme
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("[prefs] ignoring malformed theme record: %v", err)
		return p.defaultTheme
	}
	t, err := ParseTheme(s)
	if err != nil {
		log.Printf("[prefs] ignoring stored theme: %v", err)
		return p.defaultTheme
	}
	return t
}

// SetTheme persists t.
func (p *Prefs) SetTheme(ctx context.Context, t Theme) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setTheme(ctx, t)
}

func (p *Prefs) setTheme(ctx context.Context, t Theme) error {
	data, err := json.Marshal(string(t))
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	if err := p.kv.Set(ctx, ThemeKey, data); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme switches between light and dark and returns the new theme.
func (p *Prefs) ToggleTheme(ctx context.Context) (Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.Theme(ctx).Opposite()
	if err := p.setTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// Recent returns recent searches, most recent first.
func (p *Prefs) Recent(ctx context.Context) []string {
	data, ok, err := p.kv.Get(ctx, RecentKey)
	if err != nil {
		log.Printf("[prefs] read recent searches: %v", err)
		return slices.Clone(DefaultRecent)
	}
	if !ok {
		return slices.Clone(DefaultRecent)
	}
	var recent []string
	if err := json.Unmarshal(data, &recent); err != nil {
		log.Printf("[prefs] ignoring malformed recent searches: %v", err)
		return slices.Clone(DefaultRecent)
	}
	return recent
}

// PushRecent moves query to the front of recent searches and persists the list.
func (p *Prefs) PushRecent(ctx context.Context, query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return p.Recent(ctx), nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	updated := []string{query}
	for _, s := range p.Recent(ctx) {
		if s != query {
			updated = append(updated, s)
		}
	}
	if len(updated) > MaxRecent {
		updated = updated[:MaxRecent]
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return nil, fmt.Errorf("marshal recent searches: %w", err)
	}
	if err := p.kv.Set(ctx, RecentKey, data); err != nil {
		return nil, fmt.Errorf("save recent searches: %w", err)
	}
	return updated, nil
}

// ClearCache removes every stored record except favorites, theme and recent searches.
// It returns the number of records removed.
func ClearCache(ctx context.Context, kv store.Store) (int, error) {
	keys, err := kv.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("list keys: %w", err)
	}
	removed := 0
	for _, k := range keys {
		if preserved(k) {
			continue
		}
		if err := kv.Delete(ctx, k); err != nil {
			return removed, fmt.Errorf("delete %q: %w", k, err)
		}
		removed++
	}
	return removed, nil
}

func preserved(key string) bool {
	for _, prefix := range []string{favorites.Key, ThemeKey, RecentKey} {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}
