// Package favorites keeps the user's saved media items, mirrored to durable
// storage on every change.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/gauthierbraillon/mediamix/internal/media"
	"github.com/gauthierbraillon/mediamix/internal/metrics"
	"github.com/gauthierbraillon/mediamix/internal/store"
)

// Key is the storage record holding the favorites JSON array.
const Key = "favorites"

// Store is the set of favorite items keyed by ID, in the order they were added.
type Store struct {
	kv store.Store

	mu    sync.Mutex
	items []media.MediaItem
}

// Load reads favorites from kv. An absent or malformed record yields an empty set.
func Load(ctx context.Context, kv store.Store) (*Store, error) {
	s := &Store{kv: kv, items: make([]media.MediaItem, 0)}

	data, ok, err := kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}
	if ok {
		var items []media.MediaItem
		if err := json.Unmarshal(data, &items); err != nil {
			log.Printf("[favorites] ignoring malformed favorites record: %v", err)
		} else {
			s.items = dedupe(items)
		}
	}
	metrics.FavoritesCount.Set(float64(len(s.items)))
	return s, nil
}

// Toggle adds item when absent and removes it when present, then persists the set.
// It reports whether the item is a favorite afterwards. On a storage error the
// in-memory set is left unchanged.
func (s *Store) Toggle(ctx context.Context, item media.MediaItem) (bool, error) {
	if item.ID == "" {
		return false, fmt.Errorf("cannot favorite an item without id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated []media.MediaItem
	added := false
	if i := s.indexOf(item.ID); i >= 0 {
		updated = slices.Delete(slices.Clone(s.items), i, i+1)
	} else {
		updated = append(slices.Clone(s.items), item)
		added = true
	}

	data, err := json.Marshal(updated)
	if err != nil {
		return false, fmt.Errorf("marshal favorites: %w", err)
	}
	if err := s.kv.Set(ctx, Key, data); err != nil {
		return false, fmt.Errorf("save favorites: %w", err)
	}

	s.items = updated
	metrics.FavoritesCount.Set(float64(len(s.items)))
	return added, nil
}

// Contains reports whether id is a favorite.
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(id) >= 0
}

// Get returns the favorite with id.
func (s *Store) Get(id string) (media.MediaItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return media.MediaItem{}, false
}

// List returns the favorites in the order they were added.
func (s *Store) List() []media.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Count returns the number of favorites.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(it media.MediaItem) bool { return it.ID == id })
}

func dedupe(items []media.MediaItem) []media.MediaItem {
	seen := make(map[string]bool, len(items))
	out := make([]media.MediaItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
