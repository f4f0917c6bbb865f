package prefs

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/gauthierbraillon/mediamix/internal/store"
)

func TestTheme_DefaultsWhenAbsentOrMalformed(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	p := New(kv, ThemeDark)

	if got := p.Theme(ctx); got != ThemeDark {
		t.Errorf("absent theme should use default dark, got %s", got)
	}

	_ = kv.Set(ctx, ThemeKey, []byte(`"purple"`))
	if got := p.Theme(ctx); got != ThemeDark {
		t.Errorf("unknown theme should use default, got %s", got)
	}

	_ = kv.Set(ctx, ThemeKey, []byte(`{`))
	if got := p.Theme(ctx); got != ThemeDark {
		t.Errorf("malformed theme should use default, got %s", got)
	}
}

func TestToggleTheme_FlipsAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	p := New(kv, ThemeLight)

	next, err := p.ToggleTheme(ctx)
	if err != nil || next != ThemeDark {
		t.Fatalf("toggle from light should give dark, got %s, %v", next, err)
	}
	if got := New(kv, ThemeLight).Theme(ctx); got != ThemeDark {
		t.Errorf("theme should persist, got %s", got)
	}
	if next, _ := p.ToggleTheme(ctx); next != ThemeLight {
		t.Errorf("second toggle should return to light, got %s", next)
	}
}

func TestRecent_DefaultSuggestions(t *testing.T) {
	p := New(store.NewMemoryStore(), ThemeLight)

	if got := p.Recent(context.Background()); !reflect.DeepEqual(got, DefaultRecent) {
		t.Errorf("user should see default suggestions, got %v", got)
	}
}

func TestPushRecent_MostRecentFirstDedupedAndCapped(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemoryStore(), ThemeLight)

	_, _ = p.PushRecent(ctx, "cats")
	_, _ = p.PushRecent(ctx, "dogs")
	got, err := p.PushRecent(ctx, "cats")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"cats", "dogs", "Nature", "Technology", "Cars", "People"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("recent = %v, want %v", got, want)
	}
	if len(got) != MaxRecent {
		t.Errorf("recent searches should be capped at %d, got %d", MaxRecent, len(got))
	}
	if !reflect.DeepEqual(p.Recent(ctx), want) {
		t.Error("recent searches should be persisted")
	}
}

func TestPushRecent_ConcurrentSearchesAreAllKept(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemoryStore(), ThemeLight)

	var wg sync.WaitGroup
	for i := range MaxRecent {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.PushRecent(ctx, fmt.Sprintf("q%d", i)); err != nil {
				t.Errorf("push %d: %v", i, err)
			}
		}()
	}
	wg.Wait()

	got := p.Recent(ctx)
	if len(got) != MaxRecent {
		t.Fatalf("user should see all %d concurrent searches, got %v", MaxRecent, got)
	}
	for i := range MaxRecent {
		want := fmt.Sprintf("q%d", i)
		if !slices.Contains(got, want) {
			t.Errorf("recent searches lost %q: %v", want, got)
		}
	}
}

func TestToggleTheme_ConcurrentTogglesAllApply(t *testing.T) {
	ctx := context.Background()
	p := New(store.NewMemoryStore(), ThemeLight)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = p.ToggleTheme(ctx)
		}()
	}
	wg.Wait()

	if got := p.Theme(ctx); got != ThemeLight {
		t.Errorf("an even number of toggles should return to light, got %s", got)
	}
}

func TestPushRecent_IgnoresBlank(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	p := New(kv, ThemeLight)

	_, _ = p.PushRecent(ctx, "   ")

	if _, ok, _ := kv.Get(ctx, RecentKey); ok {
		t.Error("blank search should not be recorded")
	}
}

func TestClearCache_KeepsPreferences(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	for _, k := range []string{"favorites", "theme", "recentSearches", "feed:nature:1", "lastQuery"} {
		_ = kv.Set(ctx, k, []byte(`1`))
	}

	removed, err := ClearCache(ctx, kv)
	if err != nil {
		t.Fatal(err)
	}
	if removed != 2 {
		t.Errorf("expected 2 cache records removed, got %d", removed)
	}
	keys, _ := kv.Keys(ctx)
	if !reflect.DeepEqual(keys, []string{"favorites", "recentSearches", "theme"}) {
		t.Errorf("favorites, theme and recent searches should be kept, got %v", keys)
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme(" Dark "); err != nil || th != ThemeDark {
		t.Errorf("ParseTheme(Dark) = %s, %v", th, err)
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("sepia should be rejected")
	}
}
