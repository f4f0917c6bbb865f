package store

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testStores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json")),
		"memory": NewMemoryStore(),
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, "theme"); err != nil || ok {
				t.Fatalf("missing key should report absent, got ok=%v err=%v", ok, err)
			}
			if err := s.Set(ctx, "theme", []byte(`"dark"`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, "favorites", []byte(`[]`)); err != nil {
				t.Fatalf("set: %v", err)
			}

			v, ok, err := s.Get(ctx, "theme")
			if err != nil || !ok || string(v) != `"dark"` {
				t.Errorf("get theme = %s, %v, %v", v, ok, err)
			}

			keys, err := s.Keys(ctx)
			if err != nil || !reflect.DeepEqual(keys, []string{"favorites", "theme"}) {
				t.Errorf("keys = %v, %v", keys, err)
			}

			if err := s.Delete(ctx, "theme"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := s.Get(ctx, "theme"); ok {
				t.Error("deleted key should be absent")
			}
		})
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	if err := NewFileStore(path).Set(ctx, "recentSearches", []byte(`["cats"]`)); err != nil {
		t.Fatal(err)
	}

	v, ok, err := NewFileStore(path).Get(ctx, "recentSearches")
	if err != nil || !ok || string(v) != `["cats"]` {
		t.Errorf("value should survive a restart, got %s, %v, %v", v, ok, err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should not remain after save")
	}
}

func TestFileStore_WritesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := NewFileStore(path).Set(context.Background(), "k", []byte(`1`)); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("store file should be 0600, got %o", info.Mode().Perm())
	}
}

func TestFileStore_CorruptFileReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path)

	if _, ok, err := s.Get(ctx, "favorites"); err != nil || ok {
		t.Errorf("corrupt file should read as empty, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "theme", []byte(`"light"`)); err != nil {
		t.Fatalf("corrupt file should be overwritable: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "theme"); !ok || string(v) != `"light"` {
		t.Errorf("value after recovery = %s", v)
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	buf := []byte(`"a"`)
	_ = s.Set(ctx, "k", buf)
	buf[1] = 'b'

	v, _, _ := s.Get(ctx, "k")
	if string(v) != `"a"` {
		t.Errorf("store should keep its own copy, got %s", v)
	}
}
