package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "adhoc.db"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCatalogCacheRoundTrip(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetCatalog()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("fresh store should have no cache, got %+v", got)
	}

	if err := s.SaveCatalog("listino.xlsx", []byte("v1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = s.GetCatalog()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.FileName != "listino.xlsx" || !bytes.Equal(got.Data, []byte("v1")) {
		t.Fatalf("cache mismatch: %+v", got)
	}

	// 第二次保存覆盖第一次
	if err := s.SaveCatalog("listino2.xlsx", []byte("v2")); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = s.GetCatalog()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FileName != "listino2.xlsx" || !bytes.Equal(got.Data, []byte("v2")) {
		t.Fatalf("overwrite failed: %+v", got)
	}
}

func TestCatalogCacheClear(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveCatalog("listino.xlsx", []byte("v1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.ClearCatalog(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, err := s.GetCatalog()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("cache should be empty after clear, got %+v", got)
	}
}
