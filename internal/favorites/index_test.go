package favorites

import (
	"path/filepath"
	"testing"

	"github.com/joiefull/penderie/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "penderie.db"))
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIndex_PopulatesOnConstruction(t *testing.T) {
	s := openTestStore(t)
	if err := s.AddFavorite(1); err != nil {
		t.Fatalf("AddFavorite returned error: %v", err)
	}
	if err := s.AddFavorite(2); err != nil {
		t.Fatalf("AddFavorite returned error: %v", err)
	}

	idx := New(s)
	if !idx.IsFavorite(1) || !idx.IsFavorite(2) {
		t.Fatal("index missing favorites present in the store")
	}
	if idx.IsFavorite(3) {
		t.Fatal("IsFavorite(3) = true, want false")
	}
	if idx.Count() != 2 {
		t.Fatalf("Count = %d, want 2", idx.Count())
	}
}

func TestIndex_RefreshPicksUpStoreChanges(t *testing.T) {
	s := openTestStore(t)
	idx := New(s)

	if idx.IsFavorite(5) {
		t.Fatal("IsFavorite(5) = true before adding, want false")
	}

	if err := s.AddFavorite(5); err != nil {
		t.Fatalf("AddFavorite returned error: %v", err)
	}
	// Stale until refreshed.
	if idx.IsFavorite(5) {
		t.Fatal("index updated without Refresh")
	}
	idx.Refresh()
	if !idx.IsFavorite(5) {
		t.Fatal("IsFavorite(5) = false after Refresh, want true")
	}

	if err := s.RemoveFavorite(5); err != nil {
		t.Fatalf("RemoveFavorite returned error: %v", err)
	}
	idx.Refresh()
	if idx.IsFavorite(5) {
		t.Fatal("IsFavorite(5) = true after remove+Refresh, want false")
	}
}
