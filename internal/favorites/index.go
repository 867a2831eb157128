// Package favorites keeps a process-wide in-memory index of favorited
// clothing ids so list rendering never hits the database per row.
package favorites

import (
	"log"
	"sync"

	"github.com/joiefull/penderie/internal/store"
)

// Index caches the set of favorited ids. It is rebuilt wholesale from the
// store on every Refresh; the set is small, bounded by catalog size.
type Index struct {
	mu    sync.RWMutex
	store *store.Store
	ids   map[int]struct{}
}

// New builds an Index and populates it from the store.
func New(s *store.Store) *Index {
	idx := &Index{
		store: s,
		ids:   make(map[int]struct{}),
	}
	idx.Refresh()
	return idx
}

// Refresh re-reads the favorite set from the store. A store failure keeps
// the previous set; favorites are best-effort display state.
func (i *Index) Refresh() {
	ids, err := i.store.ListFavorites()
	if err != nil {
		log.Printf("refresh favorites: %v", err)
		return
	}
	i.mu.Lock()
	i.ids = ids
	i.mu.Unlock()
}

// IsFavorite reports whether the id is in the cached set.
func (i *Index) IsFavorite(clothingID int) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.ids[clothingID]
	return ok
}

// Count returns the size of the cached set.
func (i *Index) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.ids)
}
