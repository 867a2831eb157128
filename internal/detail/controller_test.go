package detail

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/joiefull/penderie/internal/favorites"
	"github.com/joiefull/penderie/internal/joiefull"
	"github.com/joiefull/penderie/internal/store"
)

type reviewCall struct {
	clothingID int
	review     string
	rating     int
}

type likeCall struct {
	clothingID int
	liked      bool
}

// fakeAPI records mutation calls and fails them on demand.
type fakeAPI struct {
	mu        sync.Mutex
	reviewErr error
	likeErr   error
	reviews   []reviewCall
	likes     chan likeCall
	gate      chan struct{} // when set, SubmitReview blocks until closed
	started   chan struct{} // closed when a gated SubmitReview has begun
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{likes: make(chan likeCall, 8)}
}

func (f *fakeAPI) FetchCatalog(ctx context.Context) ([]joiefull.Clothing, error) {
	return nil, nil
}

func (f *fakeAPI) SubmitReview(ctx context.Context, clothingID int, review string, rating int) error {
	if f.gate != nil {
		close(f.started)
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reviewErr != nil {
		return f.reviewErr
	}
	f.reviews = append(f.reviews, reviewCall{clothingID, review, rating})
	return nil
}

func (f *fakeAPI) SubmitLike(ctx context.Context, clothingID int, liked bool) error {
	f.mu.Lock()
	err := f.likeErr
	f.mu.Unlock()
	f.likes <- likeCall{clothingID, liked}
	return err
}

func (f *fakeAPI) reviewCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reviews)
}

func testItem(id int) joiefull.Clothing {
	return joiefull.Clothing{
		ID:       id,
		Name:     "Veste verte",
		Category: "TOPS",
		Picture:  joiefull.Picture{URL: "https://img.example/v.jpg", Description: "Veste verte"},
	}
}

func newTestController(t *testing.T, api joiefull.API) (*Controller, *store.Store, *favorites.Index) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "penderie.db"))
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	idx := favorites.New(s)
	return NewController(testItem(42), s, idx, api), s, idx
}

func TestSetRating_ToggleRule(t *testing.T) {
	c, _, _ := newTestController(t, newFakeAPI())

	steps := []struct {
		tap  int
		want int
	}{
		{3, 3}, // set
		{3, 3}, // re-tap on a star other than the first: unchanged
		{1, 1}, // set
		{1, 0}, // re-tap on the first star clears the rating
		{5, 5},
		{2, 2},
		{0, 2}, // out of range taps are ignored
		{6, 2},
	}
	for _, step := range steps {
		c.SetRating(step.tap)
		if got := c.State().Rating; got != step.want {
			t.Fatalf("after tap %d: rating = %d, want %d", step.tap, got, step.want)
		}
	}
}

func TestSubmit_SuccessPersistsLocally(t *testing.T) {
	api := newFakeAPI()
	c, s, _ := newTestController(t, api)

	c.SetReview("nice")
	c.SetRating(5)
	c.Submit(context.Background())

	st := c.State()
	if !st.Submitted || st.Submitting {
		t.Fatalf("state = %#v, want submitted and not submitting", st)
	}
	if st.LastError != "" {
		t.Fatalf("LastError = %q, want empty", st.LastError)
	}

	rec, err := s.GetReview(42)
	if err != nil {
		t.Fatalf("GetReview returned error: %v", err)
	}
	if rec == nil || rec.Review != "nice" || rec.Rating != 5 {
		t.Fatalf("stored review = %#v, want nice/5", rec)
	}
	if api.reviewCount() != 1 {
		t.Fatalf("remote review calls = %d, want 1", api.reviewCount())
	}

	// Submitted state is terminal: drafts freeze and resubmits are dropped.
	c.SetRating(1)
	c.SetReview("changed my mind")
	c.Submit(context.Background())
	st = c.State()
	if st.Rating != 5 || st.Review != "nice" {
		t.Fatalf("state mutated after submit: %#v", st)
	}
	if api.reviewCount() != 1 {
		t.Fatalf("remote review calls = %d after resubmit, want 1", api.reviewCount())
	}
}

func TestSubmit_RemoteFailureNeverReachesStore(t *testing.T) {
	api := newFakeAPI()
	api.reviewErr = errors.New("boom")
	c, s, _ := newTestController(t, api)

	c.SetReview("nice")
	c.SetRating(4)
	c.Submit(context.Background())

	st := c.State()
	if st.Submitted {
		t.Fatal("Submitted = true after a failed post, want false")
	}
	if st.LastError != SubmitErrorMessage {
		t.Fatalf("LastError = %q, want %q", st.LastError, SubmitErrorMessage)
	}
	rec, err := s.GetReview(42)
	if err != nil {
		t.Fatalf("GetReview returned error: %v", err)
	}
	if rec != nil {
		t.Fatalf("stored review = %#v after failed post, want none", rec)
	}

	// Retry after the failure succeeds and clears the error.
	api.mu.Lock()
	api.reviewErr = nil
	api.mu.Unlock()
	c.Submit(context.Background())
	st = c.State()
	if !st.Submitted || st.LastError != "" {
		t.Fatalf("state after retry = %#v, want submitted with no error", st)
	}
}

func TestSubmit_SingleFlight(t *testing.T) {
	api := newFakeAPI()
	api.gate = make(chan struct{})
	api.started = make(chan struct{})
	c, _, _ := newTestController(t, api)

	done := make(chan struct{})
	go func() {
		c.Submit(context.Background())
		close(done)
	}()
	<-api.started

	if !c.State().Submitting {
		t.Fatal("Submitting = false while a post is in flight")
	}
	// Dropped, not queued.
	c.Submit(context.Background())

	close(api.gate)
	<-done
	if api.reviewCount() != 1 {
		t.Fatalf("remote review calls = %d, want 1", api.reviewCount())
	}
}

func TestNewController_LoadsSavedReviewAsSubmitted(t *testing.T) {
	api := newFakeAPI()
	s, err := store.Open(filepath.Join(t.TempDir(), "penderie.db"))
	if err != nil {
		t.Fatalf("store.Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	if err := s.SaveReview(42, "Taille bien", 2); err != nil {
		t.Fatalf("SaveReview returned error: %v", err)
	}

	c := NewController(testItem(42), s, favorites.New(s), api)

	st := c.State()
	if !st.Submitted {
		t.Fatal("Submitted = false for an item with a saved review, want true")
	}
	if st.Review != "Taille bien" || st.Rating != 2 {
		t.Fatalf("state = %#v, want saved draft values", st)
	}

	// Read-only: the saved rating cannot be edited.
	c.SetRating(5)
	if got := c.State().Rating; got != 2 {
		t.Fatalf("rating = %d after edit attempt, want 2", got)
	}
}

func TestToggleFavorite_LocalFirstAndMirrored(t *testing.T) {
	api := newFakeAPI()
	c, s, idx := newTestController(t, api)

	c.ToggleFavorite()

	if !c.State().Favorited {
		t.Fatal("Favorited = false after toggle, want true")
	}
	fav, err := s.IsFavorite(42)
	if err != nil {
		t.Fatalf("IsFavorite returned error: %v", err)
	}
	if !fav {
		t.Fatal("store favorite missing after toggle")
	}
	if !idx.IsFavorite(42) {
		t.Fatal("index not refreshed after toggle")
	}

	select {
	case call := <-api.likes:
		if call.clothingID != 42 || !call.liked {
			t.Fatalf("like call = %#v, want id=42 liked=true", call)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no like call mirrored")
	}

	c.ToggleFavorite()
	if c.State().Favorited {
		t.Fatal("Favorited = true after second toggle, want false")
	}
	if idx.IsFavorite(42) {
		t.Fatal("index still lists the item after unfavorite")
	}
	select {
	case call := <-api.likes:
		if call.liked {
			t.Fatalf("like call = %#v, want liked=false", call)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no unlike call mirrored")
	}
}

func TestToggleFavorite_MirrorFailureDoesNotRollBack(t *testing.T) {
	api := newFakeAPI()
	api.likeErr = errors.New("not implemented")
	c, s, _ := newTestController(t, api)

	c.ToggleFavorite()

	select {
	case <-api.likes:
	case <-time.After(2 * time.Second):
		t.Fatal("no like call mirrored")
	}

	if !c.State().Favorited {
		t.Fatal("Favorited rolled back after a mirror failure")
	}
	fav, err := s.IsFavorite(42)
	if err != nil {
		t.Fatalf("IsFavorite returned error: %v", err)
	}
	if !fav {
		t.Fatal("store favorite rolled back after a mirror failure")
	}
}
