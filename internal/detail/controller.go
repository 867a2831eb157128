// Package detail coordinates one opened catalog item's user state: the
// favorite flag, the review draft and its star rating, and the submission
// flow against the local store and the remote API.
package detail

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/joiefull/penderie/internal/favorites"
	"github.com/joiefull/penderie/internal/joiefull"
	"github.com/joiefull/penderie/internal/store"
)

// SubmitErrorMessage is the fixed inline message for a failed review post.
const SubmitErrorMessage = "Oups... Une erreur s'est produite, veuillez réessayer."

const likeTimeout = 10 * time.Second

// State is what the detail view renders for one item.
type State struct {
	Favorited  bool
	Review     string
	Rating     int
	Submitted  bool
	Submitting bool
	LastError  string
}

// Controller owns the draft state of exactly one catalog item. Methods are
// safe to call from any goroutine; a controller abandoned mid-submit just
// finishes quietly.
type Controller struct {
	mu    sync.Mutex
	state State

	item   joiefull.Clothing
	store  *store.Store
	index  *favorites.Index
	client joiefull.API
}

// NewController builds the controller for one item. A review already saved
// for the item loads as submitted, which makes the rating and text
// read-only: once sent, a review cannot be edited or resent.
func NewController(item joiefull.Clothing, st *store.Store, idx *favorites.Index, client joiefull.API) *Controller {
	c := &Controller{
		item:   item,
		store:  st,
		index:  idx,
		client: client,
	}
	c.state.Favorited = idx.IsFavorite(item.ID)

	rec, err := st.GetReview(item.ID)
	if err != nil {
		log.Printf("load review for %d: %v", item.ID, err)
	} else if rec != nil {
		c.state.Review = rec.Review
		c.state.Rating = rec.Rating
		c.state.Submitted = true
	}
	return c
}

// Item returns the catalog snapshot this controller was opened with.
func (c *Controller) Item() joiefull.Clothing {
	return c.item
}

// State returns a copy of the current UI state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetRating applies a tap on star 1-5. Tapping the star that is already the
// current rating clears it, but only when that star is the first one; any
// other re-tap leaves the rating unchanged. Ignored once submitted.
func (c *Controller) SetRating(value int) {
	if value < 1 || value > 5 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Submitted {
		return
	}
	if c.state.Rating != value {
		c.state.Rating = value
	} else if value == 1 {
		c.state.Rating = 0
	}
}

// SetReview replaces the review draft. Ignored once submitted.
func (c *Controller) SetReview(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Submitted {
		return
	}
	c.state.Review = text
}

// Submit posts the review, then caches it locally only after the remote call
// succeeded; a failed post never reaches the store, so the user can retry.
// A call while a submit is already in flight is dropped, not queued. Submit
// blocks for the duration of the post; callers run it on their own
// goroutine.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.state.Submitting || c.state.Submitted {
		c.mu.Unlock()
		return
	}
	c.state.Submitting = true
	c.state.LastError = ""
	review := c.state.Review
	rating := c.state.Rating
	c.mu.Unlock()

	err := c.client.SubmitReview(ctx, c.item.ID, review, rating)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Submitting = false
	if err != nil {
		log.Printf("post review for %d: %v", c.item.ID, err)
		c.state.LastError = SubmitErrorMessage
		return
	}
	c.state.Submitted = true
	if err := c.store.SaveReview(c.item.ID, review, rating); err != nil {
		// Best effort: the review reached the server, losing the local
		// cache only re-enables the form after a restart.
		log.Printf("cache review for %d: %v", c.item.ID, err)
	}
}

// ToggleFavorite flips the favorite flag local-first: the store and the
// favorites index update before any network traffic, and the like mirror
// call runs in the background with its result discarded. A failed mirror
// never rolls the local flag back.
func (c *Controller) ToggleFavorite() {
	c.mu.Lock()
	liked := !c.state.Favorited
	c.state.Favorited = liked
	c.mu.Unlock()

	var err error
	if liked {
		err = c.store.AddFavorite(c.item.ID)
	} else {
		err = c.store.RemoveFavorite(c.item.ID)
	}
	if err != nil {
		log.Printf("persist favorite for %d: %v", c.item.ID, err)
	}
	c.index.Refresh()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), likeTimeout)
		defer cancel()
		if err := c.client.SubmitLike(ctx, c.item.ID, liked); err != nil {
			// TODO: queue the like for replay once the API implements the
			// endpoint; for now the local flag stays authoritative.
			log.Printf("post like for %d: %v", c.item.ID, err)
		}
	}()
}
