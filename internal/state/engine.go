package state

import (
	"context"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/joiefull/penderie/internal/joiefull"
)

// LoadErrorMessage is the one message shown for any catalog load failure,
// whatever the underlying error class was.
const LoadErrorMessage = "Oups... Une erreur s'est produite."

// Deep links have the form joiefull://vetement/{id}.
const (
	linkScheme = "joiefull"
	linkHost   = "vetement"
)

// Phase is the catalog loading lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

// Snapshot is an immutable view of the catalog for rendering.
type Snapshot struct {
	Phase      Phase
	ByCategory map[string][]joiefull.Clothing
	Categories []string // lexicographically sorted keys of ByCategory
	ErrMessage string
}

// Item looks up a clothing item by id in the snapshot.
func (s Snapshot) Item(id int) (joiefull.Clothing, bool) {
	for _, items := range s.ByCategory {
		for _, c := range items {
			if c.ID == id {
				return c, true
			}
		}
	}
	return joiefull.Clothing{}, false
}

// Engine owns the in-memory catalog and its loading lifecycle. Each Load
// replaces the catalog wholesale; there is no incremental merge.
type Engine struct {
	mu     sync.Mutex
	client joiefull.API

	phase  Phase
	byCat  map[string][]joiefull.Clothing
	errMsg string

	// ticket is the generation of the most recently initiated Load. A
	// completing Load applies its result only while it still holds the
	// latest ticket, so a slow stale request can never clobber a fresh one.
	ticket uint64
}

// NewEngine builds an Engine in the idle phase.
func NewEngine(client joiefull.API) *Engine {
	return &Engine{client: client}
}

// Load fetches the catalog and transitions to ready or error. It blocks for
// the duration of the fetch; callers run it on their own goroutine. When
// several Loads overlap, only the most recently initiated one wins.
func (e *Engine) Load(ctx context.Context) {
	e.mu.Lock()
	e.ticket++
	ticket := e.ticket
	e.phase = PhaseLoading
	e.mu.Unlock()

	clothes, err := e.client.FetchCatalog(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()
	if ticket != e.ticket {
		// A newer Load owns the outcome.
		return
	}
	if err != nil {
		log.Printf("catalog fetch failed: %v", err)
		e.phase = PhaseError
		e.errMsg = LoadErrorMessage
		e.byCat = nil
		return
	}
	e.byCat = groupByCategory(clothes)
	e.errMsg = ""
	e.phase = PhaseReady
}

// Snapshot returns a copy of the current catalog state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		Phase:      e.phase,
		ErrMessage: e.errMsg,
	}
	if e.byCat != nil {
		snap.ByCategory = make(map[string][]joiefull.Clothing, len(e.byCat))
		snap.Categories = make([]string, 0, len(e.byCat))
		for cat, items := range e.byCat {
			dup := make([]joiefull.Clothing, len(items))
			copy(dup, items)
			snap.ByCategory[cat] = dup
			snap.Categories = append(snap.Categories, cat)
		}
		sort.Strings(snap.Categories)
	}
	return snap
}

// ResolveLink resolves a joiefull://vetement/{id} deep link against the
// current catalog. It returns false when the catalog is not ready, the URL
// does not match the expected shape, or no item carries that id. It never
// panics on malformed input.
func (e *Engine) ResolveLink(raw string) (joiefull.Clothing, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return joiefull.Clothing{}, false
	}
	if u.Scheme != linkScheme || u.Host != linkHost {
		return joiefull.Clothing{}, false
	}
	idPart := strings.Trim(u.Path, "/")
	if idPart == "" || strings.Contains(idPart, "/") {
		return joiefull.Clothing{}, false
	}
	id, err := strconv.Atoi(idPart)
	if err != nil {
		return joiefull.Clothing{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != PhaseReady {
		return joiefull.Clothing{}, false
	}
	for _, items := range e.byCat {
		for _, c := range items {
			if c.ID == id {
				return c, true
			}
		}
	}
	return joiefull.Clothing{}, false
}

func groupByCategory(clothes []joiefull.Clothing) map[string][]joiefull.Clothing {
	out := make(map[string][]joiefull.Clothing)
	for _, c := range clothes {
		out[c.Category] = append(out[c.Category], c)
	}
	return out
}
