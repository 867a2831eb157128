package ui

import (
	"strings"
	"testing"

	"github.com/joiefull/penderie/internal/joiefull"
	"github.com/joiefull/penderie/internal/state"
)

func TestFlatItems_OrderFollowsSortedCategories(t *testing.T) {
	m := Model{snap: state.Snapshot{
		Phase: state.PhaseReady,
		ByCategory: map[string][]joiefull.Clothing{
			"TOPS":        {{ID: 3}, {ID: 4}},
			"ACCESSORIES": {{ID: 1}},
		},
		Categories: []string{"ACCESSORIES", "TOPS"},
	}}

	items := m.flatItems()
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if items[0].ID != 1 || items[1].ID != 3 || items[2].ID != 4 {
		t.Fatalf("items = %v, want category-sorted order 1,3,4", items)
	}
}

func TestLikeCount_FoldsInOwnFavorite(t *testing.T) {
	item := joiefull.Clothing{Likes: 56}
	if got := likeCount(item, false); got != 56 {
		t.Fatalf("likeCount(not favorited) = %d, want 56", got)
	}
	if got := likeCount(item, true); got != 57 {
		t.Fatalf("likeCount(favorited) = %d, want 57", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"Veste longue en laine mélangée", 12, "Veste longu…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderStars_CountsFilled(t *testing.T) {
	m := Model{theme: GetTheme("")}

	out := m.renderStars(3, false)
	if got := strings.Count(out, "★"); got != 3 {
		t.Fatalf("filled stars = %d, want 3", got)
	}
	if got := strings.Count(out, "☆"); got != 2 {
		t.Fatalf("empty stars = %d, want 2", got)
	}

	out = m.renderStars(0, false)
	if got := strings.Count(out, "☆"); got != 5 {
		t.Fatalf("empty stars = %d, want 5", got)
	}
}

func TestThemes_Cycle(t *testing.T) {
	first := GetTheme("")
	if first.Name != "Joiefull" {
		t.Fatalf("default theme = %q, want Joiefull", first.Name)
	}
	next := NextTheme(first.Name)
	if next == first.Name {
		t.Fatal("NextTheme did not advance")
	}
	// Cycling through every theme returns to the start.
	name := first.Name
	for range themes {
		name = NextTheme(name)
	}
	if name != first.Name {
		t.Fatalf("cycle ended at %q, want %q", name, first.Name)
	}
}
