package ui

import (
	"fmt"
	"strings"

	"github.com/joiefull/penderie/internal/joiefull"
	"github.com/joiefull/penderie/internal/state"
)

// baselineRating is the fixed display rating shown next to every item; it is
// editorial, not derived from user reviews.
const baselineRating = "4.3"

// flatItems returns the catalog items in display order: categories sorted
// lexicographically, items in server order within each category.
func (m Model) flatItems() []joiefull.Clothing {
	var out []joiefull.Clothing
	for _, cat := range m.snap.Categories {
		out = append(out, m.snap.ByCategory[cat]...)
	}
	return out
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(m.renderLoading())
	case m.snap.Phase == state.PhaseError:
		b.WriteString(m.renderLoadError())
	case m.currentView == ViewDetail:
		b.WriteString(m.renderDetail())
	default:
		b.WriteString(m.renderCatalog())
	}

	return b.String()
}

func (m Model) renderHeader() string {
	s := m.theme.Styles()

	logo := s.Logo.Render("PENDERIE")
	var status string
	switch {
	case m.loading:
		status = s.MutedText.Render("chargement...")
	case m.snap.Phase == state.PhaseError:
		status = s.Danger.Render("erreur")
	case m.snap.Phase == state.PhaseReady:
		status = s.MutedText.Render(fmt.Sprintf("%d articles · %d favoris",
			len(m.flatItems()), m.favs.Count()))
	}
	return logo + "  " + status
}

func (m Model) renderCommandBar() string {
	s := m.theme.Styles()
	switch {
	case m.inputFocused:
		return s.MutedText.Render("entrée/échap: terminer la saisie")
	case m.currentView == ViewDetail:
		return s.MutedText.Render("f: favori · 1-5: note · i: avis · s: envoyer · échap: retour · h: aide")
	default:
		return s.MutedText.Render("j/k: naviguer · entrée: détails · r: actualiser · q: quitter · h: aide")
	}
}

func (m Model) renderLoading() string {
	return m.theme.Styles().MutedText.Render("Chargement des vêtements...")
}

func (m Model) renderLoadError() string {
	s := m.theme.Styles()
	var b strings.Builder
	b.WriteString(s.Danger.Render(m.snap.ErrMessage))
	b.WriteString("\n\n")
	b.WriteString(s.MutedText.Render("r: réessayer"))
	return b.String()
}

// renderCatalog renders the category-grouped item list.
func (m Model) renderCatalog() string {
	s := m.theme.Styles()
	items := m.flatItems()
	if len(items) == 0 {
		return s.MutedText.Render("Aucun article.")
	}

	var b strings.Builder
	row := 0
	for _, cat := range m.snap.Categories {
		b.WriteString(s.Category.Render(cat))
		b.WriteString("\n")
		for _, item := range m.snap.ByCategory[cat] {
			line := m.renderItemRow(item)
			if row == m.selectedRow {
				line = s.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
			row++
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderItemRow renders one catalog line: heart, likes, name, rating, price.
func (m Model) renderItemRow(item joiefull.Clothing) string {
	s := m.theme.Styles()

	heart := " "
	if m.favs.IsFavorite(item.ID) {
		heart = s.AccentText.Render("♥")
	}
	likes := likeCount(item, m.favs.IsFavorite(item.ID))

	price := item.PriceString()
	if item.Discounted() {
		price += " " + s.Strike.Render(item.OriginalPriceString())
	}

	return fmt.Sprintf("%s %-3d %-32s ★ %s  %s",
		heart, likes, truncate(item.Name, 32), baselineRating, price)
}

// likeCount folds the user's own favorite into the server-reported count.
func likeCount(item joiefull.Clothing, favorited bool) int {
	if favorited {
		return item.Likes + 1
	}
	return item.Likes
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}

func (m Model) renderHelp() string {
	s := m.theme.Styles()
	var b strings.Builder
	b.WriteString(s.Logo.Render("PENDERIE — aide"))
	b.WriteString("\n\n")
	for _, line := range []string{
		"j/k, ↓/↑      naviguer dans le catalogue",
		"g/G           premier / dernier article",
		"entrée        ouvrir les détails",
		"f             ajouter/retirer des favoris",
		"1-5           noter l'article",
		"i             saisir un avis",
		"s             envoyer l'avis",
		"r             actualiser le catalogue",
		"T             changer de thème",
		"échap         retour",
		"q             quitter",
	} {
		b.WriteString(s.Text.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.MutedText.Render("appuyez sur une touche pour fermer"))
	return b.String()
}
