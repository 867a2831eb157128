package ui

import (
	"fmt"
	"strings"
)

// renderDetail renders the opened item: picture info, price, favorite state,
// and the review form.
func (m Model) renderDetail() string {
	if m.ctrl == nil {
		return ""
	}
	s := m.theme.Styles()
	item := m.ctrl.Item()
	st := m.ctrl.State()

	var b strings.Builder

	b.WriteString(s.AccentText.Render(item.Name))
	b.WriteString("  ")
	b.WriteString(s.MutedText.Render(item.Category))
	b.WriteString("\n")
	b.WriteString(s.MutedText.Render(item.Picture.Description))
	b.WriteString("\n\n")

	price := item.PriceString()
	if item.Discounted() {
		price += "  " + s.Strike.Render(item.OriginalPriceString())
	}
	b.WriteString(s.Text.Render(price))
	b.WriteString("   ★ " + baselineRating)
	b.WriteString(fmt.Sprintf("   ♥ %d", likeCount(item, st.Favorited)))
	if st.Favorited {
		b.WriteString("  " + s.AccentText.Render("favori"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderStars(st.Rating, st.Submitted))
	b.WriteString("\n\n")
	b.WriteString(m.renderReviewForm())

	return b.String()
}

// renderStars renders the five tappable rating stars.
func (m Model) renderStars(rating int, submitted bool) string {
	s := m.theme.Styles()

	var b strings.Builder
	for value := 1; value <= 5; value++ {
		star := "☆"
		if value <= rating {
			star = "★"
		}
		if submitted {
			b.WriteString(s.Warning.Render(star))
		} else {
			b.WriteString(s.Text.Render(star))
		}
		b.WriteString(" ")
	}
	if !submitted {
		b.WriteString(s.MutedText.Render(" (1-5)"))
	}
	return b.String()
}

// renderReviewForm renders the review input or the frozen submitted review.
func (m Model) renderReviewForm() string {
	s := m.theme.Styles()
	st := m.ctrl.State()

	var b strings.Builder
	switch {
	case st.Submitted:
		b.WriteString(s.Success.Render("Avis envoyé"))
		b.WriteString("\n")
		if st.Review != "" {
			b.WriteString(s.Text.Render(st.Review))
		} else {
			b.WriteString(s.MutedText.Render("(sans commentaire)"))
		}

	case m.inputFocused:
		b.WriteString(m.reviewInput.View())

	default:
		if st.Review != "" {
			b.WriteString(s.Text.Render(st.Review))
		} else {
			b.WriteString(s.MutedText.Render("Partagez ici vos impressions sur cette pièce"))
		}
		b.WriteString("\n\n")
		if st.Submitting {
			b.WriteString(s.MutedText.Render("Envoi en cours..."))
		} else {
			b.WriteString(s.MutedText.Render("s: envoyer l'avis"))
		}
	}

	if st.LastError != "" && !st.Submitted {
		b.WriteString("\n")
		b.WriteString(s.Danger.Render(st.LastError))
	}
	return b.String()
}
