package joiefull

import "fmt"

// Picture references a hosted product photo and its accessibility description.
type Picture struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Clothing mirrors one element of the clothes.json payload.
type Clothing struct {
	ID            int     `json:"id"`
	Picture       Picture `json:"picture"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Likes         int     `json:"likes"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price"`
}

// Discounted reports whether the item should display a crossed-out original
// price. Equal prices mean no discount.
func (c Clothing) Discounted() bool {
	return c.OriginalPrice > c.Price
}

// PriceString formats the current price for display.
func (c Clothing) PriceString() string {
	return formatPrice(c.Price)
}

// OriginalPriceString formats the pre-discount price for display.
func (c Clothing) OriginalPriceString() string {
	return formatPrice(c.OriginalPrice)
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}

// clothingWire is the decode target for catalog elements. Every field is a
// pointer so that a missing key can be told apart from a zero value; the
// client rejects the whole payload when any required field is absent.
type clothingWire struct {
	ID            *int         `json:"id"`
	Picture       *pictureWire `json:"picture"`
	Name          *string      `json:"name"`
	Category      *string      `json:"category"`
	Likes         *int         `json:"likes"`
	Price         *float64     `json:"price"`
	OriginalPrice *float64     `json:"original_price"`
}

type pictureWire struct {
	URL         *string `json:"url"`
	Description *string `json:"description"`
}

func (w clothingWire) validate() error {
	switch {
	case w.ID == nil:
		return fmt.Errorf("missing id")
	case w.Picture == nil:
		return fmt.Errorf("clothing %d: missing picture", *w.ID)
	case w.Picture.URL == nil:
		return fmt.Errorf("clothing %d: missing picture.url", *w.ID)
	case w.Picture.Description == nil:
		return fmt.Errorf("clothing %d: missing picture.description", *w.ID)
	case w.Name == nil:
		return fmt.Errorf("clothing %d: missing name", *w.ID)
	case w.Category == nil:
		return fmt.Errorf("clothing %d: missing category", *w.ID)
	case w.Likes == nil:
		return fmt.Errorf("clothing %d: missing likes", *w.ID)
	case w.Price == nil:
		return fmt.Errorf("clothing %d: missing price", *w.ID)
	case w.OriginalPrice == nil:
		return fmt.Errorf("clothing %d: missing original_price", *w.ID)
	}
	return nil
}

func (w clothingWire) clothing() Clothing {
	return Clothing{
		ID: *w.ID,
		Picture: Picture{
			URL:         *w.Picture.URL,
			Description: *w.Picture.Description,
		},
		Name:          *w.Name,
		Category:      *w.Category,
		Likes:         *w.Likes,
		Price:         *w.Price,
		OriginalPrice: *w.OriginalPrice,
	}
}
