package domain

// Product is a single catalog record. The catalog is loaded once at startup
// and treated as immutable; every field used for matching is compared
// case-insensitively, and absent fields are empty strings rather than nils.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
	URL         string  `json:"url,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Description string  `json:"description,omitempty"`
}

// ScoredProduct pairs a surviving candidate with its relevance score.
// Ephemeral: produced per query, never persisted. The product fields are
// embedded so the wire shape stays flat: name, brand, price and score side
// by side.
type ScoredProduct struct {
	Product
	Score int `json:"score"`
}
