package catalog

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// Default values for absent catalog fields, per the cleaning contract.
const (
	defaultName     = "Unknown product"
	defaultCategory = "Unknown Category"
	defaultBrand    = "Unknown Brand"
	defaultColor    = "Unknown Color"
)

// rawProduct decodes one catalog entry with optionality preserved, so absent
// fields can be told apart from empty ones before defaulting.
type rawProduct struct {
	ID          *string  `json:"id"`
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Color       *string  `json:"color"`
	Price       *float64 `json:"price"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description"`
}

// Load reads the product catalog from a JSON file and applies the field
// defaults the engine relies on. A missing or unreadable file degrades to an
// empty catalog (wrapped ErrCatalogUnavailable) so the engine can still serve
// turns, just with nothing resolvable from rules.
func Load(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var raw []rawProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrCatalogUnavailable, path, err)
	}

	products := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, clean(r))
	}

	log.Printf("[CATALOG] loaded %d products from %s", len(products), path)
	return products, nil
}

// clean applies default values and trims the matchable fields.
func clean(r rawProduct) domain.Product {
	p := domain.Product{
		Name:        defaultName,
		Category:    defaultCategory,
		Brand:       defaultBrand,
		Color:       defaultColor,
		URL:         r.URL,
		ImageURL:    r.ImageURL,
		Description: r.Description,
	}

	if r.ID != nil {
		p.ID = strings.TrimSpace(*r.ID)
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) != "" {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Category != nil && strings.TrimSpace(*r.Category) != "" {
		p.Category = strings.TrimSpace(*r.Category)
	}
	if r.Brand != nil && strings.TrimSpace(*r.Brand) != "" {
		p.Brand = strings.TrimSpace(*r.Brand)
	}
	if r.Color != nil && strings.TrimSpace(*r.Color) != "" {
		p.Color = strings.TrimSpace(*r.Color)
	}
	if r.Price != nil && *r.Price >= 0 {
		p.Price = *r.Price
	}

	return p
}
