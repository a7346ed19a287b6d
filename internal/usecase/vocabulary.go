package usecase

import (
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// coreBaseColors are the canonical coarse color buckets. A catalog color joins
// every group whose name appears inside it as a substring; colors matching
// none land in the "other" catch-all.
var coreBaseColors = []string{"pink", "red", "beige", "purple", "peach", "brown", "blue"}

// colorGroupOther is the catch-all bucket for colors outside the core groups.
const colorGroupOther = "other"

// Vocabulary is the controlled vocabulary derived from the catalog at load
// time: the known categories, brands and colors, plus the color-group mapping.
// Built once, read-only thereafter. Values are lower-cased, trimmed, and kept
// in catalog order (deduplicated) so that first-match-wins scans over them are
// deterministic.
type Vocabulary struct {
	Categories []string
	Brands     []string
	Colors     []string

	// ColorGroups maps a base color name (or "other") to the catalog colors
	// assigned to it, in catalog order.
	ColorGroups map[string][]string

	categorySet map[string]bool
	brandSet    map[string]bool
	colorSet    map[string]bool
}

// BuildVocabulary derives the vocabulary from the catalog. An empty catalog
// yields empty sets rather than an error: downstream callers treat an empty
// vocabulary as "nothing resolvable from rules".
func BuildVocabulary(products []domain.Product) *Vocabulary {
	v := &Vocabulary{
		ColorGroups: make(map[string][]string),
		categorySet: make(map[string]bool),
		brandSet:    make(map[string]bool),
		colorSet:    make(map[string]bool),
	}

	for _, p := range products {
		if c := normalizeTerm(p.Category); c != "" && !v.categorySet[c] {
			v.categorySet[c] = true
			v.Categories = append(v.Categories, c)
		}
		if b := normalizeTerm(p.Brand); b != "" && !v.brandSet[b] {
			v.brandSet[b] = true
			v.Brands = append(v.Brands, b)
		}
		if col := normalizeTerm(p.Color); col != "" && !v.colorSet[col] {
			v.colorSet[col] = true
			v.Colors = append(v.Colors, col)
			v.assignColorGroups(col)
		}
	}

	return v
}

// assignColorGroups places a color into every core group whose base name it
// contains. A color may legitimately belong to more than one group
// ("pink-brown nude" joins both "pink" and "brown").
func (v *Vocabulary) assignColorGroups(color string) {
	grouped := false
	for _, base := range coreBaseColors {
		if strings.Contains(color, base) {
			v.ColorGroups[base] = append(v.ColorGroups[base], color)
			grouped = true
		}
	}
	if !grouped {
		v.ColorGroups[colorGroupOther] = append(v.ColorGroups[colorGroupOther], color)
	}
}

// HasCategory reports whether the term is a known category.
func (v *Vocabulary) HasCategory(term string) bool {
	return v.categorySet[normalizeTerm(term)]
}

// HasBrand reports whether the term is a known brand.
func (v *Vocabulary) HasBrand(term string) bool {
	return v.brandSet[normalizeTerm(term)]
}

// HasColor reports whether the term is a known catalog color.
func (v *Vocabulary) HasColor(term string) bool {
	return v.colorSet[normalizeTerm(term)]
}

// HasColorGroup reports whether the term names a core color group.
func (v *Vocabulary) HasColorGroup(term string) bool {
	t := normalizeTerm(term)
	for _, base := range coreBaseColors {
		if t == base {
			return true
		}
	}
	return t == colorGroupOther
}

// normalizeTerm lower-cases and trims a vocabulary term.
func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
