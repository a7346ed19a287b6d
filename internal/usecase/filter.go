package usecase

import (
	"log"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// Matching thresholds (0-100 similarity)
const (
	brandExclusionThreshold = 80 // excluded brand fuzzily resembles product brand
	brandInclusionThreshold = 80 // requested brand fuzzily matches product brand
	categoryFuzzyThreshold  = 50 // category retry when no exact match survives
	colorMatchThreshold     = 70 // requested color/synonym vs product color
)

// colorSynonyms expands a requested color into the shade names catalogs
// actually use. A requested color without an entry matches only itself.
var colorSynonyms = map[string][]string{
	"red":    {"ruby", "scarlet", "crimson", "wine", "brick", "cherry"},
	"pink":   {"rose", "berry", "blush", "fuchsia", "bubblegum", "champagne", "nude", "pink"},
	"nude":   {"beige", "sand", "taupe", "caramel", "peach", "nude"},
	"brown":  {"mocha", "espresso", "chocolate", "bronze", "cocoa"},
	"purple": {"plum", "violet", "lilac", "mauve", "grape", "amethyst"},
	"orange": {"coral", "amber", "tangerine", "apricot", "peach"},
}

// FilterPipeline applies the merged preference state to the catalog as an
// ordered conjunction of filters and returns the surviving candidates.
type FilterPipeline struct {
	catalog            []domain.Product
	enableDebugLogging bool
}

// NewFilterPipeline creates a filter pipeline over the immutable catalog.
func NewFilterPipeline(catalog []domain.Product, enableDebugLogging bool) *FilterPipeline {
	return &FilterPipeline{catalog: catalog, enableDebugLogging: enableDebugLogging}
}

// Filter narrows the catalog by the state's inclusion slots, then applies the
// accumulated exclusions. The result may legitimately be empty.
//
// When any exclusion is active for the turn, the brand inclusion stage is
// skipped entirely; only the exclusion pass constrains brands then.
func (f *FilterPipeline) Filter(state domain.PreferenceState) []domain.Product {
	candidates := f.catalog

	candidates = f.filterBrand(candidates, state)
	candidates = f.filterCategory(candidates, state)
	candidates = f.filterColor(candidates, state)
	candidates = f.filterPrice(candidates, state)
	candidates = f.applyExclusions(candidates, state.Exclusions)

	if f.enableDebugLogging {
		log.Printf("[FILTER] %d of %d products survive state %+v", len(candidates), len(f.catalog), state)
	}
	return candidates
}

func (f *FilterPipeline) filterBrand(candidates []domain.Product, state domain.PreferenceState) []domain.Product {
	if state.Brand == "" {
		return candidates
	}
	if !state.Exclusions.Empty() {
		if f.enableDebugLogging {
			log.Printf("[FILTER] skipping brand filter, exclusions active: %+v", state.Exclusions)
		}
		return candidates
	}

	var kept []domain.Product
	for _, p := range candidates {
		if strings.EqualFold(strings.TrimSpace(p.Brand), state.Brand) ||
			partialRatio(p.Brand, state.Brand) > brandInclusionThreshold {
			kept = append(kept, p)
		}
	}
	return kept
}

func (f *FilterPipeline) filterCategory(candidates []domain.Product, state domain.PreferenceState) []domain.Product {
	if state.Category == "" {
		return candidates
	}

	var kept []domain.Product
	for _, p := range candidates {
		if strings.EqualFold(strings.TrimSpace(p.Category), state.Category) {
			kept = append(kept, p)
		}
	}
	if len(kept) > 0 {
		return kept
	}

	// No exact matches: retry fuzzily against the full, unfiltered catalog.
	if f.enableDebugLogging {
		log.Printf("[FILTER] no exact category match for %q, retrying fuzzily", state.Category)
	}
	for _, p := range f.catalog {
		if ratio(p.Category, state.Category) > categoryFuzzyThreshold {
			kept = append(kept, p)
		}
	}
	return kept
}

func (f *FilterPipeline) filterColor(candidates []domain.Product, state domain.PreferenceState) []domain.Product {
	requested := requestedColor(state)
	if requested == "" {
		return candidates
	}

	synonyms := expandColor(requested)
	var kept []domain.Product
	for _, p := range candidates {
		if colorMatches(p.Color, synonyms) {
			kept = append(kept, p)
		}
	}
	return kept
}

func (f *FilterPipeline) filterPrice(candidates []domain.Product, state domain.PreferenceState) []domain.Product {
	if state.Price == nil {
		return candidates
	}

	var kept []domain.Product
	for _, p := range candidates {
		if p.Price >= state.Price.Min && p.Price <= state.Price.Max {
			kept = append(kept, p)
		}
	}
	return kept
}

// applyExclusions drops any product covered by an accumulated exclusion term
// or priced below the exclusion floor.
func (f *FilterPipeline) applyExclusions(candidates []domain.Product, exclusions domain.Exclusions) []domain.Product {
	if exclusions.Empty() {
		return candidates
	}

	var kept []domain.Product
	for _, p := range candidates {
		if excludedProduct(p, exclusions) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

func excludedProduct(p domain.Product, exclusions domain.Exclusions) bool {
	brand := strings.ToLower(strings.TrimSpace(p.Brand))
	for _, ex := range exclusions.Brands {
		if strings.Contains(brand, ex) || partialRatio(brand, ex) >= brandExclusionThreshold {
			return true
		}
	}

	category := strings.ToLower(strings.TrimSpace(p.Category))
	for _, ex := range exclusions.Categories {
		if strings.Contains(category, ex) {
			return true
		}
	}

	color := strings.ToLower(strings.TrimSpace(p.Color))
	for _, ex := range exclusions.Colors {
		if strings.Contains(color, ex) {
			return true
		}
	}

	if exclusions.PriceFloor != nil && p.Price < *exclusions.PriceFloor {
		return true
	}
	return false
}

// requestedColor returns the coarse group when one is set, otherwise the
// specific shade.
func requestedColor(state domain.PreferenceState) string {
	if state.ColorGroup != "" {
		return state.ColorGroup
	}
	return state.Color
}

// expandColor returns the synonym set for a requested color, or the raw
// request when no synonyms are known.
func expandColor(requested string) []string {
	if synonyms, ok := colorSynonyms[requested]; ok {
		return synonyms
	}
	return []string{requested}
}

// colorMatches reports whether the product color fuzzily matches any synonym.
// Multi-word shades match through constituent words as well as whole strings.
func colorMatches(productColor string, synonyms []string) bool {
	for _, syn := range synonyms {
		if wordRatio(productColor, syn) > colorMatchThreshold {
			return true
		}
	}
	return false
}
