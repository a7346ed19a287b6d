package usecase

import (
	"fmt"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// noPreferenceTokens are generic answers meaning "no brand preference".
var noPreferenceTokens = map[string]bool{
	"all":         true,
	"all options": true,
	"any":         true,
}

// SanitizeExtraction coerces the loose JSON payload returned by the external
// extraction capability into a clean IntentDelta. This is the single point of
// defensive coercion: the rest of the engine only ever sees the clean schema.
func SanitizeExtraction(raw map[string]interface{}, utterance string, vocab *Vocabulary) domain.IntentDelta {
	var delta domain.IntentDelta
	if raw == nil {
		return delta
	}

	delta.Category = coerceString(raw["category"])
	if delta.Category == "" {
		delta.Category = categoryFromAffirmations(raw["affirmations"], vocab)
	}
	delta.Category = normalizeTerm(delta.Category)

	brand := normalizeTerm(coerceString(raw["brand"]))
	switch {
	case noPreferenceTokens[brand]:
		delta.NoBrandPreference = true
	case brand != "":
		delta.Brand = brand
	default:
		// Repair step: the capability missed the brand, but the utterance may
		// still name one the vocabulary knows.
		delta.Brand = brandFromUtterance(utterance, vocab)
	}

	color := normalizeTerm(coerceString(raw["color"]))
	if color != "" {
		if vocab.HasColorGroup(color) {
			delta.ColorGroup = color
		} else {
			delta.Color = color
		}
	}

	delta.Price = coercePriceRange(raw["price_range"])

	for _, term := range coerceStringList(raw["exclusions"]) {
		bucketExclusion(term, vocab, &delta.Exclusions)
	}

	return delta
}

// categoryFromAffirmations backfills the category from the capability's
// affirmations list when it was not directly stated. The first usable entry
// wins: either an object with a "category" key or a bare string the
// vocabulary recognizes as a category.
func categoryFromAffirmations(value interface{}, vocab *Vocabulary) string {
	list, ok := value.([]interface{})
	if !ok {
		return ""
	}
	for _, item := range list {
		switch v := item.(type) {
		case map[string]interface{}:
			if c := coerceString(v["category"]); c != "" {
				return c
			}
		case string:
			if vocab.HasCategory(v) {
				return normalizeTerm(v)
			}
		}
	}
	return ""
}

// brandFromUtterance tries a direct case-insensitive substring match of every
// vocabulary brand against the utterance.
func brandFromUtterance(utterance string, vocab *Vocabulary) string {
	text := strings.ToLower(utterance)
	for _, brand := range vocab.Brands {
		if strings.Contains(text, brand) {
			return brand
		}
	}
	return ""
}

// bucketExclusion types a flat exclusion term by vocabulary membership.
// Unknown terms default to the brand bucket.
func bucketExclusion(term string, vocab *Vocabulary, exclusions *domain.Exclusions) {
	switch {
	case vocab.HasBrand(term):
		exclusions.Brands = unionTerms(exclusions.Brands, []string{term})
	case vocab.HasCategory(term):
		exclusions.Categories = unionTerms(exclusions.Categories, []string{term})
	case vocab.HasColor(term) || vocab.HasColorGroup(term):
		exclusions.Colors = unionTerms(exclusions.Colors, []string{term})
	default:
		exclusions.Brands = unionTerms(exclusions.Brands, []string{term})
	}
}

// coerceString returns the value if it is a string, otherwise "".
func coerceString(value interface{}) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// coerceStringList flattens a JSON array into lower-cased strings. Non-list
// values become an empty list; non-string entries are stringified.
func coerceStringList(value interface{}) []string {
	list, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		var s string
		if str, ok := item.(string); ok {
			s = str
		} else {
			s = fmt.Sprintf("%v", item)
		}
		s = normalizeTerm(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// coercePriceRange accepts either a [min, max] array or a bare number treated
// as a ceiling. Anything else is ignored.
func coercePriceRange(value interface{}) *domain.PriceRange {
	switch v := value.(type) {
	case []interface{}:
		if len(v) != 2 {
			return nil
		}
		min, okMin := coerceNumber(v[0])
		max, okMax := coerceNumber(v[1])
		if !okMin || !okMax || max < min {
			return nil
		}
		return &domain.PriceRange{Min: min, Max: max}
	default:
		if max, ok := coerceNumber(value); ok {
			return &domain.PriceRange{Min: 0, Max: max}
		}
	}
	return nil
}

// coerceNumber accepts JSON numbers (float64 after decoding) and numeric strings.
func coerceNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		return parsePrice(strings.TrimPrefix(strings.TrimSpace(v), "$"))
	}
	return 0, false
}
