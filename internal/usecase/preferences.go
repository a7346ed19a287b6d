package usecase

import (
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// MergePreferences folds a turn's intent delta into the accumulated state and
// returns the resulting state. The input state is never modified.
//
// Rules, applied in order:
//  1. Exclusions accumulate: delta exclusions are unioned into the state.
//  2. A category switch invalidates prior exclusion context, so changing
//     category resets every exclusion ("not red" while shopping lipstick
//     should not suppress red eyeshadow later).
//  3. Present inclusion slots overwrite; absent ones persist — unless the
//     delta carries exactly one inclusion slot, in which case the other
//     inclusion slots are cleared: a single focused statement ("show me pink
//     ones") narrows by that attribute alone.
//  4. Color and color group are mutually exclusive; setting one clears the other.
func MergePreferences(current domain.PreferenceState, delta domain.IntentDelta) domain.PreferenceState {
	next := current
	next.Exclusions = current.Exclusions.Clone()

	// Rule 1: union exclusions.
	next.Exclusions.Brands = unionTerms(next.Exclusions.Brands, delta.Exclusions.Brands)
	next.Exclusions.Categories = unionTerms(next.Exclusions.Categories, delta.Exclusions.Categories)
	next.Exclusions.Colors = unionTerms(next.Exclusions.Colors, delta.Exclusions.Colors)
	if delta.Exclusions.PriceFloor != nil {
		floor := *delta.Exclusions.PriceFloor
		next.Exclusions.PriceFloor = &floor
	}

	// Rule 2: switching category resets all exclusions.
	if delta.Category != "" && !strings.EqualFold(delta.Category, current.Category) {
		next.Exclusions = domain.Exclusions{}
	}

	// Rule 3: single-slot deltas narrow by that attribute alone.
	if delta.InclusionCount() == 1 {
		next.Category = ""
		next.Brand = ""
		next.Color = ""
		next.ColorGroup = ""
		next.Price = nil
	}

	if delta.Category != "" {
		next.Category = normalizeTerm(delta.Category)
	}
	if delta.Brand != "" {
		next.Brand = normalizeTerm(delta.Brand)
	}
	if delta.Price != nil {
		price := *delta.Price
		next.Price = &price
	}
	if delta.NoBrandPreference {
		next.Brand = ""
		next.NoBrandPreference = true
	}

	// Rule 4: color and color group are mutually exclusive.
	if delta.Color != "" {
		next.Color = normalizeTerm(delta.Color)
		next.ColorGroup = ""
	}
	if delta.ColorGroup != "" {
		next.ColorGroup = normalizeTerm(delta.ColorGroup)
		next.Color = ""
	}

	return next
}

// unionTerms appends the normalized new terms that are not already present,
// preserving insertion order.
func unionTerms(existing, incoming []string) []string {
	out := existing
	for _, term := range incoming {
		term = normalizeTerm(term)
		if term == "" {
			continue
		}
		present := false
		for _, have := range out {
			if have == term {
				present = true
				break
			}
		}
		if !present {
			out = append(out, term)
		}
	}
	return out
}
