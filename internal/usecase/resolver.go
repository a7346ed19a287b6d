package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/shopmate/backend/internal/domain"
)

// IntentResolver converts one user utterance into a structured intent delta.
// Implementations never surface an error to the caller: the worst outcome is
// an all-unset delta.
type IntentResolver interface {
	Resolve(ctx context.Context, utterance string, state domain.PreferenceState) domain.IntentDelta
}

// Package-level compiled regex patterns for performance
var (
	// Matches "not under $30" / "except under 30" style price-floor exclusions
	priceFloorRegex = regexp.MustCompile(`(?:not|except)\s+under\s+\$?(\d+(?:\.\d+)?)`)

	// Matches "$20", "20 dollars", "20 euros", "20 shekels"
	priceRegex = regexp.MustCompile(`\$(\d+(?:\.\d+)?)|(\d+(?:\.\d+)?)\s*(?:dollars|euros|shekels)`)
)

// RuleBasedResolver is the deterministic fallback strategy: fully
// self-contained, driven only by the vocabulary and substring/regex matching.
// For a fixed utterance and vocabulary it always produces the same delta.
type RuleBasedResolver struct {
	vocab              *Vocabulary
	enableDebugLogging bool
}

// NewRuleBasedResolver creates a rule-based resolver over the vocabulary.
func NewRuleBasedResolver(vocab *Vocabulary, enableDebugLogging bool) *RuleBasedResolver {
	return &RuleBasedResolver{vocab: vocab, enableDebugLogging: enableDebugLogging}
}

// Resolve detects exclusions first, then inclusions, then a price ceiling.
// Exclusion spans are scrubbed from the working text so an excluded term is
// not also captured as an inclusion. Undetected slots stay unset.
func (r *RuleBasedResolver) Resolve(ctx context.Context, utterance string, state domain.PreferenceState) domain.IntentDelta {
	_ = ctx // no blocking work; kept for interface symmetry

	var delta domain.IntentDelta
	text := strings.ToLower(utterance)

	text = r.detectExclusions(text, &delta)
	r.detectInclusions(text, state, &delta)
	r.detectPrice(text, &delta)

	if r.enableDebugLogging {
		log.Printf("[RESOLVE] rules: %q -> category=%q brand=%q color=%q group=%q exclusions=%+v",
			utterance, delta.Category, delta.Brand, delta.Color, delta.ColorGroup, delta.Exclusions)
	}
	return delta
}

// detectExclusions scans for negation patterns against the vocabulary and
// returns the text with every matched span scrubbed out. Brands are checked
// before categories before colors, so an "except X" term lands in the first
// slot whose vocabulary knows it.
func (r *RuleBasedResolver) detectExclusions(text string, delta *domain.IntentDelta) string {
	for _, brand := range r.vocab.Brands {
		for _, pattern := range []string{"not from " + brand, "except " + brand} {
			if strings.Contains(text, pattern) {
				delta.Exclusions.Brands = append(delta.Exclusions.Brands, brand)
				text = scrub(text, pattern)
			}
		}
	}

	for _, category := range r.vocab.Categories {
		for _, pattern := range []string{"not a " + category, "not an " + category, "except " + category} {
			if strings.Contains(text, pattern) {
				delta.Exclusions.Categories = append(delta.Exclusions.Categories, category)
				text = scrub(text, pattern)
			}
		}
	}

	// Coarse group names first, then specific catalog colors.
	colorTerms := append(append([]string{}, coreBaseColors...), r.vocab.Colors...)
	for _, color := range colorTerms {
		for _, pattern := range []string{"not " + color, "except " + color} {
			if strings.Contains(text, pattern) {
				delta.Exclusions.Colors = unionTerms(delta.Exclusions.Colors, []string{color})
				text = scrub(text, pattern)
			}
		}
	}

	if m := priceFloorRegex.FindStringSubmatch(text); m != nil {
		if floor, ok := parsePrice(m[1]); ok {
			delta.Exclusions.PriceFloor = &floor
			text = scrub(text, m[0])
		}
	}

	return text
}

// detectInclusions scans the vocabulary sets for substring membership in the
// (already scrubbed) text, skipping values recorded as excluded for that slot.
// First match wins; the vocabulary's catalog order makes that deterministic.
func (r *RuleBasedResolver) detectInclusions(text string, state domain.PreferenceState, delta *domain.IntentDelta) {
	excludedBrands := append(append([]string{}, state.Exclusions.Brands...), delta.Exclusions.Brands...)
	excludedCategories := append(append([]string{}, state.Exclusions.Categories...), delta.Exclusions.Categories...)
	excludedColors := append(append([]string{}, state.Exclusions.Colors...), delta.Exclusions.Colors...)

	for _, brand := range r.vocab.Brands {
		if termExcluded(brand, excludedBrands) {
			continue
		}
		if strings.Contains(text, brand) {
			delta.Brand = brand
			break
		}
	}

	for _, category := range r.vocab.Categories {
		if termExcluded(category, excludedCategories) {
			continue
		}
		if strings.Contains(text, category) {
			delta.Category = category
			break
		}
	}

	// Color: coarse group match first, specific shades only when no group hit.
	for _, base := range coreBaseColors {
		if termExcluded(base, excludedColors) {
			continue
		}
		if strings.Contains(text, base) {
			delta.ColorGroup = base
			break
		}
	}
	if delta.ColorGroup == "" {
		for _, color := range r.vocab.Colors {
			if termExcluded(color, excludedColors) {
				continue
			}
			if colorMentioned(text, color) {
				delta.Color = color
				break
			}
		}
	}
}

// detectPrice records the first price mention as the ceiling, keeping both the
// literal matched text and the parsed value.
func (r *RuleBasedResolver) detectPrice(text string, delta *domain.IntentDelta) {
	m := priceRegex.FindStringSubmatch(text)
	if m == nil {
		return
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	if max, ok := parsePrice(digits); ok {
		delta.Price = &domain.PriceRange{Min: 0, Max: max, Raw: strings.TrimSpace(m[0])}
	}
}

// colorMentioned reports whether the text mentions the catalog color, either
// as a whole or through any single constituent word of a multi-word shade.
func colorMentioned(text, color string) bool {
	if strings.Contains(text, color) {
		return true
	}
	for _, word := range strings.Fields(color) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}

// termExcluded reports whether a vocabulary value is covered by any recorded
// exclusion term (equal or containing it).
func termExcluded(value string, excluded []string) bool {
	for _, ex := range excluded {
		if ex != "" && strings.Contains(value, ex) {
			return true
		}
	}
	return false
}

// scrub blanks a matched span so later passes cannot re-capture it.
func scrub(text, span string) string {
	return strings.Replace(text, span, " ", 1)
}

// parsePrice parses a decimal price literal.
func parsePrice(s string) (float64, bool) {
	var value float64
	if _, err := fmt.Sscanf(s, "%f", &value); err != nil {
		return 0, false
	}
	return value, true
}

// FallbackResolver selects between the external extraction capability and the
// rule-based strategy. External failures are logged and recovered locally; the
// caller never observes an error from this component.
type FallbackResolver struct {
	extractor          domain.IntentExtractor
	rules              *RuleBasedResolver
	vocab              *Vocabulary
	enableDebugLogging bool
}

// NewFallbackResolver wraps the rule-based resolver with an optional external
// extractor. A nil extractor means rules-only operation.
func NewFallbackResolver(extractor domain.IntentExtractor, rules *RuleBasedResolver, enableDebugLogging bool) *FallbackResolver {
	return &FallbackResolver{
		extractor:          extractor,
		rules:              rules,
		vocab:              rules.vocab,
		enableDebugLogging: enableDebugLogging,
	}
}

// Resolve tries the external capability first and falls back to the rules on
// any error or malformed payload.
func (r *FallbackResolver) Resolve(ctx context.Context, utterance string, state domain.PreferenceState) domain.IntentDelta {
	if r.extractor == nil {
		return r.rules.Resolve(ctx, utterance, state)
	}

	raw, err := r.extractor.Extract(ctx, utterance, priorSlots(state))
	if err != nil {
		log.Printf("[RESOLVE] extraction failed, falling back to rules: %v", err)
		return r.rules.Resolve(ctx, utterance, state)
	}

	delta := SanitizeExtraction(raw, utterance, r.vocab)
	if r.enableDebugLogging {
		log.Printf("[RESOLVE] extractor: %q -> category=%q brand=%q color=%q",
			utterance, delta.Category, delta.Brand, delta.Color)
	}
	return delta
}

// priorSlots renders the accumulated state as "slot: value" lines for the
// extraction capability's context.
func priorSlots(state domain.PreferenceState) []string {
	var slots []string
	if state.Category != "" {
		slots = append(slots, "category: "+state.Category)
	}
	if state.Brand != "" {
		slots = append(slots, "brand: "+state.Brand)
	}
	if state.Color != "" {
		slots = append(slots, "color: "+state.Color)
	}
	if state.ColorGroup != "" {
		slots = append(slots, "color group: "+state.ColorGroup)
	}
	if state.Price != nil {
		slots = append(slots, fmt.Sprintf("price up to: %.2f", state.Price.Max))
	}
	return slots
}
