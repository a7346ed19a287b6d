package usecase

import (
	"sort"

	"github.com/shopmate/backend/internal/domain"
)

// Scoring points and thresholds
const (
	brandMatchPoints    = 2
	categoryMatchPoints = 2
	colorMatchPoints    = 3
	priceMatchPoints    = 2

	nearExactThreshold = 85 // brand/category similarity for scoring points

	topResults = 5
)

// ScoreAndRank assigns each candidate an additive relevance score against the
// resolved slots and returns the top candidates, highest score first. The sort
// is stable, so ties keep catalog relative order. Only the top 5 are surfaced;
// the rest are discarded, not retained for pagination.
func ScoreAndRank(candidates []domain.Product, state domain.PreferenceState) []domain.ScoredProduct {
	scored := make([]domain.ScoredProduct, 0, len(candidates))
	for _, p := range candidates {
		scored = append(scored, domain.ScoredProduct{Product: p, Score: scoreProduct(p, state)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topResults {
		scored = scored[:topResults]
	}
	return scored
}

func scoreProduct(p domain.Product, state domain.PreferenceState) int {
	score := 0

	if state.Brand != "" && ratio(p.Brand, state.Brand) > nearExactThreshold {
		score += brandMatchPoints
	}

	if state.Category != "" && ratio(p.Category, state.Category) > nearExactThreshold {
		score += categoryMatchPoints
	}

	if requested := requestedColor(state); requested != "" {
		if colorMatches(p.Color, expandColor(requested)) {
			score += colorMatchPoints
		}
	}

	if state.Price != nil && p.Price >= state.Price.Min && p.Price <= state.Price.Max {
		score += priceMatchPoints
	}

	return score
}
