package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopmate/backend/internal/domain"
)

const (
	categoryPrompt = "What type of product are you looking for? (e.g., lipstick, foundation)"
	brandPrompt    = "Do you have a preferred brand, or should I show all options?"
	noMatchMessage = "No exact match found. Would you like to explore other categories or brands?"
)

// AssistantConfig holds configuration for the assistant service
type AssistantConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// AssistantService is the engine entry point consumed by the surrounding UI.
// It resolves one turn at a time: utterance -> intent delta -> merged state ->
// filter -> ranked shortlist, or a clarification request when required slots
// are missing. Ranked results for identical states are cached briefly so a
// repeated turn does not rescan the catalog.
type AssistantService struct {
	resolver           IntentResolver
	pipeline           *FilterPipeline
	cache              domain.CacheRepository
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewAssistantService creates the assistant service with its dependencies.
func NewAssistantService(
	resolver IntentResolver,
	pipeline *FilterPipeline,
	cache domain.CacheRepository,
	config AssistantConfig,
) *AssistantService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &AssistantService{
		resolver:           resolver,
		pipeline:           pipeline,
		cache:              cache,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// ResolveTurn processes one user turn against the conversation's state and
// returns the updated state plus either ranked results or a clarification
// request. The input state is never mutated; the caller owns persisting the
// returned state between turns.
func (s *AssistantService) ResolveTurn(
	ctx context.Context,
	request *domain.TurnRequest,
	state domain.PreferenceState,
) (*domain.TurnResult, error) {
	if request == nil || strings.TrimSpace(request.Utterance) == "" {
		return nil, domain.ErrInvalidRequest
	}

	switch request.AnswersSlot {
	case domain.ClarifyCategory:
		// Clarification answers set the slot directly, bypassing merge, so
		// answering "lipstick" does not disturb other accumulated slots.
		state.Category = normalizeTerm(request.Utterance)
	case domain.ClarifyBrand:
		answer := normalizeTerm(request.Utterance)
		if noPreferenceTokens[answer] {
			state.NoBrandPreference = true
		} else {
			state.Brand = answer
		}
	default:
		delta := s.resolver.Resolve(ctx, request.Utterance, state)
		state = MergePreferences(state, delta)
	}

	// Required slots: category first, then brand (unless the user said any
	// brand will do).
	if state.Category == "" {
		return &domain.TurnResult{
			State:       state,
			ClarifySlot: domain.ClarifyCategory,
			Message:     categoryPrompt,
		}, nil
	}
	if state.Brand == "" && !state.NoBrandPreference {
		return &domain.TurnResult{
			State:       state,
			ClarifySlot: domain.ClarifyBrand,
			Message:     brandPrompt,
		}, nil
	}

	results := s.rankedResults(ctx, state)

	result := &domain.TurnResult{State: state, Results: results}
	if len(results) == 0 {
		result.Message = noMatchMessage
	}
	return result, nil
}

// rankedResults runs the filter pipeline and ranker, caching by a fingerprint
// of the merged state.
func (s *AssistantService) rankedResults(ctx context.Context, state domain.PreferenceState) []domain.ScoredProduct {
	key := stateFingerprint(state)

	if s.cache != nil {
		if value, err := s.cache.Get(ctx, key); err == nil {
			if cached, ok := value.([]domain.ScoredProduct); ok {
				if s.enableDebugLogging {
					log.Printf("[ASSIST] cache hit for %s", key)
				}
				return cached
			}
		}
	}

	candidates := s.pipeline.Filter(state)
	ranked := ScoreAndRank(candidates, state)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, ranked, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[ASSIST] cache set failed for %s: %v", key, err)
		}
	}
	return ranked
}

// stateFingerprint renders the filter-relevant parts of a state as a stable
// cache key.
func stateFingerprint(state domain.PreferenceState) string {
	price := ""
	if state.Price != nil {
		price = fmt.Sprintf("%.2f-%.2f", state.Price.Min, state.Price.Max)
	}
	floor := ""
	if state.Exclusions.PriceFloor != nil {
		floor = fmt.Sprintf("%.2f", *state.Exclusions.PriceFloor)
	}
	return strings.Join([]string{
		"results",
		state.Category,
		state.Brand,
		state.Color,
		state.ColorGroup,
		price,
		strings.Join(state.Exclusions.Brands, ","),
		strings.Join(state.Exclusions.Categories, ","),
		strings.Join(state.Exclusions.Colors, ","),
		floor,
	}, ":")
}
