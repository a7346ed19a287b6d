package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopmate/backend/internal/domain"
)

// countingCache records Get/Set traffic for cache assertions.
type countingCache struct {
	store map[string]interface{}
	gets  int
	sets  int
}

func newCountingCache() *countingCache {
	return &countingCache{store: make(map[string]interface{})}
}

func (c *countingCache) Get(ctx context.Context, key string) (interface{}, error) {
	c.gets++
	if value, ok := c.store[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (c *countingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.sets++
	c.store[key] = value
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func (c *countingCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.store[key]
	return ok, nil
}

func newTestAssistant(cache domain.CacheRepository) *AssistantService {
	catalog := testCatalog()
	vocab := BuildVocabulary(catalog)
	return NewAssistantService(
		NewRuleBasedResolver(vocab, false),
		NewFilterPipeline(catalog, false),
		cache,
		AssistantConfig{CacheTTL: time.Minute},
	)
}

func TestResolveTurn_Conversation(t *testing.T) {
	svc := newTestAssistant(newCountingCache())
	ctx := context.Background()

	// Turn 1: fully specified except brand.
	first, err := svc.ResolveTurn(ctx, &domain.TurnRequest{
		Utterance: "I want a pink lipstick under $20",
	}, domain.PreferenceState{})
	if err != nil {
		t.Fatalf("turn 1: %v", err)
	}
	if first.ClarifySlot != domain.ClarifyBrand {
		t.Fatalf("turn 1 ClarifySlot = %q, want brand clarification", first.ClarifySlot)
	}
	if first.Message != brandPrompt {
		t.Errorf("turn 1 Message = %q", first.Message)
	}
	if first.State.Category != "lipstick" || first.State.ColorGroup != "pink" {
		t.Errorf("turn 1 State = %+v", first.State)
	}

	// Turn 2: "all options" answers the brand prompt with no preference.
	second, err := svc.ResolveTurn(ctx, &domain.TurnRequest{
		Utterance:   "all options",
		AnswersSlot: domain.ClarifyBrand,
	}, first.State)
	if err != nil {
		t.Fatalf("turn 2: %v", err)
	}
	if second.ClarifySlot != "" {
		t.Fatalf("turn 2 ClarifySlot = %q, want results", second.ClarifySlot)
	}
	if !second.State.NoBrandPreference || second.State.Brand != "" {
		t.Errorf("turn 2 State = %+v, want no-preference marker", second.State)
	}
	if len(second.Results) != 1 || second.Results[0].ID != "1" {
		t.Fatalf("turn 2 Results = %+v, want the pink lipstick", second.Results)
	}
	if second.Results[0].Score != 7 {
		t.Errorf("turn 2 Score = %d, want 7", second.Results[0].Score)
	}
}

func TestResolveTurn_Clarification(t *testing.T) {
	svc := newTestAssistant(nil)
	ctx := context.Background()

	t.Run("asks for category before anything else", func(t *testing.T) {
		result, err := svc.ResolveTurn(ctx, &domain.TurnRequest{Utterance: "something pink"}, domain.PreferenceState{})
		if err != nil {
			t.Fatal(err)
		}
		if result.ClarifySlot != domain.ClarifyCategory || result.Message != categoryPrompt {
			t.Errorf("result = %+v, want category prompt", result)
		}
		if result.State.ColorGroup != "pink" {
			t.Errorf("State = %+v, want color preserved while clarifying", result.State)
		}
	})

	t.Run("category answer bypasses merge and keeps other slots", func(t *testing.T) {
		state := domain.PreferenceState{ColorGroup: "pink"}
		result, err := svc.ResolveTurn(ctx, &domain.TurnRequest{
			Utterance:   "Lipstick",
			AnswersSlot: domain.ClarifyCategory,
		}, state)
		if err != nil {
			t.Fatal(err)
		}
		if result.State.Category != "lipstick" || result.State.ColorGroup != "pink" {
			t.Errorf("State = %+v, want category set without narrowing", result.State)
		}
		if result.ClarifySlot != domain.ClarifyBrand {
			t.Errorf("ClarifySlot = %q, want brand next", result.ClarifySlot)
		}
	})

	t.Run("brand answer with a real brand filters on it", func(t *testing.T) {
		state := domain.PreferenceState{Category: "lipstick"}
		result, err := svc.ResolveTurn(ctx, &domain.TurnRequest{
			Utterance:   "Fenty",
			AnswersSlot: domain.ClarifyBrand,
		}, state)
		if err != nil {
			t.Fatal(err)
		}
		if result.State.Brand != "fenty" {
			t.Errorf("State = %+v", result.State)
		}
		if len(result.Results) != 1 || result.Results[0].ID != "1" {
			t.Errorf("Results = %+v", result.Results)
		}
	})

	t.Run("no match returns the fallback message", func(t *testing.T) {
		state := domain.PreferenceState{
			Category:          "lipstick",
			NoBrandPreference: true,
			Price:             &domain.PriceRange{Max: 1},
		}
		result, err := svc.ResolveTurn(ctx, &domain.TurnRequest{Utterance: "a lipstick cheaper than $1"}, state)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Results) != 0 || result.Message != noMatchMessage {
			t.Errorf("result = %+v, want the no-match message", result)
		}
	})
}

func TestResolveTurn_InvalidRequest(t *testing.T) {
	svc := newTestAssistant(nil)
	ctx := context.Background()

	for _, request := range []*domain.TurnRequest{nil, {Utterance: "   "}} {
		_, err := svc.ResolveTurn(ctx, request, domain.PreferenceState{})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("request %+v: err = %v, want ErrInvalidRequest", request, err)
		}
	}
}

func TestResolveTurn_CachesRankedResults(t *testing.T) {
	cache := newCountingCache()
	svc := newTestAssistant(cache)
	ctx := context.Background()
	state := domain.PreferenceState{Category: "lipstick", NoBrandPreference: true}

	first, err := svc.ResolveTurn(ctx, &domain.TurnRequest{Utterance: "show me lipstick"}, state)
	if err != nil {
		t.Fatal(err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1 after a miss", cache.sets)
	}

	second, err := svc.ResolveTurn(ctx, &domain.TurnRequest{Utterance: "show me lipstick"}, state)
	if err != nil {
		t.Fatal(err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want the second turn served from cache", cache.sets)
	}
	if cache.gets != 2 {
		t.Errorf("cache gets = %d, want 2", cache.gets)
	}
	if len(first.Results) != len(second.Results) {
		t.Errorf("cached results differ: %d vs %d", len(first.Results), len(second.Results))
	}
}
