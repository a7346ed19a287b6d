package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching ranked results
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IntentExtractor defines the interface for the external intent-extraction
// capability. It receives the utterance plus the slots already stated in prior
// turns and returns the raw decoded JSON object from the capability. The
// payload is deliberately loose: a sanitizing adapter is the single place that
// coerces it into an IntentDelta.
type IntentExtractor interface {
	Extract(ctx context.Context, utterance string, priorSlots []string) (map[string]interface{}, error)
}
