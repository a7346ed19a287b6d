package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shopmate/backend/internal/domain"
	"golang.org/x/time/rate"
)

// systemPrompt instructs the completion service to return the six-field intent
// schema as a JSON object.
const systemPrompt = `Extract structured attributes from the user's shopping request:
- Identify affirmations (specific requests like 'I want a lipstick').
- Identify negations (e.g., 'not a foundation') and add them to exclusions.
- Recognize 'brand', 'category', 'color', 'price_range', and 'exclusions'.
- If a category or brand is clearly mentioned in the request, do NOT ask for clarification.
- Only apply exclusions from the current request.
- Ignore generic responses like 'show me all options', 'any', or similar vague terms.
- Always return a JSON object with these keys.`

// Client calls an OpenAI-compatible chat-completions endpoint to extract
// structured intent from free text. One attempt per turn: a failure means the
// caller falls back to rule-based resolution, so retries only add latency.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates an extractor client. baseURL should point at the API root
// (e.g. "https://api.openai.com/v1").
func NewClient(apiKey, baseURL, model string, timeout time.Duration) *Client {
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	// Keep well under typical completion-API rate limits; burst covers a few
	// concurrent conversations.
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug enables request/response logging.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	ResponseFormat map[string]string `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract sends the utterance plus prior-turn slot context to the completion
// service and returns the decoded JSON object from the reply.
func (c *Client) Extract(ctx context.Context, utterance string, priorSlots []string) (map[string]interface{}, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	userContent := utterance
	if len(priorSlots) > 0 {
		userContent = fmt.Sprintf("Previously stated: %s\nRequest: %s", strings.Join(priorSlots, "; "), utterance)
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "ShopMate/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[EXTRACT] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("%w: status %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrExtractionFailed, err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty choices", domain.ErrExtractionFailed)
	}

	content := chat.Choices[0].Message.Content
	if c.debug {
		log.Printf("[EXTRACT] %q -> %s", utterance, content)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%w: non-JSON content: %v", domain.ErrExtractionFailed, err)
	}
	return parsed, nil
}
