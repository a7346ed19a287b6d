package extractor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmate/backend/internal/domain"
)

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(reply))
}

func TestClient_Extract(t *testing.T) {
	t.Run("decodes the intent payload", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/chat/completions", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var req map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req["model"])
			messages := req["messages"].([]interface{})
			require.Len(t, messages, 2)

			chatReply(t, w, `{"category": "lipstick", "brand": "fenty", "exclusions": []}`)
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL+"/v1", "", 5*time.Second)
		payload, err := client.Extract(context.Background(), "a fenty lipstick", nil)

		require.NoError(t, err)
		assert.Equal(t, "lipstick", payload["category"])
		assert.Equal(t, "fenty", payload["brand"])
	})

	t.Run("prepends prior slots to the user message", func(t *testing.T) {
		var userContent string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Messages []struct {
					Role    string `json:"role"`
					Content string `json:"content"`
				} `json:"messages"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			userContent = req.Messages[1].Content
			chatReply(t, w, `{}`)
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "", 5*time.Second)
		_, err := client.Extract(context.Background(), "something pink", []string{"category: lipstick"})

		require.NoError(t, err)
		assert.Contains(t, userContent, "category: lipstick")
		assert.Contains(t, userContent, "something pink")
	})

	t.Run("non-200 status fails extraction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "", 5*time.Second)
		_, err := client.Extract(context.Background(), "anything", nil)

		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	})

	t.Run("non-JSON content fails extraction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			chatReply(t, w, "Sure! Here is what I found.")
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "", 5*time.Second)
		_, err := client.Extract(context.Background(), "anything", nil)

		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	})

	t.Run("empty choices fails extraction", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}}))
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "", 5*time.Second)
		_, err := client.Extract(context.Background(), "anything", nil)

		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	})

	t.Run("makes exactly one attempt", func(t *testing.T) {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient("test-key", server.URL, "", 5*time.Second)
		_, err := client.Extract(context.Background(), "anything", nil)

		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("key", "https://api.openai.com/v1/", "", 0)

	assert.Equal(t, "gpt-4o-mini", client.model)
	assert.Equal(t, "https://api.openai.com/v1", client.baseURL)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}
