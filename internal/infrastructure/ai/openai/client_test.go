package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/savory/api/internal/domain/copilot"
	"github.com/savory/api/internal/ports/outbound"
)

func newTestClient(url string) *Client {
	return NewClient(Options{
		APIKey:      "sk-test",
		BaseURL:     url + "/",
		Model:       "gpt-4o-mini",
		Temperature: 0.4,
		MaxTokens:   200,
		Timeout:     5 * time.Second,
	}, zap.NewNop())
}

func TestClient_Complete(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatCompletionResponse{
			Choices: []Choice{{Message: Message{Role: "assistant", Content: "  Use olive oil.  "}}},
		})
	}))
	defer server.Close()

	answer, err := newTestClient(server.URL).Complete(context.Background(), outbound.CompletionRequest{
		Instruction: "You are a cooking assistant.",
		Turns: []copilot.Turn{
			{Role: copilot.RoleUser, Content: "Out of butter"},
			{Role: copilot.RoleAssistant, Content: "What are you making?"},
			{Role: copilot.RoleUser, Content: "Pasta"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Use olive oil.", answer)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	require.Len(t, got.Messages, 4)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[2].Role)
	assert.Equal(t, "Pasta", got.Messages[3].Content)
}

func TestClient_Complete_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"You exceeded your current quota"}}`, "API error 429"},
		{"server error", http.StatusInternalServerError, `oops`, "API error 500: oops"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no response choices"},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"role":"assistant","content":" "}}]}`, "empty completion"},
		{"bad json", http.StatusOK, `{`, "failed to unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Complete(context.Background(), outbound.CompletionRequest{
				Turns: []copilot.Turn{{Role: copilot.RoleUser, Content: "hi"}},
			})

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestClient_Defaults(t *testing.T) {
	c := NewClient(Options{}, zap.NewNop())
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.Equal(t, "openai", c.Provider())
}
