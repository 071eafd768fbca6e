package ollama

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

func TestClient_Complete(t *testing.T) {
	var got ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chat":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(ChatResponse{Message: Message{Role: "assistant", Content: "Simmer gently."}, Done: true})
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 0.3, 128, 5*time.Second, zap.NewNop())

	answer, err := client.Complete(context.Background(), outbound.CompletionRequest{
		Instruction: "be brief",
		Turns:       []copilot.Turn{{Role: copilot.RoleUser, Content: "How long to simmer?"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Simmer gently.", answer)
	assert.Equal(t, defaultModel, got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.EqualValues(t, 128, got.Options["num_predict"])

	assert.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "ollama", client.Provider())
}

func TestClient_Complete_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "missing", 0, 0, time.Second, zap.NewNop())
	_, err := client.Complete(context.Background(), outbound.CompletionRequest{
		Turns: []copilot.Turn{{Role: copilot.RoleUser, Content: "hi"}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama API error 404")
}
