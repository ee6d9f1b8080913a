package narrator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/game/story"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GroqClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.NarratorConfig{
		BaseURL: srv.URL,
		Model:   "llama-3.3-70b-versatile",
		Timeout: 5,
	}
	return NewGroqClient(cfg, "test-key"), srv
}

func TestGroqClient_Generate(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama-3.3-70b-versatile", req.Model)
		assert.InDelta(t, 0.7, req.Temperature, 0.001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, story.RoleSystem, req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "Selamat datang, petualang."}},
			},
		})
	})

	messages := []story.Entry{
		{Role: story.RoleSystem, Content: story.SystemPrompt},
		{Role: story.RoleUser, Content: "Halo"},
	}

	got, err := client.Generate(context.Background(), messages, GenerateOptions{Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "Selamat datang, petualang.", got)
}

func TestGroqClient_GenerateServerError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), nil, GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGroqClient_GenerateEmptyChoices(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	})

	got, err := client.Generate(context.Background(), nil, GenerateOptions{})
	require.NoError(t, err)
	assert.Empty(t, got) // caller substitutes the fallback text
}

func TestGroqClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, nil, GenerateOptions{})
	require.Error(t, err)
}
