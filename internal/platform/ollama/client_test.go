package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyforge/studyforge/internal/generation"
)

func TestClientChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)

		_ = json.NewEncoder(w).Encode(chatResponse{
			Message: ChatMessage{Role: "assistant", Content: "hello"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	gen, err := NewGenerator(client, "llama3")
	require.NoError(t, err)

	out, err := gen.GenerateText(context.Background(), "be brief", "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestClientChatAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "model not found"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Chat(context.Background(), "llama3", []ChatMessage{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}

func TestClientEmbedText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/embed", r.URL.Path)
		_ = json.NewEncoder(w).Encode(embedResponse{Embeddings: [][]float32{{0.1, 0.2, 0.3}}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	vec, err := client.EmbedText(context.Background(), "nomic-embed-text", "some text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestClientEmbedLegacyFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/embed":
			http.NotFound(w, r)
		case "/api/embeddings":
			_ = json.NewEncoder(w).Encode(legacyEmbedResponse{Embedding: []float32{0.4, 0.5}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	vec, err := client.EmbedText(context.Background(), "nomic-embed-text", "some text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.4, 0.5}, vec)
}

func TestNewGeneratorValidation(t *testing.T) {
	_, err := NewGenerator(nil, "llama3")
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGenerator(NewClient(""), "  ")
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestGenerateTextEmptyPrompt(t *testing.T) {
	gen, err := NewGenerator(NewClient(""), "llama3")
	require.NoError(t, err)

	_, err = gen.GenerateText(context.Background(), "sys", "   ")
	assert.ErrorIs(t, err, generation.ErrEmptyPrompt)
}
