package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSearcher struct {
	err     error
	results []Result
	calls   int
}

func (f *failingSearcher) Search(ctx context.Context, query string) ([]Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSoftServiceAbsorbsErrors(t *testing.T) {
	svc := NewSoftService(&failingSearcher{err: errors.New("search backend down")}, testLogger())

	results := svc.Search(context.Background(), "go concurrency")
	assert.Empty(t, results)
}

func TestSoftServicePassesThroughResults(t *testing.T) {
	want := []Result{{Title: "Go Blog", Link: "https://go.dev/blog", Snippet: "..."}}
	svc := NewSoftService(&failingSearcher{results: want}, testLogger())

	results := svc.Search(context.Background(), "go")
	assert.Equal(t, want, results)
}

func TestSoftServiceNilSearcher(t *testing.T) {
	svc := NewSoftService(nil, testLogger())
	assert.Nil(t, svc.Search(context.Background(), "go"))
}

func TestSoftServiceEmptyQuery(t *testing.T) {
	searcher := &failingSearcher{}
	svc := NewSoftService(searcher, testLogger())

	assert.Nil(t, svc.Search(context.Background(), ""))
	assert.Zero(t, searcher.calls)
}

func TestSerperClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		var req serperRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "go concurrency", req.Query)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "Go Blog", "link": "https://go.dev/blog", "snippet": "concurrency"},
				{"title": "Tour", "link": "https://go.dev/tour", "snippet": "goroutines"},
			},
		})
	}))
	defer srv.Close()

	client, err := NewSerperClient("test-key", 5)
	require.NoError(t, err)
	client.baseURL = srv.URL

	results, err := client.Search(context.Background(), "go concurrency")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Go Blog", results[0].Title)
}

func TestSerperClientTruncatesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "1"}, {"title": "2"}, {"title": "3"},
			},
		})
	}))
	defer srv.Close()

	client, err := NewSerperClient("test-key", 2)
	require.NoError(t, err)
	client.baseURL = srv.URL

	results, err := client.Search(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSerperClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client, err := NewSerperClient("test-key", 5)
	require.NoError(t, err)
	client.baseURL = srv.URL

	_, err = client.Search(context.Background(), "q")
	assert.Error(t, err)
}

func TestNewSerperClientRequiresKey(t *testing.T) {
	_, err := NewSerperClient("   ", 5)
	assert.Error(t, err)
}
