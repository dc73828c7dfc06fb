package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultSerperBaseURL = "https://google.serper.dev"

// SerperClient calls the Serper web search API. It implements Searcher.
type SerperClient struct {
	apiKey     string
	baseURL    string
	maxResults int
	httpClient *http.Client
}

// NewSerperClient constructs a client with the provided API key.
// maxResults <= 0 defaults to 5.
func NewSerperClient(apiKey string, maxResults int) (*SerperClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("serper api key required")
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	return &SerperClient{
		apiKey:     apiKey,
		baseURL:    defaultSerperBaseURL,
		maxResults: maxResults,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Search performs a web search for the query.
func (c *SerperClient) Search(ctx context.Context, query string) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	body, err := json.Marshal(serperRequest{Query: query, Num: c.maxResults})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search api error: %s", resp.Status)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(parsed.Organic))
	for _, item := range parsed.Organic {
		if len(results) >= c.maxResults {
			break
		}
		results = append(results, Result{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}
