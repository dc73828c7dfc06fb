package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/studyforge/studyforge/internal/config"
	"github.com/studyforge/studyforge/internal/generation"
)

// Generator calls the Gemini API with exponential backoff retry for
// transient failures. It implements generation.TextGenerator.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	maxRetries        int
	retryDelaySeconds int
	rng               *rand.Rand
}

// NewGenerator creates a Gemini-backed text generator from the LLM
// configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:            logger.With("component", "gemini_generator"),
		client:            client,
		model:             cfg.ModelName,
		maxRetries:        normalizeRetries(cfg.MaxRetries),
		retryDelaySeconds: normalizeDelay(cfg.RetryDelaySeconds),
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// GenerateText sends the prompts to Gemini and returns the raw response
// text. Transient failures are retried with exponential backoff and jitter;
// permanent failures (safety blocks, malformed responses) return immediately.
func (g *Generator) GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if userPrompt == "" {
		return "", generation.ErrEmptyPrompt
	}

	var genCfg *genai.GenerateContentConfig
	if systemPrompt != "" {
		genCfg = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: systemPrompt}},
			},
		}
	}

	for attempt := 0; ; attempt++ {
		g.logger.InfoContext(ctx, "calling Gemini API",
			"model", g.model,
			"attempt", attempt+1,
			"max_attempts", g.maxRetries+1)

		text, err := g.callOnce(ctx, userPrompt, genCfg)
		if err == nil {
			return text, nil
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attempt+1,
			"error", err)

		// Permanent errors are never retried.
		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}

		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, g.maxRetries, err)
		}

		delay := backoffDelay(attempt, g.retryDelaySeconds, g.rng.Float64())
		g.logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt+1,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

// callOnce performs a single GenerateContent call and classifies the outcome.
func (g *Generator) callOnce(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		// API-level errors are assumed transient; the retry loop decides
		// whether another attempt is allowed.
		return "", fmt.Errorf("gemini api call: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	return text, nil
}

func normalizeRetries(n int) int {
	if n < 0 {
		return 3
	}
	return n
}

func normalizeDelay(seconds int) int {
	if seconds < 1 {
		return 2
	}
	return seconds
}

// backoffDelay computes the exponential backoff with jitter used between
// retry attempts: baseDelay * 2^attempt * (0.5 + jitter/2), jitter in [0,1).
func backoffDelay(attempt, baseDelaySeconds int, jitter float64) time.Duration {
	backoffSeconds := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
	jitterFactor := 0.5 + jitter*0.5
	return time.Duration(backoffSeconds * jitterFactor * float64(time.Second))
}

// Compile-time check that Generator satisfies generation.TextGenerator.
var _ generation.TextGenerator = (*Generator)(nil)
