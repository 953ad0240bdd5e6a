package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/phrazzld/tasksift/internal/config"
	"github.com/phrazzld/tasksift/internal/extraction"
	"github.com/phrazzld/tasksift/internal/redact"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 2 * time.Second
	maxBurst          = 5
)

// modelsAPI is the slice of the genai client used by Completer.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer sends a single prompt to a Gemini model and returns the text of
// the first candidate. It is safe for concurrent use.
type Completer struct {
	logger     *slog.Logger
	models     modelsAPI
	model      string
	settings   *genai.GenerateContentConfig
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter
}

// Compile-time check.
var _ extraction.Completer = (*Completer)(nil)

// NewCompleter creates a Completer from the LLM configuration.
// The configuration must carry an API key and a model name.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", extraction.ErrInvalidConfig)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create genai client: %s",
			extraction.ErrInvalidConfig, redact.Error(err))
	}

	return newCompleter(client.Models, logger, cfg), nil
}

func validateConfig(cfg config.LLMConfig) error {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", extraction.ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.ModelName) == "" {
		return fmt.Errorf("%w: model name cannot be empty", extraction.ErrInvalidConfig)
	}
	return nil
}

func newCompleter(models modelsAPI, logger *slog.Logger, cfg config.LLMConfig) *Completer {
	logger = logger.With("component", "gemini_completer", "model", cfg.ModelName)

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		logger.Warn("Invalid max retries value, using default", "max_retries", defaultMaxRetries)
		maxRetries = defaultMaxRetries
	}

	retryDelay := time.Duration(cfg.RetryDelaySeconds) * time.Second
	if retryDelay < time.Second {
		logger.Warn("Invalid retry delay value, using default", "retry_delay", defaultRetryDelay)
		retryDelay = defaultRetryDelay
	}

	settings := &genai.GenerateContentConfig{}
	if cfg.Temperature > 0 {
		settings.Temperature = genai.Ptr(float32(cfg.Temperature))
	}
	if cfg.MaxOutputTokens > 0 {
		settings.MaxOutputTokens = int32(cfg.MaxOutputTokens)
	}

	return &Completer{
		logger:     logger,
		models:     models,
		model:      cfg.ModelName,
		settings:   settings,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		limiter:    newLimiter(cfg.RequestsPerMinute),
	}
}

// newLimiter spreads requestsPerMinute evenly; zero or less means unlimited.
func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := min(max(requestsPerMinute/60, 1), maxBurst)
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60), burst)
}

// Complete sends prompt to the model, retrying transient failures with
// exponential backoff and jitter. The returned error wraps
// extraction.ErrRemoteTransport or extraction.ErrRemoteProtocol.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: %w", extraction.ErrRemoteProtocol, ErrEmptyPrompt)
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		c.logger.DebugContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", c.maxRetries+1)

		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: rate limiter: %w", extraction.ErrRemoteTransport, err)
		}

		text, err := c.generate(ctx, prompt)
		if err == nil {
			c.logger.DebugContext(ctx, "Gemini API call successful", "attempt", attemptNum)
			return text, nil
		}

		c.logger.WarnContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", redact.Error(err))

		if !isTransient(err) {
			return "", err
		}
		if attempt >= c.maxRetries {
			if c.maxRetries > 0 {
				c.logger.WarnContext(ctx, "Maximum retry attempts reached", "max_retries", c.maxRetries)
			}
			return "", err
		}

		delay := c.backoff(attempt)
		c.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			c.logger.WarnContext(ctx, "Gemini API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", ctx.Err())
			return "", fmt.Errorf("%w: %w", extraction.ErrRemoteTransport, ctx.Err())
		}
	}
}

// generate performs one API call and extracts the answer text.
func (c *Completer) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), c.settings)
	if err != nil {
		return "", fmt.Errorf("%w: %w", extraction.ErrRemoteTransport, err)
	}
	return responseText(resp)
}

// backoff computes delay = base * 2^attempt * (0.5 + rand(0, 0.5)).
func (c *Completer) backoff(attempt int) time.Duration {
	backoff := float64(c.retryDelay) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(backoff * jitter)
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	switch {
	case resp == nil:
		return "", fmt.Errorf("%w: nil response", extraction.ErrRemoteProtocol)
	case len(resp.Candidates) == 0 || resp.Candidates[0] == nil:
		return "", fmt.Errorf("%w: no content generated", extraction.ErrRemoteProtocol)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", extraction.ErrContentBlocked
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", extraction.ErrRemoteProtocol)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text in response", extraction.ErrRemoteProtocol)
	}
	return text, nil
}

// isTransient reports whether another attempt could succeed. Context errors,
// protocol errors and client-side API statuses other than 408 and 429 are final.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if !errors.Is(err, extraction.ErrRemoteTransport) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusRequestTimeout, apiErr.Code == http.StatusTooManyRequests:
			return true
		case apiErr.Code >= 400 && apiErr.Code < 500:
			return false
		}
	}
	return true
}
