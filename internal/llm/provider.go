// Package llm abstracts the text-completion services used for semantic
// interpretation of admission criteria.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/michaelljiang/mcg-extractor/internal/model"
)

// Provider defines the interface for completion providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw response text. The
	// response is free text; callers must not assume it is valid JSON.
	Complete(ctx context.Context, prompt string, opts Options) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Options tunes a single completion request.
type Options struct {
	Temperature float32
	MaxTokens   int
}

// ErrKind classifies provider failures for the retry policy: only transient
// failures are worth retrying.
type ErrKind int

const (
	KindTransient ErrKind = iota // network errors, timeouts, 5xx, rate limits
	KindPermanent                // auth, bad config, malformed requests
)

// Error is a classified provider failure.
type Error struct {
	Kind ErrKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransient wraps err as a retryable failure.
func NewTransient(op string, err error) *Error {
	return &Error{Kind: KindTransient, Op: op, Err: err}
}

// NewPermanent wraps err as a non-retryable failure.
func NewPermanent(op string, err error) *Error {
	return &Error{Kind: KindPermanent, Op: op, Err: err}
}

// IsTransient reports whether err should be retried. Unclassified errors are
// treated as transient if they look like network failures.
func IsTransient(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind == KindTransient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "temporarily unavailable")
}

// Config holds completion provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout bounds a single request; a zero value falls back to the
	// default rather than waiting indefinitely
	Timeout time.Duration

	// Temperature and MaxTokens are the request defaults
	Temperature float32
	MaxTokens   int
}

// DefaultTimeout bounds completion calls when no timeout is configured.
const DefaultTimeout = 120 * time.Second

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		Temperature: mc.Temperature,
		MaxTokens:   mc.MaxTokens,
	}
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
