// Package ai wraps the text-completion and image-generation providers behind
// two small interfaces. Provider SDK retries are disabled: a failed call is
// reported once as a *ProviderError.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	appcfg "github.com/cryptohunter/core/internal/config"
)

const (
	defaultOpenAIModel     = "gpt-4"
	defaultAnthropicModel  = "claude-haiku-4-5-20251001"
	defaultCompatibleModel = "gpt-4o-mini"
	defaultImageModel      = "dall-e-3"

	// Anthropic requires max_tokens on every request.
	defaultMaxTokens = 1000
)

// Completion is a single system+user chat turn.
type Completion struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// ImageRequest asks for Count images of the given size and quality.
type ImageRequest struct {
	Prompt  string
	Size    string
	Quality string
	Count   int
}

// Completer returns the free-text content of a chat completion.
type Completer interface {
	Complete(ctx context.Context, req Completion) (string, error)
}

// ImageGenerator returns the location of the first generated image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)
}

// ProviderError is returned when a provider call fails or yields no content.
// Its message is the provider's message, unmodified.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return e.Provider + " request failed"
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

var errEmptyResponse = errors.New("empty response from AI")

// NewCompleter builds the text provider selected by cfg.Provider.
func NewCompleter(cfg appcfg.AIConfig) (Completer, error) {
	key := cfg.TextProviderKey()
	if strings.TrimSpace(key.APIKey) == "" {
		return nil, fmt.Errorf("AI provider %s api key is empty", cfg.Provider)
	}
	httpClient := newHTTPClient(cfg.TimeoutSeconds)

	switch cfg.Provider {
	case appcfg.ProviderAnthropic:
		return newAnthropicClient(key, modelOr(cfg.Model, defaultAnthropicModel), httpClient), nil
	case appcfg.ProviderOpenAICompatible:
		return newCompatibleClient(key, modelOr(cfg.Model, defaultCompatibleModel), httpClient), nil
	case appcfg.ProviderOpenAI, "":
		return newOpenAIClient(key, modelOr(cfg.Model, defaultOpenAIModel), modelOr(cfg.ImageModel, defaultImageModel), httpClient), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
}

// NewImageGenerator builds the OpenAI image client; it needs the OpenAI key
// even when text completion goes elsewhere.
func NewImageGenerator(cfg appcfg.AIConfig) (ImageGenerator, error) {
	if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
		return nil, errors.New("OpenAI api key is empty, image generation unavailable")
	}
	return newOpenAIClient(cfg.OpenAI, modelOr(cfg.Model, defaultOpenAIModel), modelOr(cfg.ImageModel, defaultImageModel), newHTTPClient(cfg.TimeoutSeconds)), nil
}

// newHTTPClient returns a client without a deadline unless one is configured.
func newHTTPClient(timeoutSeconds int) *http.Client {
	if timeoutSeconds <= 0 {
		return &http.Client{}
	}
	return &http.Client{Timeout: time.Duration(timeoutSeconds) * time.Second}
}

func modelOr(model, fallback string) string {
	if m := strings.TrimSpace(model); m != "" {
		return m
	}
	return fallback
}

// normalizeOpenAIBaseURL makes sure the SDK base URL ends in /v1.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

// normalizeCompatibleEndpoint strips a trailing /v1 so the caller can append
// /v1/chat/completions.
func normalizeCompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimSuffix(strings.TrimRight(base, "/"), "/v1")
	}
	parsed.Path = strings.TrimSuffix(strings.TrimRight(parsed.Path, "/"), "/v1")
	return strings.TrimRight(parsed.String(), "/")
}
