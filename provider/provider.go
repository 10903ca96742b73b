package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/models"
	openai_provider "github.com/mohammad-safakhou/newsagent/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
	Gemini    Client = "gemini"
)

// ErrUnsupportedProvider is returned for providers without an implementation.
var ErrUnsupportedProvider = errors.New("unsupported LLM provider")

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	Chat(ctx context.Context, req models.CompletionRequest) (models.CompletionResponse, error)
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch Client(cfg.Provider) {
	case OpenAI, "":
		return openai_provider.NewOpenAIClient(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case Anthropic, Gemini:
		return nil, fmt.Errorf("%w: %s client not implemented yet", ErrUnsupportedProvider, cfg.Provider)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}
}
