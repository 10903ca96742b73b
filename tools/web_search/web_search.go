package web_search

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/tools/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/brave"
	exasearch "github.com/mohammad-safakhou/newsagent/tools/web_search/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/models"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/serper"
)

// WebSearcher discovers up to k results for q, restricted to sites when given.
// A provider error, a non-200 status or zero results are all reported as errors.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int, sites []string) ([]models.Result, error)
}

type Provider string

const (
	ExaProvider    Provider = "exa"
	SerperProvider Provider = "serper"
	BraveProvider  Provider = "brave"
)

type Error struct{ msg string }

func (e *Error) Error() string { return e.msg }

var ErrUnsupportedProvider = &Error{"unsupported provider"}

func NewWebSearcher(cfg config.SearchConfig) (WebSearcher, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	switch Provider(cfg.Provider) {
	case ExaProvider:
		return exasearch.Search{Client: exa.NewClient(cfg.ExaAPIKey, cfg.ExaBaseURL, timeout)}, nil
	case SerperProvider:
		return serper.Search{ApiKey: cfg.SerperAPIKey, Timeout: timeout}, nil
	case BraveProvider:
		return brave.Search{ApiKey: cfg.BraveAPIKey, Timeout: timeout}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
