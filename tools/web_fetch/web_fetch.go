package web_fetch

import (
	"context"
	"time"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/tools/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch/chromedp"
	exafetch "github.com/mohammad-safakhou/newsagent/tools/web_fetch/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch/models"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch/readability"
)

const (
	DefaultTimeout  = 15 * time.Second
	MaxCharsDefault = 20000
)

// WebFetcher resolves the full readable text of a single URL.
type WebFetcher interface {
	Exec(ctx context.Context, url string) (models.Result, error)
}

type FetcherType string

const (
	ExaFetcherType         FetcherType = "exa"
	ReadabilityFetcherType FetcherType = "readability"
	ChromedpFetcherType    FetcherType = "chromedp"
)

type Error struct{ msg string }

func (e *Error) Error() string { return e.msg }

var ErrUnsupportedFetcher = &Error{"unsupported fetcher type"}

// NewWebFetcher builds the extractor named by cfg.Provider. The Exa fetcher
// shares the search credentials.
func NewWebFetcher(cfg config.ExtractionConfig, search config.SearchConfig) (WebFetcher, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	maxChars := cfg.MaxChars
	if maxChars <= 0 {
		maxChars = MaxCharsDefault
	}

	switch FetcherType(cfg.Provider) {
	case ExaFetcherType, "":
		return exafetch.Fetch{Client: exa.NewClient(search.ExaAPIKey, search.ExaBaseURL, timeout), MaxChars: maxChars}, nil
	case ReadabilityFetcherType:
		return readability.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	case ChromedpFetcherType:
		return chromedp.Fetch{Timeout: timeout, MaxChars: maxChars}, nil
	default:
		return nil, ErrUnsupportedFetcher
	}
}
