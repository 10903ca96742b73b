// Package news fetches articles for a topic, summarizes them with the language
// model and renders the text results handed back to the conversation.
package news

import (
	"context"
	"log/slog"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/internal/agent/telemetry"
	"github.com/mohammad-safakhou/newsagent/internal/logging"
	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/mohammad-safakhou/newsagent/provider"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch"
	"github.com/mohammad-safakhou/newsagent/tools/web_search"
)

const (
	MaxFetchCount     = 5
	MaxCompositeCount = 3
	MaxSummarized     = 3

	DefaultMinContentChars = 100
	DefaultConcurrency     = 3
)

// ArticleCache is the optional read-through cache in front of FetchRaw.
type ArticleCache interface {
	GetArticles(ctx context.Context, topic string, count int) ([]models.Article, error)
	SaveArticles(ctx context.Context, topic string, count int, articles []models.Article) error
}

// Options tunes the fetch and summarize pipeline.
type Options struct {
	IncludeDomains  []string
	MinContentChars int
	Concurrency     int
	Summary         config.Sampling
}

// OptionsFromConfig maps the sources and LLM sections onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		IncludeDomains:  cfg.Sources.Search.IncludeDomains,
		MinContentChars: cfg.Sources.Extraction.MinContentChars,
		Concurrency:     cfg.Sources.Extraction.Concurrency,
		Summary:         cfg.LLM.Summary,
	}
}

// Service implements the fetch_news, summarize_news and get_news_with_summary tools.
type Service struct {
	searcher  web_search.WebSearcher
	fetcher   web_fetch.WebFetcher
	llm       provider.Provider
	cache     ArticleCache
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
	opts      Options
}

type Option func(*Service)

func WithCache(c ArticleCache) Option { return func(s *Service) { s.cache = c } }

func WithTelemetry(t *telemetry.Telemetry) Option { return func(s *Service) { s.telemetry = t } }

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

func NewService(searcher web_search.WebSearcher, fetcher web_fetch.WebFetcher, llm provider.Provider, opts Options, extra ...Option) *Service {
	if opts.IncludeDomains == nil {
		opts.IncludeDomains = config.DefaultIncludeDomains
	}
	if opts.MinContentChars <= 0 {
		opts.MinContentChars = DefaultMinContentChars
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Summary.MaxTokens <= 0 {
		opts.Summary = config.Sampling{MaxTokens: 800, Temperature: 0.3}
	}
	s := &Service{searcher: searcher, fetcher: fetcher, llm: llm, opts: opts}
	for _, o := range extra {
		o(s)
	}
	s.logger = logging.OrDefault(s.logger).With("component", "news")
	return s
}
