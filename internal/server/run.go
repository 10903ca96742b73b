package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/internal/agent/dialogue"
	"github.com/mohammad-safakhou/newsagent/internal/agent/telemetry"
	"github.com/mohammad-safakhou/newsagent/internal/agent/tools"
	"github.com/mohammad-safakhou/newsagent/news"
	"github.com/mohammad-safakhou/newsagent/provider"
	"github.com/mohammad-safakhou/newsagent/repository"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch"
	"github.com/mohammad-safakhou/newsagent/tools/web_search"
)

// Agent bundles the wired dialogue controller with the resources it owns.
type Agent struct {
	Controller *dialogue.Controller
	Telemetry  *telemetry.Telemetry
	cache      repository.ArticleCache
}

func (a *Agent) Close() error {
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

// NewAgent wires providers, the news service, the tool registry and the
// dialogue controller from cfg (top-level DI).
func NewAgent(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Agent, error) {
	var tel *telemetry.Telemetry
	if cfg.Telemetry.Enabled {
		tel = telemetry.NewTelemetry()
	}

	llm, err := provider.NewProvider(cfg.LLM)
	if err != nil {
		return nil, err
	}
	searcher, err := web_search.NewWebSearcher(cfg.Sources.Search)
	if err != nil {
		return nil, fmt.Errorf("search provider %q: %w", cfg.Sources.Search.Provider, err)
	}
	fetcher, err := web_fetch.NewWebFetcher(cfg.Sources.Extraction, cfg.Sources.Search)
	if err != nil {
		return nil, fmt.Errorf("extraction provider %q: %w", cfg.Sources.Extraction.Provider, err)
	}

	opts := []news.Option{news.WithLogger(logger), news.WithTelemetry(tel)}
	cache, err := repository.NewArticleCache(ctx, repository.RepoTypeRedis, cfg.Storage.Redis)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		opts = append(opts, news.WithCache(cache))
		logger.Info("article cache enabled", "host", cfg.Storage.Redis.Host, "ttl", cfg.Storage.Redis.CacheTTL)
	}
	svc := news.NewService(searcher, fetcher, llm, news.OptionsFromConfig(cfg), opts...)

	reg, err := tools.NewRegistry(svc, tools.WithLogger(logger), tools.WithTelemetry(tel))
	if err != nil {
		if cache != nil {
			_ = cache.Close()
		}
		return nil, err
	}
	ctrl := dialogue.NewController(llm, reg, cfg.LLM.Chat, dialogue.WithLogger(logger), dialogue.WithTelemetry(tel))
	return &Agent{Controller: ctrl, Telemetry: tel, cache: cache}, nil
}

// Run serves the HTTP API until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	agent, err := NewAgent(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer agent.Close()

	e := New(cfg.Server, cfg.Telemetry.MetricsPath, agent.Controller, agent.Telemetry, logger)
	return Serve(ctx, e, cfg.Server.Address, logger)
}
