package news

import (
	"context"
	"errors"
	"strings"

	"github.com/mohammad-safakhou/newsagent/internal/agent/telemetry"
	"github.com/mohammad-safakhou/newsagent/models"
	searchmodels "github.com/mohammad-safakhou/newsagent/tools/web_search/models"
	"github.com/mohammad-safakhou/newsagent/utils"
	"golang.org/x/sync/errgroup"
)

// Placeholders used when a provider leaves a field empty.
const (
	NoTitle                 = "No title"
	NoURL                   = "No URL"
	UnknownSource           = "Unknown source"
	UnknownDate             = "Unknown date"
	ContentExtractionFailed = "Content extraction failed"
)

// FetchRaw searches for topic and resolves full content for up to count results.
// It never fails: search problems yield an empty slice, extraction problems
// degrade that one article to its snippet or the placeholder.
func (s *Service) FetchRaw(ctx context.Context, topic string, count int) []models.Article {
	count = utils.ClampInt(count, 1, MaxFetchCount)
	log := s.logger.With("topic", topic, "count", count)

	if s.cache != nil {
		cached, err := s.cache.GetArticles(ctx, topic, count)
		switch {
		case err == nil && len(cached) > 0:
			s.telemetry.RecordCacheLookup(true)
			log.Debug("article cache hit", "articles", len(cached))
			return cached
		case err != nil && !errors.Is(err, models.ErrCacheMiss):
			log.Warn("article cache read failed", "error", err)
		}
		s.telemetry.RecordCacheLookup(false)
	}

	results, err := s.searcher.Discover(ctx, topic, count, s.opts.IncludeDomains)
	if err != nil {
		log.Error("search failed", "error", err)
		return []models.Article{}
	}
	if len(results) > count {
		results = results[:count]
	}

	articles := make([]models.Article, len(results))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, r := range results {
		g.Go(func() error {
			articles[i] = s.resolve(gctx, i, r)
			return nil
		})
	}
	_ = g.Wait()

	if s.cache != nil {
		if err := s.cache.SaveArticles(ctx, topic, count, articles); err != nil {
			log.Warn("article cache write failed", "error", err)
		}
	}
	log.Info("fetched articles", "articles", len(articles))
	return articles
}

// resolve builds one article, preferring extracted text over the search snippet.
func (s *Service) resolve(ctx context.Context, i int, r searchmodels.Result) models.Article {
	content := ""
	source := telemetry.ContentPlaceholder
	if strings.TrimSpace(r.URL) != "" {
		res, err := s.fetcher.Exec(ctx, r.URL)
		if err != nil {
			s.logger.Warn("content extraction failed", "index", i, "url", r.URL, "error", err)
		} else if utils.RuneLen(res.Text) >= s.opts.MinContentChars {
			content = res.Text
			source = telemetry.ContentExtracted
		}
	}
	if content == "" && r.Snippet != "" {
		content = r.Snippet
		source = telemetry.ContentSnippet
	}
	if content == "" {
		content = ContentExtractionFailed
	}
	s.telemetry.RecordArticleContent(source)

	return models.Article{
		Title:     utils.FirstNonEmpty(r.Title, NoTitle),
		Content:   content,
		URL:       utils.FirstNonEmpty(r.URL, NoURL),
		Source:    utils.FirstNonEmpty(r.Source, UnknownSource),
		Published: utils.FirstNonEmpty(r.PublishedDate, UnknownDate),
	}
}
