package repository

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/mohammad-safakhou/newsagent/repository/redis_repository"
)

// ArticleCache defines the interface for fetched-article storage
type ArticleCache interface {
	GetArticles(ctx context.Context, topic string, count int) ([]models.Article, error)
	SaveArticles(ctx context.Context, topic string, count int, articles []models.Article) error
	Close() error
}

type RepoType string

const (
	RepoTypeRedis RepoType = "redis"
)

// NewArticleCache returns nil without error when the cache is disabled.
func NewArticleCache(ctx context.Context, t RepoType, cfg config.RedisConfig) (ArticleCache, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	switch t {
	case RepoTypeRedis:
		c, err := redis_repository.Conn(ctx, cfg.Host, cfg.Port, cfg.Password, cfg.DB, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return redis_repository.NewRedisArticleCache(c, cfg.CacheTTL), nil
	}
	return nil, fmt.Errorf("invalid repository type: %s", t)
}
