package redis_repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/redis/go-redis/v9"
)

const articlesKeyPrefix = "articles:"

// redisArticleCache stores fetched article sets as JSON with a TTL.
type redisArticleCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisArticleCache(client *redis.Client, ttl time.Duration) *redisArticleCache {
	return &redisArticleCache{client: client, ttl: ttl}
}

func articlesKey(topic string, count int) string {
	return fmt.Sprintf("%s%s:%d", articlesKeyPrefix, strings.ToLower(strings.TrimSpace(topic)), count)
}

func (r *redisArticleCache) GetArticles(ctx context.Context, topic string, count int) ([]models.Article, error) {
	val, err := r.client.Get(ctx, articlesKey(topic, count)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrCacheMiss
		}
		return nil, err
	}

	var articles []models.Article
	if err := json.Unmarshal([]byte(val), &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *redisArticleCache) SaveArticles(ctx context.Context, topic string, count int, articles []models.Article) error {
	data, err := json.Marshal(articles)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, articlesKey(topic, count), data, r.ttl).Err()
}

func (r *redisArticleCache) Close() error { return r.client.Close() }
