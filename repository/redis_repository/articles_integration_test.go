package redis_repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/mohammad-safakhou/newsagent/repository/redis_repository"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestArticleCacheRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	redisC, err := tcRedis.RunContainer(ctx, testcontainers.WithWaitStrategy(wait.ForListeningPort("6379/tcp")))
	if err != nil {
		t.Fatalf("redis container: %v", err)
	}
	defer func() { _ = redisC.Terminate(ctx) }()

	host, err := redisC.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := redisC.MappedPort(ctx, "6379")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}

	client, err := redis_repository.Conn(ctx, host, port.Port(), "", 0, 5*time.Second)
	if err != nil {
		t.Fatalf("conn: %v", err)
	}
	cache := redis_repository.NewRedisArticleCache(client, time.Minute)
	defer func() { _ = cache.Close() }()

	if _, err := cache.GetArticles(ctx, "ai", 3); !errors.Is(err, models.ErrCacheMiss) {
		t.Fatalf("expected cache miss, got %v", err)
	}

	want := []models.Article{
		{Title: "A", Content: "body", URL: "https://bbc.com/a", Source: "bbc.com", Published: "2024-01-01"},
		{Title: "B", Content: "Content extraction failed", URL: "No URL", Source: "Unknown source", Published: "Unknown date"},
	}
	if err := cache.SaveArticles(ctx, "AI", 3, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := cache.GetArticles(ctx, "ai", 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected articles: %+v", got)
	}
	ttl, err := client.TTL(ctx, "articles:ai:3").Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("expected a ttl on the key, got %v %v", ttl, err)
	}
}
