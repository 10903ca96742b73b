package redis_repository

import "testing"

func TestArticlesKeyNormalizesTopic(t *testing.T) {
	if got := articlesKey("  Electric Cars ", 3); got != "articles:electric cars:3" {
		t.Fatalf("unexpected key %q", got)
	}
	if articlesKey("ai", 3) == articlesKey("ai", 5) {
		t.Fatalf("count must be part of the key")
	}
}
