package web_search

import (
	"errors"
	"testing"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/brave"
	exasearch "github.com/mohammad-safakhou/newsagent/tools/web_search/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/serper"
)

func TestNewWebSearcher(t *testing.T) {
	s, err := NewWebSearcher(config.SearchConfig{Provider: "exa", ExaAPIKey: "k"})
	if err != nil {
		t.Fatalf("exa: %v", err)
	}
	if _, ok := s.(exasearch.Search); !ok {
		t.Fatalf("expected exa searcher, got %T", s)
	}
	if s, _ := NewWebSearcher(config.SearchConfig{Provider: "serper"}); s == nil {
		t.Fatalf("expected serper searcher")
	} else if _, ok := s.(serper.Search); !ok {
		t.Fatalf("expected serper searcher, got %T", s)
	}
	if s, _ := NewWebSearcher(config.SearchConfig{Provider: "brave"}); s == nil {
		t.Fatalf("expected brave searcher")
	} else if _, ok := s.(brave.Search); !ok {
		t.Fatalf("expected brave searcher, got %T", s)
	}
	if _, err := NewWebSearcher(config.SearchConfig{Provider: "bing"}); !errors.Is(err, ErrUnsupportedProvider) {
		t.Fatalf("expected ErrUnsupportedProvider, got %v", err)
	}
}
