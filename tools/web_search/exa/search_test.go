package exa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mohammad-safakhou/newsagent/tools/exa"
)

func TestDiscoverSendsKeywordQuery(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"results":[
			{"title":"EV sales climb","url":"https://reuters.com/ev","text":"snippet","publishedDate":"2024-05-01","source":"reuters.com"},
			{"title":"Battery news","url":"https://bbc.com/b","text":"","publishedDate":"","source":""}
		]}`))
	}))
	defer srv.Close()

	s := Search{Client: exa.NewClient("k", srv.URL, time.Second)}
	res, err := s.Discover(context.Background(), "electric cars", 3, []string{"reuters.com", "bbc.com"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if got.Query != "electric cars" || got.NumResults != 3 || !got.UseAutoprompt || got.Type != "keyword" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if len(got.IncludeDomains) != 2 {
		t.Fatalf("expected domain allow-list, got %v", got.IncludeDomains)
	}
	if len(res) != 2 || res[0].Snippet != "snippet" || res[0].Source != "reuters.com" {
		t.Fatalf("unexpected results: %+v", res)
	}
}

func TestDiscoverErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		},
		"empty": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"results":[]}`))
		},
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(h)
			defer srv.Close()
			_, err := Search{Client: exa.NewClient("k", srv.URL, time.Second)}.Discover(context.Background(), "x", 5, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if name == "empty" && !strings.Contains(err.Error(), "no articles found for topic: x") {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
