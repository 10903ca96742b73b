package exa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mohammad-safakhou/newsagent/tools/exa"
)

func TestExecReturnsFirstResultText(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contents" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"results":[{"url":"https://bbc.com/a","title":"T","text":"  full article body  "}]}`))
	}))
	defer srv.Close()

	res, err := Fetch{Client: exa.NewClient("k", srv.URL, time.Second), MaxChars: 9}.Exec(context.Background(), "https://bbc.com/a")
	if err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if got["includeImages"] != false || got["includeFormatting"] != false {
		t.Fatalf("unexpected request %v", got)
	}
	if urls, _ := got["urls"].([]any); len(urls) != 1 || urls[0] != "https://bbc.com/a" {
		t.Fatalf("unexpected urls %v", got["urls"])
	}
	if res.Text != "full arti" || res.Title != "T" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExecEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()
	res, err := Fetch{Client: exa.NewClient("k", srv.URL, time.Second)}.Exec(context.Background(), "https://x.com")
	if err != nil || res.Text != "" {
		t.Fatalf("expected empty text without error, got %+v %v", res, err)
	}
}

func TestExecStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	res, err := Fetch{Client: exa.NewClient("k", srv.URL, time.Second)}.Exec(context.Background(), "https://x.com")
	if err == nil || res.Status != http.StatusBadGateway {
		t.Fatalf("expected status error, got %+v %v", res, err)
	}
}
