package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilTelemetryIsNoop(t *testing.T) {
	var tel *Telemetry
	tel.RecordChatTurn("steady", nil)
	tel.RecordToolDispatch("fetch_news", time.Second, nil)
	tel.RecordLLMRequest("chat", time.Second, 10, 5, nil)
	tel.RecordArticleContent(ContentSnippet)
	tel.RecordCacheLookup(true)
	if tel.Registry() != nil {
		t.Fatalf("nil telemetry must not expose a registry")
	}
}

func TestCountersByLabel(t *testing.T) {
	tel := NewTelemetry()
	tel.RecordToolDispatch("get_news_with_summary", 2*time.Second, nil)
	tel.RecordToolDispatch("nope", 0, errors.New("unknown tool"))
	tel.RecordArticleContent(ContentExtracted)
	tel.RecordArticleContent(ContentExtracted)
	tel.RecordCacheLookup(false)

	if got := testutil.ToFloat64(tel.toolCalls.WithLabelValues("get_news_with_summary", "ok")); got != 1 {
		t.Fatalf("expected one ok dispatch, got %v", got)
	}
	if got := testutil.ToFloat64(tel.toolCalls.WithLabelValues("nope", "error")); got != 1 {
		t.Fatalf("expected one failed dispatch, got %v", got)
	}
	if got := testutil.ToFloat64(tel.articleContent.WithLabelValues(ContentExtracted)); got != 2 {
		t.Fatalf("expected two extracted articles, got %v", got)
	}
	if got := testutil.ToFloat64(tel.cacheLookups.WithLabelValues("miss")); got != 1 {
		t.Fatalf("expected one cache miss, got %v", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	tel := NewTelemetry()
	tel.RecordChatTurn("bootstrap", nil)
	tel.RecordLLMRequest("summary", 300*time.Millisecond, 120, 80, nil)

	rec := httptest.NewRecorder()
	tel.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`newsagent_chat_turns_total{outcome="ok",phase="bootstrap"} 1`,
		`newsagent_llm_tokens_total{kind="prompt",purpose="summary"} 120`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}
