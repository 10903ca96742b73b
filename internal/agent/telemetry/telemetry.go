package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "newsagent"

// Content sources recorded per fetched article.
const (
	ContentExtracted   = "extracted"
	ContentSnippet     = "snippet"
	ContentPlaceholder = "placeholder"
)

// Telemetry owns the Prometheus collectors of one process. A nil *Telemetry
// is valid and records nothing, so collaborators never need to check.
type Telemetry struct {
	registry *prometheus.Registry

	chatTurns      *prometheus.CounterVec
	toolCalls      *prometheus.CounterVec
	toolDuration   *prometheus.HistogramVec
	llmRequests    *prometheus.CounterVec
	llmDuration    *prometheus.HistogramVec
	llmTokens      *prometheus.CounterVec
	articleContent *prometheus.CounterVec
	cacheLookups   *prometheus.CounterVec
}

// NewTelemetry registers all collectors on a fresh registry.
func NewTelemetry() *Telemetry {
	reg := prometheus.NewRegistry()
	t := &Telemetry{
		registry: reg,
		chatTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_turns_total",
			Help:      "Conversation turns handled, by dialogue phase and outcome.",
		}, []string{"phase", "outcome"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_dispatch_total",
			Help:      "Tool dispatches requested by the model, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_dispatch_seconds",
			Help:      "Tool execution latency.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"tool"}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Language-model calls by purpose and outcome.",
		}, []string{"purpose", "outcome"}),
		llmDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_seconds",
			Help:      "Language-model call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 9),
		}, []string{"purpose"}),
		llmTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_tokens_total",
			Help:      "Tokens reported by the language-model provider.",
		}, []string{"purpose", "kind"}),
		articleContent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "article_content_total",
			Help:      "Where fetched article bodies came from: extracted, snippet or placeholder.",
		}, []string{"source"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "article_cache_lookups_total",
			Help:      "Article cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		t.chatTurns, t.toolCalls, t.toolDuration,
		t.llmRequests, t.llmDuration, t.llmTokens,
		t.articleContent, t.cacheLookups,
	)
	return t
}

// Handler exposes the registry in the Prometheus text format.
func (t *Telemetry) Handler() http.Handler {
	if t == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(t.registry, promhttp.HandlerOpts{Registry: t.registry})
}

// Registry is exposed for tests.
func (t *Telemetry) Registry() *prometheus.Registry {
	if t == nil {
		return nil
	}
	return t.registry
}

func (t *Telemetry) RecordChatTurn(phase string, err error) {
	if t == nil {
		return
	}
	t.chatTurns.WithLabelValues(phase, outcome(err)).Inc()
}

func (t *Telemetry) RecordToolDispatch(tool string, d time.Duration, err error) {
	if t == nil {
		return
	}
	t.toolCalls.WithLabelValues(tool, outcome(err)).Inc()
	t.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

func (t *Telemetry) RecordLLMRequest(purpose string, d time.Duration, promptTokens, completionTokens int, err error) {
	if t == nil {
		return
	}
	t.llmRequests.WithLabelValues(purpose, outcome(err)).Inc()
	t.llmDuration.WithLabelValues(purpose).Observe(d.Seconds())
	if promptTokens > 0 {
		t.llmTokens.WithLabelValues(purpose, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		t.llmTokens.WithLabelValues(purpose, "completion").Add(float64(completionTokens))
	}
}

func (t *Telemetry) RecordArticleContent(source string) {
	if t == nil {
		return
	}
	t.articleContent.WithLabelValues(source).Inc()
}

func (t *Telemetry) RecordCacheLookup(hit bool) {
	if t == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	t.cacheLookups.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
