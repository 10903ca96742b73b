package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/internal/agent/dialogue"
	"github.com/mohammad-safakhou/newsagent/internal/agent/telemetry"
	"github.com/mohammad-safakhou/newsagent/internal/logging"
	"github.com/mohammad-safakhou/newsagent/models"
)

type fakeChatter struct {
	got models.ChatRequest
	res models.ChatResult
	err error
}

func (f *fakeChatter) Chat(_ context.Context, req models.ChatRequest) (models.ChatResult, error) {
	f.got = req
	return f.res, f.err
}

func newTestServer(chat Chatter, tel *telemetry.Telemetry) *echo.Echo {
	return New(config.ServerConfig{AllowOrigins: []string{"http://localhost:3000"}}, "/metrics", chat, tel, logging.Discard())
}

func TestHealth(t *testing.T) {
	e := newTestServer(&fakeChatter{}, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "healthy" || body["message"] != "News Agent API is running" {
		t.Fatalf("unexpected body %v", body)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Fatalf("expected a request id header")
	}
}

func TestChatHandlerSuccess(t *testing.T) {
	chat := &fakeChatter{res: models.ChatResult{
		Response:             "hi",
		PreferencesCompleted: map[string]bool{"tone_of_voice": true},
		UserPreferences:      models.Preferences{"tone_of_voice": "casual"},
	}}
	h := &ChatHandler{Chat: chat}
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"casual please","conversation_history":[{"role":"assistant","content":"Hello!"}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.chat(e.NewContext(req, rec)); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if chat.got.Message != "casual please" || len(chat.got.ConversationHistory) != 1 || chat.got.UserPreferences == nil {
		t.Fatalf("unexpected request %+v", chat.got)
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["response"] != "hi" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["tool_used"]; ok {
		t.Fatalf("tool_used must be omitted when no tool ran: %v", body)
	}
}

func TestChatBadRequests(t *testing.T) {
	e := newTestServer(&fakeChatter{}, nil)
	for _, body := range []string{
		`{"message":`,
		`{"message":""}`,
		`{"message":"hi","conversation_history":[{"role":"robot","content":"x"}]}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestChatInternalError(t *testing.T) {
	chat := &fakeChatter{err: fmt.Errorf("%w: upstream 503", dialogue.ErrChatFailed)}
	e := newTestServer(chat, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"news","conversation_history":[{"role":"user","content":"hi"}]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if !strings.HasPrefix(body["error"], "Error processing chat request: chat failed") {
		t.Fatalf("unexpected error body %v", body)
	}
}

func TestMetricsRoute(t *testing.T) {
	tel := telemetry.NewTelemetry()
	tel.RecordChatTurn(dialogue.PhaseBootstrap, nil)
	e := newTestServer(&fakeChatter{}, tel)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "newsagent_chat_turns_total") {
		t.Fatalf("expected metrics, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	newTestServer(&fakeChatter{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("metrics must be disabled without telemetry, got %d", rec.Code)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	e := newTestServer(&fakeChatter{}, nil)
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:3000")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "http://localhost:3000" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}
