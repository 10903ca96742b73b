// Package dialogue runs one conversation turn: preference elicitation on the
// first turn, then model calls with at most one tool round trip.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mohammad-safakhou/newsagent/config"
	"github.com/mohammad-safakhou/newsagent/internal/agent/preferences"
	"github.com/mohammad-safakhou/newsagent/internal/agent/telemetry"
	"github.com/mohammad-safakhou/newsagent/internal/logging"
	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/mohammad-safakhou/newsagent/provider"
)

// ErrChatFailed wraps every language-model failure during a steady-state turn.
var ErrChatFailed = errors.New("chat failed")

const (
	PhaseBootstrap = "bootstrap"
	PhaseSteady    = "steady"
)

// Dispatcher is the tool side of a turn.
type Dispatcher interface {
	Descriptors() []models.ToolDescriptor
	Dispatch(ctx context.Context, call models.ToolCall) (string, error)
}

type Controller struct {
	llm       provider.Provider
	tools     Dispatcher
	tracker   *preferences.Tracker
	sampling  config.Sampling
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
}

type Option func(*Controller)

func WithTelemetry(t *telemetry.Telemetry) Option { return func(c *Controller) { c.telemetry = t } }

func WithLogger(l *slog.Logger) Option { return func(c *Controller) { c.logger = l } }

func WithTracker(t *preferences.Tracker) Option { return func(c *Controller) { c.tracker = t } }

func NewController(llm provider.Provider, tools Dispatcher, sampling config.Sampling, opts ...Option) *Controller {
	if sampling.MaxTokens <= 0 {
		sampling = config.Sampling{MaxTokens: 1000, Temperature: 0.7}
	}
	c := &Controller{llm: llm, tools: tools, sampling: sampling}
	for _, o := range opts {
		o(c)
	}
	if c.tracker == nil {
		c.tracker = preferences.NewTracker()
	}
	c.logger = logging.OrDefault(c.logger).With("component", "dialogue")
	return c
}

// Chat answers one turn. The controller keeps no state between calls: the
// caller's history decides the phase and the returned preferences are meant
// to be sent back on the next turn.
func (c *Controller) Chat(ctx context.Context, req models.ChatRequest) (models.ChatResult, error) {
	if len(req.ConversationHistory) == 0 {
		c.telemetry.RecordChatTurn(PhaseBootstrap, nil)
		prefs := req.UserPreferences.Clone()
		return models.ChatResult{
			Response:             ElicitationText,
			PreferencesCompleted: preferences.Completion(prefs),
			UserPreferences:      prefs,
		}, nil
	}

	res, err := c.steady(ctx, req)
	c.telemetry.RecordChatTurn(PhaseSteady, err)
	return res, err
}

func (c *Controller) steady(ctx context.Context, req models.ChatRequest) (models.ChatResult, error) {
	messages := make([]models.Message, 0, len(req.ConversationHistory)+4)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: systemPrompt})
	messages = append(messages, req.ConversationHistory...)
	messages = append(messages, models.Message{Role: models.RoleUser, Content: req.Message})

	first, err := c.complete(ctx, "chat", messages, c.tools.Descriptors())
	if err != nil {
		return models.ChatResult{}, err
	}

	reply := first.Message
	var toolUsed, toolResult string
	if len(reply.ToolCalls) > 0 {
		if n := len(reply.ToolCalls); n > 1 {
			c.logger.Warn("ignoring extra tool calls", "requested", n)
		}
		call := reply.ToolCalls[0]
		toolUsed = call.Name
		toolResult, err = c.tools.Dispatch(ctx, call)
		if err != nil {
			toolResult = fmt.Sprintf("Error: %v", err)
		}

		// only the executed call is echoed, so every tool_call_id has a reply
		assistant := models.Message{Role: models.RoleAssistant, Content: reply.Content, ToolCalls: []models.ToolCall{call}}
		messages = append(messages,
			assistant,
			models.Message{Role: models.RoleTool, Content: toolResult, ToolCallID: call.ID},
		)
		final, err := c.complete(ctx, "chat_followup", messages, nil)
		if err != nil {
			return models.ChatResult{}, err
		}
		reply = final.Message
	}

	prefs := c.tracker.Update(req.UserPreferences, req.Message)
	return models.ChatResult{
		Response:             reply.Content,
		ToolUsed:             toolUsed,
		ToolResult:           toolResult,
		PreferencesCompleted: preferences.Completion(prefs),
		UserPreferences:      prefs,
	}, nil
}

func (c *Controller) complete(ctx context.Context, purpose string, messages []models.Message, tools []models.ToolDescriptor) (models.CompletionResponse, error) {
	req := models.CompletionRequest{
		Messages:    messages,
		Tools:       tools,
		MaxTokens:   c.sampling.MaxTokens,
		Temperature: c.sampling.Temperature,
	}
	if len(tools) > 0 {
		req.ToolChoice = "auto"
	}
	start := time.Now()
	resp, err := c.llm.Chat(ctx, req)
	c.telemetry.RecordLLMRequest(purpose, time.Since(start), resp.PromptTokens, resp.CompletionTokens, err)
	if err != nil {
		c.logger.Error("model call failed", "purpose", purpose, "messages", len(messages), "error", err)
		return models.CompletionResponse{}, fmt.Errorf("%w: %w", ErrChatFailed, err)
	}
	return resp, nil
}
