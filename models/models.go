package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a message carries a role outside the closed set.
var ErrUnknownRole = errors.New("unknown message role")

// ErrCacheMiss is returned by article caches when nothing is stored for a key.
var ErrCacheMiss = errors.New("article cache miss")

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Valid reports whether r is one of the four conversation roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return true
	}
	return false
}

// Message is one entry of an ordered conversation.
type Message struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
}

// ToolCall is a tool invocation requested by the language model.
// Arguments holds the raw JSON text exactly as the model produced it.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolDescriptor is what gets advertised to the language model.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// CompletionRequest is one call to the language model.
// ToolChoice is only sent when Tools is non-empty.
type CompletionRequest struct {
	Messages    []Message
	Tools       []ToolDescriptor
	ToolChoice  string
	MaxTokens   int
	Temperature float64
}

// CompletionResponse carries the single reply message of a completion.
type CompletionResponse struct {
	Message          Message
	Model            string
	PromptTokens     int
	CompletionTokens int
}

// Preferences is the caller-owned preference snapshot. Keys outside the
// tracked slots pass through untouched.
type Preferences map[string]any

// Clone returns a shallow copy so callers never observe mutation of their input.
func (p Preferences) Clone() Preferences {
	out := make(Preferences, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// ChatRequest is the input of a single conversation turn.
type ChatRequest struct {
	Message             string      `json:"message"`
	ConversationHistory []Message   `json:"conversation_history"`
	UserPreferences     Preferences `json:"user_preferences"`
}

// Validate checks the request shape before it reaches the controller.
func (r ChatRequest) Validate() error {
	if r.Message == "" {
		return errors.New("message is required")
	}
	for i, m := range r.ConversationHistory {
		if !m.Role.Valid() {
			return fmt.Errorf("conversation_history[%d]: %w: %q", i, ErrUnknownRole, m.Role)
		}
	}
	return nil
}

// ChatResult is the output of a single conversation turn.
type ChatResult struct {
	Response             string          `json:"response"`
	ToolUsed             string          `json:"tool_used,omitempty"`
	ToolResult           string          `json:"tool_result,omitempty"`
	PreferencesCompleted map[string]bool `json:"preferences_completed"`
	UserPreferences      Preferences     `json:"user_preferences"`
}

// Article is a fetched news article. Every field is always populated,
// either with provider data or with a placeholder.
type Article struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	URL       string `json:"url"`
	Source    string `json:"source"`
	Published string `json:"published"`
}
