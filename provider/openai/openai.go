package openai_provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mohammad-safakhou/newsagent/models"
	openai "github.com/sashabaranov/go-openai"
)

// client implements provider.Provider on top of the OpenAI chat completions API
type client struct {
	api   *openai.Client
	model string
}

// NewOpenAIClient creates a new OpenAI client. An empty baseURL targets api.openai.com.
func NewOpenAIClient(apiKey, baseURL, model string, timeout time.Duration) *client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &client{api: openai.NewClientWithConfig(cfg), model: model}
}

// Chat sends one completion request and returns the first choice.
func (c *client) Chat(ctx context.Context, req models.CompletionRequest) (models.CompletionResponse, error) {
	creq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}
	if len(req.Tools) > 0 {
		creq.Tools = toOpenAITools(req.Tools)
		if req.ToolChoice != "" {
			creq.ToolChoice = req.ToolChoice
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, creq)
	if err != nil {
		return models.CompletionResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.CompletionResponse{}, fmt.Errorf("no choices in response")
	}

	return models.CompletionResponse{
		Message:          fromOpenAIMessage(resp.Choices[0].Message),
		Model:            resp.Model,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func toOpenAIMessages(in []models.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(in))
	for _, m := range in {
		msg := openai.ChatCompletionMessage{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		out = append(out, msg)
	}
	return out
}

func toOpenAITools(in []models.ToolDescriptor) []openai.Tool {
	out := make([]openai.Tool, 0, len(in))
	for _, d := range in {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        d.Name,
				Description: d.Description,
				Parameters:  d.Parameters,
			},
		})
	}
	return out
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) models.Message {
	out := models.Message{
		Role:       models.Role(m.Role),
		Content:    m.Content,
		ToolCallID: m.ToolCallID,
	}
	for _, tc := range m.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, models.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out
}
