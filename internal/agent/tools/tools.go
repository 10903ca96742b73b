// Package tools advertises the news tools to the language model and
// dispatches the tool calls it makes.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mohammad-safakhou/newsagent/models"
)

var (
	// ErrUnknownTool is returned when the model names a tool outside the registry.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArguments is returned when tool arguments are malformed JSON or
	// do not match the tool's parameter schema.
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

type Name string

const (
	GetNewsWithSummary Name = "get_news_with_summary"
	FetchNews          Name = "fetch_news"
	SummarizeNews      Name = "summarize_news"
)

// Names lists every tool in advertised order.
var Names = []Name{GetNewsWithSummary, FetchNews, SummarizeNews}

func ParseName(s string) (Name, error) {
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTool, s)
}

// NewsService is the work behind the three tools.
type NewsService interface {
	NewsWithSummary(ctx context.Context, topic string, count int) string
	FetchNews(ctx context.Context, topic string, count int) string
	Summarize(ctx context.Context, articles []models.Article) string
}

// NewsInput is the argument shape of get_news_with_summary and fetch_news.
type NewsInput struct {
	Topic string `json:"topic"`
	Count *int   `json:"count,omitempty"`
}

func (in NewsInput) CountOr(def int) int {
	if in.Count == nil {
		return def
	}
	return *in.Count
}

// SummarizeInput is the argument shape of summarize_news.
type SummarizeInput struct {
	Articles []models.Article `json:"articles"`
}

func descriptor(name Name) models.ToolDescriptor {
	switch name {
	case GetNewsWithSummary:
		return models.ToolDescriptor{
			Name:        string(name),
			Description: "BEST TOOL: Fetch news articles on a topic AND provide a comprehensive summary in one operation. Use this for all news requests.",
			Parameters:  newsParameters("Number of articles to fetch and summarize (default: 3, max: 3)"),
		}
	case FetchNews:
		return models.ToolDescriptor{
			Name:        string(name),
			Description: "Fetch the latest news articles on a given topic with full article content extraction. Prefer get_news_with_summary unless only the raw articles are wanted.",
			Parameters:  newsParameters("Number of articles to fetch (default: 5, max: 5)"),
		}
	case SummarizeNews:
		return models.ToolDescriptor{
			Name:        string(name),
			Description: "Create comprehensive summaries of news articles using their full content",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"articles": map[string]any{
						"type":        "array",
						"description": "Array of news articles to summarize (should include full content)",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"title":     map[string]any{"type": "string"},
								"content":   map[string]any{"type": "string"},
								"url":       map[string]any{"type": "string"},
								"source":    map[string]any{"type": "string"},
								"published": map[string]any{"type": "string"},
							},
						},
					},
				},
				"required": []string{"articles"},
			},
		}
	}
	return models.ToolDescriptor{}
}

func newsParameters(countDesc string) map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The topic to search for news articles",
			},
			"count": map[string]any{
				"type":        "integer",
				"description": countDesc,
			},
		},
		"required": []string{"topic"},
	}
}
