package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mohammad-safakhou/newsagent/models"
	"github.com/mohammad-safakhou/newsagent/utils"
)

const NoArticlesToSummarize = "No articles provided to summarize"

const summarySystemPrompt = `You are an expert news summarizer. Create comprehensive, well-structured summaries of the given news articles.

Your summary should include:
1. Key facts and main points from each article
2. Important context and background information
3. Any significant quotes or statements
4. Implications or potential impact
5. Connections between articles if they're related

Maintain objectivity and focus on providing valuable insights. Format your response clearly with proper structure.`

const summaryHeader = "📊 **Comprehensive News Summary**\n\n"

// Summarize condenses the first three articles into one prose summary.
// Failures are reported in the returned text.
func (s *Service) Summarize(ctx context.Context, articles []models.Article) string {
	if len(articles) == 0 {
		return NoArticlesToSummarize
	}
	if len(articles) > MaxSummarized {
		articles = articles[:MaxSummarized]
	}

	req := models.CompletionRequest{
		Messages: []models.Message{
			{Role: models.RoleSystem, Content: summarySystemPrompt},
			{Role: models.RoleUser, Content: "Please provide a comprehensive summary of these news articles:\n\n" + summaryInput(articles)},
		},
		MaxTokens:   s.opts.Summary.MaxTokens,
		Temperature: s.opts.Summary.Temperature,
	}

	start := time.Now()
	resp, err := s.llm.Chat(ctx, req)
	s.telemetry.RecordLLMRequest("summary", time.Since(start), resp.PromptTokens, resp.CompletionTokens, err)
	if err != nil {
		s.logger.Error("summarize failed", "articles", len(articles), "error", err)
		return fmt.Sprintf("Error summarizing news: %v", err)
	}
	return summaryHeader + resp.Message.Content
}

func summaryInput(articles []models.Article) string {
	var b strings.Builder
	for i, a := range articles {
		fmt.Fprintf(&b, "Article %d:\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", utils.FirstNonEmpty(a.Title, NoTitle))
		fmt.Fprintf(&b, "Source: %s\n", utils.FirstNonEmpty(a.Source, UnknownSource))
		fmt.Fprintf(&b, "Published: %s\n", utils.FirstNonEmpty(a.Published, UnknownDate))
		fmt.Fprintf(&b, "Content: %s\n\n", utils.FirstNonEmpty(a.Content, "No content"))
	}
	return b.String()
}
