package news

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/newsagent/utils"
)

const previewChars = 300

// NewsWithSummary fetches up to three articles and appends their summary to a listing.
func (s *Service) NewsWithSummary(ctx context.Context, topic string, count int) string {
	articles := s.FetchRaw(ctx, topic, utils.ClampInt(count, 1, MaxCompositeCount))
	if len(articles) == 0 {
		return fmt.Sprintf("Error fetching news for topic: %s", topic)
	}
	summary := s.Summarize(ctx, articles)

	var b strings.Builder
	fmt.Fprintf(&b, "📰 **News Articles on '%s'**\n\n", topic)
	fmt.Fprintf(&b, "Found %d articles:\n\n", len(articles))
	for i, a := range articles {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, a.Title)
		fmt.Fprintf(&b, "   Source: %s\n", a.Source)
		fmt.Fprintf(&b, "   Published: %s\n", a.Published)
		fmt.Fprintf(&b, "   URL: %s\n\n", a.URL)
	}
	b.WriteString("\n" + strings.Repeat("=", 50) + "\n\n")
	b.WriteString(summary)
	return b.String()
}

// FetchNews renders up to five articles with a short content preview each.
func (s *Service) FetchNews(ctx context.Context, topic string, count int) string {
	articles := s.FetchRaw(ctx, topic, count)
	if len(articles) == 0 {
		return fmt.Sprintf("Error fetching news for topic: %s", topic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Successfully fetched %d articles about '%s' with full content:\n\n", len(articles), topic)
	for i, a := range articles {
		fmt.Fprintf(&b, "📰 **Article %d: %s**\n", i+1, a.Title)
		fmt.Fprintf(&b, "🔗 Source: %s\n", a.Source)
		fmt.Fprintf(&b, "📅 Published: %s\n", a.Published)
		fmt.Fprintf(&b, "🌐 URL: %s\n", a.URL)
		fmt.Fprintf(&b, "📝 Content Preview: %s...\n\n", utils.Truncate(a.Content, previewChars))
	}
	return b.String()
}
