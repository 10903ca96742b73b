package exa

import (
	"context"
	"fmt"

	"github.com/mohammad-safakhou/newsagent/tools/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/models"
)

// Search queries Exa's /search endpoint with keyword search and autoprompt on.
type Search struct {
	Client *exa.Client
}

type searchRequest struct {
	Query          string   `json:"query"`
	NumResults     int      `json:"numResults"`
	IncludeDomains []string `json:"includeDomains,omitempty"`
	UseAutoprompt  bool     `json:"useAutoprompt"`
	Type           string   `json:"type"`
}

type searchResponse struct {
	Results []struct {
		Title         string `json:"title"`
		URL           string `json:"url"`
		Text          string `json:"text"`
		PublishedDate string `json:"publishedDate"`
		Source        string `json:"source"`
	} `json:"results"`
}

func (s Search) Discover(ctx context.Context, q string, k int, sites []string) ([]models.Result, error) {
	req := searchRequest{
		Query:          q,
		NumResults:     k,
		IncludeDomains: sites,
		UseAutoprompt:  true,
		Type:           "keyword",
	}
	var resp searchResponse
	if err := s.Client.PostJSON(ctx, "/search", req, &resp); err != nil {
		return nil, fmt.Errorf("error searching news: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("no articles found for topic: %s", q)
	}

	out := make([]models.Result, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, models.Result{
			Title:         r.Title,
			URL:           r.URL,
			Snippet:       r.Text,
			PublishedDate: r.PublishedDate,
			Source:        r.Source,
		})
	}
	return out, nil
}
