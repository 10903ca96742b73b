package serper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mohammad-safakhou/newsagent/internal/helpers"
	"github.com/mohammad-safakhou/newsagent/tools/web_search/models"
	"github.com/mohammad-safakhou/newsagent/utils"
)

const defaultEndpoint = "https://google.serper.dev/search"

type Search struct {
	ApiKey   string
	Endpoint string // overrides defaultEndpoint
	Timeout  time.Duration
}

// siteQuery folds a domain allow-list into the query the way Google expects it.
func siteQuery(q string, sites []string) string {
	if len(sites) == 0 {
		return q
	}
	parts := make([]string, 0, len(sites))
	for _, s := range sites {
		parts = append(parts, "site:"+s)
	}
	return fmt.Sprintf("%s (%s)", q, strings.Join(parts, " OR "))
}

func (s Search) Discover(ctx context.Context, q string, k int, sites []string) ([]models.Result, error) {
	// https://serper.dev/ docs
	payload := map[string]any{"q": siteQuery(q, sites), "num": k}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	endpoint := utils.FirstNonEmpty(s.Endpoint, defaultEndpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(body)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.ApiKey)
	req.Header.Set("Content-Type", "application/json")
	resp, err := (&http.Client{Timeout: s.Timeout}).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error searching news: serper status %d", resp.StatusCode)
	}
	var raw struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
			Date    string `json:"date"`
		} `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var out []models.Result
	for i, it := range raw.Organic {
		if i >= k {
			break
		}
		out = append(out, models.Result{
			Title:         helpers.PlainText(it.Title),
			URL:           it.Link,
			Snippet:       helpers.PlainText(it.Snippet),
			PublishedDate: it.Date,
			Source:        utils.Hostname(it.Link),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no articles found for topic: %s", q)
	}
	return out, nil
}
