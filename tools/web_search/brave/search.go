package brave

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

const defaultEndpoint = "https://api.search.brave.com/res/v1/web/search"

type Search struct {
	ApiKey   string
	Endpoint string // overrides defaultEndpoint
	Timeout  time.Duration
}

func (s Search) Discover(ctx context.Context, q string, k int, sites []string) ([]models.Result, error) {
	// https://api.search.brave.com/app/documentation/web-search
	query := q
	if len(sites) > 0 {
		filters := make([]string, 0, len(sites))
		for _, site := range sites {
			filters = append(filters, "site:"+site)
		}
		query = fmt.Sprintf("%s (%s)", q, strings.Join(filters, " OR "))
	}
	url := fmt.Sprintf("%s?q=%s&count=%d", utils.FirstNonEmpty(s.Endpoint, defaultEndpoint), utils.UrlQuery(query), k)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.ApiKey)
	resp, err := (&http.Client{Timeout: s.Timeout}).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error searching news: brave status %d", resp.StatusCode)
	}
	var raw struct {
		Web struct {
			Results []struct {
				Title   string `json:"title"`
				URL     string `json:"url"`
				Snippet string `json:"description"`
				PageAge string `json:"page_age"`
				MetaURL struct {
					Hostname string `json:"hostname"`
				} `json:"meta_url"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}
	var out []models.Result
	for i, r := range raw.Web.Results {
		if i >= k {
			break
		}
		out = append(out, models.Result{
			Title:         helpers.PlainText(r.Title),
			URL:           r.URL,
			Snippet:       helpers.PlainText(r.Snippet),
			PublishedDate: r.PageAge,
			Source:        utils.FirstNonEmpty(r.MetaURL.Hostname, utils.Hostname(r.URL)),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no articles found for topic: %s", q)
	}
	return out, nil
}
