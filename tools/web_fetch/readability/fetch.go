package readability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch/models"
	"github.com/mohammad-safakhou/newsagent/utils"
)

const userAgent = "NewsAgent/1.0 (+https://github.com/mohammad-safakhou/newsagent)"

// Fetch downloads a page with a plain GET and runs it through readability.
// It is the lightweight alternative to the headless chromedp fetcher.
type Fetch struct {
	Timeout  time.Duration
	MaxChars int
	Client   *http.Client // optional
}

func (f Fetch) Exec(ctx context.Context, rawURL string) (models.Result, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return models.Result{}, errors.New("invalid url")
	}
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: f.Timeout}
	}

	t0 := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return models.Result{}, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return models.Result{URL: rawURL}, fmt.Errorf("get page: %w", err)
	}
	defer resp.Body.Close()
	elapsed := func() int { return int(time.Since(t0) / time.Millisecond) }
	if resp.StatusCode != http.StatusOK {
		return models.Result{URL: rawURL, Status: resp.StatusCode, RenderMS: elapsed()}, fmt.Errorf("get page: status %d", resp.StatusCode)
	}

	// 5 MiB is plenty for any article page
	article, err := readability.FromReader(io.LimitReader(resp.Body, 5<<20), u)
	if err != nil {
		return models.Result{URL: rawURL, Status: resp.StatusCode, RenderMS: elapsed()}, nil
	}
	text := strings.TrimSpace(article.TextContent)
	if f.MaxChars > 0 {
		text = utils.Truncate(text, f.MaxChars)
	}
	published := ""
	if article.PublishedTime != nil {
		published = article.PublishedTime.Format(time.RFC3339)
	}
	return models.Result{
		URL:         rawURL,
		Title:       strings.TrimSpace(article.Title),
		Byline:      strings.TrimSpace(article.Byline),
		PublishedAt: published,
		Text:        text,
		Status:      resp.StatusCode,
		RenderMS:    elapsed(),
	}, nil
}
