package exa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/newsagent/tools/exa"
	"github.com/mohammad-safakhou/newsagent/tools/web_fetch/models"
	"github.com/mohammad-safakhou/newsagent/utils"
)

// Fetch resolves page text through Exa's /contents endpoint.
type Fetch struct {
	Client   *exa.Client
	MaxChars int
}

type contentsRequest struct {
	URLs              []string `json:"urls"`
	IncludeImages     bool     `json:"includeImages"`
	IncludeFormatting bool     `json:"includeFormatting"`
}

type contentsResponse struct {
	Results []struct {
		URL           string `json:"url"`
		Title         string `json:"title"`
		Author        string `json:"author"`
		PublishedDate string `json:"publishedDate"`
		Text          string `json:"text"`
	} `json:"results"`
}

func (f Fetch) Exec(ctx context.Context, url string) (models.Result, error) {
	if strings.TrimSpace(url) == "" {
		return models.Result{}, errors.New("invalid url")
	}
	var resp contentsResponse
	err := f.Client.PostJSON(ctx, "/contents", contentsRequest{URLs: []string{url}}, &resp)
	if err != nil {
		var se *exa.StatusError
		if errors.As(err, &se) {
			return models.Result{URL: url, Status: se.StatusCode}, fmt.Errorf("fetch contents: %w", err)
		}
		return models.Result{URL: url}, fmt.Errorf("fetch contents: %w", err)
	}
	if len(resp.Results) == 0 {
		return models.Result{URL: url, Status: 200}, nil
	}
	r := resp.Results[0]
	text := strings.TrimSpace(r.Text)
	if f.MaxChars > 0 {
		text = utils.Truncate(text, f.MaxChars)
	}
	return models.Result{
		URL:         url,
		Title:       strings.TrimSpace(r.Title),
		Byline:      strings.TrimSpace(r.Author),
		PublishedAt: r.PublishedDate,
		Text:        text,
		Status:      200,
	}, nil
}
