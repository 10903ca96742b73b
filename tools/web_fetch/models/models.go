package models

// Result is the extracted, readable form of one page.
// Text is empty when nothing usable could be extracted.
type Result struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Byline      string `json:"byline"`
	PublishedAt string `json:"published_at"`
	Text        string `json:"text"`
	Status      int    `json:"status"`
	RenderMS    int    `json:"render_ms"`
}
