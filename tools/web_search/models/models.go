package models

// Result is one ranked search hit. Empty fields mean the provider omitted them.
type Result struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Snippet       string `json:"snippet"`
	PublishedDate string `json:"published_date"`
	Source        string `json:"source"`
}
