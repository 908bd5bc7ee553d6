package mapper

import "context"

// Page is the raw result of fetching a URL.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Body       []byte
}

// Fetcher retrieves the content of a single URL. A non-success response or
// transport failure is reported as an error; the engine treats any fetch
// error as an empty page and keeps crawling.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// LinkExtractor pulls raw href strings out of fetched markup, in document
// order, without normalization or filtering.
type LinkExtractor interface {
	ExtractLinks(body []byte) []string
}
