// Package goqueryextractor implements mapper.LinkExtractor using goquery.
package goqueryextractor

import (
	"bytes"

	"github.com/PuerkitoBio/goquery"
)

// Extractor pulls raw href values out of anchor elements, in document order,
// without any normalization or filtering.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{}
}

// ExtractLinks returns every href attribute declared on an a[href] element.
// An unparseable body yields no links.
func (Extractor) ExtractLinks(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			links = append(links, href)
		}
	})
	return links
}
