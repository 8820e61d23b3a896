package reader

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Extractor extracts article from HTML page.
type Extractor struct{}

// Extract extracts article from an HTML page located at pageURL.
func (e Extractor) Extract(rd io.Reader, pageURL *url.URL) (Article, error) {
	doc, err := readability.FromReader(rd, pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("parse html: %w", err)
	}

	return Article{
		Title:    doc.Title,
		Excerpt:  sanitize(doc.Excerpt),
		Content:  sanitize(doc.TextContent),
		Author:   doc.Byline,
		ImageURL: doc.Image,
	}, nil
}

var spaces = regexp.MustCompile(`\s+`)

func sanitize(s string) string {
	// nbsp
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
