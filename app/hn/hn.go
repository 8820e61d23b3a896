// Package hn provides a client for the Hacker News search API hosted by Algolia.
package hn

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the base address of the public search API.
const DefaultBaseURL = "https://hn.algolia.com/api/v1"

// MaxPage is the last page the search API serves for a query.
const MaxPage = 49

// Story is a single search hit.
type Story struct {
	ObjectID    string `json:"objectID"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	NumComments int    `json:"num_comments"`
	Points      int    `json:"points"`
}

// Page is a single page of search results.
type Page struct {
	Hits []Story `json:"hits"`
	Page int     `json:"page"`
}

const (
	paramQuery = "query"
	paramPage  = "page"
)

// SearchURL builds the request URL for the given term and page.
func SearchURL(base, term string, page int) string {
	return strings.TrimSuffix(base, "/") + "/search?" +
		paramQuery + "=" + url.QueryEscape(term) + "&" +
		paramPage + "=" + strconv.Itoa(page)
}

// TermFromURL returns the search term embedded in the request URL,
// or an empty string if the URL carries none.
func TermFromURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return parsed.Query().Get(paramQuery)
}
