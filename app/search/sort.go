package search

import (
	"fmt"
	"strings"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// SortKey is a field the result page can be sorted by.
type SortKey string

// Sort keys.
const (
	SortNone    SortKey = "NONE"
	SortTitle   SortKey = "TITLE"
	SortAuthor  SortKey = "AUTHOR"
	SortComment SortKey = "COMMENT"
	SortPoint   SortKey = "POINT"
)

// SortKeys lists the keys a user can select, in the order they are shown.
var SortKeys = []SortKey{SortTitle, SortAuthor, SortComment, SortPoint}

var sortLabels = map[SortKey]string{
	SortNone:    "None",
	SortTitle:   "Title",
	SortAuthor:  "Author",
	SortComment: "Comments",
	SortPoint:   "Points",
}

// ParseSortKey parses a sort key, case-insensitively. Plural forms are accepted.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return SortNone, nil
	case "TITLE":
		return SortTitle, nil
	case "AUTHOR":
		return SortAuthor, nil
	case "COMMENT", "COMMENTS":
		return SortComment, nil
	case "POINT", "POINTS":
		return SortPoint, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}

// SortState is the sort selection of a result list.
type SortState struct {
	Key       SortKey
	IsReverse bool
}

// Select returns the state after the user picked the key:
// picking the active key flips the direction, any other key starts unreversed.
func (s SortState) Select(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, IsReverse: !s.IsReverse}
	}
	return SortState{Key: key}
}

// Apply returns a sorted copy of the stories.
// Comments and points sort descending, so the reverse flag makes them ascending.
func (s SortState) Apply(stories []hn.Story) []hn.Story {
	res := slices.Clone(stories)

	switch s.Key {
	case SortTitle:
		slices.SortStableFunc(res, func(a, b hn.Story) bool { return a.Title < b.Title })
	case SortAuthor:
		slices.SortStableFunc(res, func(a, b hn.Story) bool { return a.Author < b.Author })
	case SortComment:
		slices.SortStableFunc(res, func(a, b hn.Story) bool { return a.NumComments < b.NumComments })
		res = lo.Reverse(res)
	case SortPoint:
		slices.SortStableFunc(res, func(a, b hn.Story) bool { return a.Points < b.Points })
		res = lo.Reverse(res)
	}

	if s.IsReverse {
		res = lo.Reverse(res)
	}

	return res
}

// Active reports whether the key is the selected one.
func (s SortState) Active(key SortKey) bool { return s.Key == key && key != SortNone }

// Label returns the button caption for the key, with a direction arrow
// if the key is the active one.
func (s SortState) Label(key SortKey) string {
	label := sortLabels[key]
	if !s.Active(key) {
		return label
	}
	if s.IsReverse {
		return label + " ▲"
	}
	return label + " ▼"
}
