package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Semior001/hnsearch/app/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type searchAPI struct {
	mu      sync.Mutex
	queries []string
}

func (a *searchAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.queries = append(a.queries, r.URL.Query().Get("query")+"@"+r.URL.Query().Get("page"))
	a.mu.Unlock()

	if r.URL.Query().Get("query") == "broken" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	_, _ = w.Write([]byte(`{"page": 0, "hits": [
		{"objectID": "1", "title": "Zig is great", "author": "ann", "num_comments": 3, "points": 10, "url": "https://z.example"},
		{"objectID": "2", "title": "Ada revisited", "author": "bob", "num_comments": 40, "points": 2, "url": null},
		{"objectID": "3", "title": "Go generics", "author": "cid", "num_comments": 7, "points": 99}
	]}`))
}

func newSearch(t *testing.T, api *searchAPI, dir string) (Search, *httptest.Server, *bytes.Buffer) {
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)
	buf := &bytes.Buffer{}
	return Search{
		HN:               HNGroup{BaseURL: ts.URL},
		StorePath:        dir,
		StoreLockTimeout: time.Second,
		Sort:             "none",
		out:              buf,
	}, ts, buf
}

func titles(out string) []string {
	var res []string
	for _, line := range strings.Split(out, "\n") {
		for _, title := range []string{"Zig is great", "Ada revisited", "Go generics"} {
			if strings.Contains(line, title) {
				res = append(res, title)
			}
		}
	}
	return res
}

func TestSearch_Execute(t *testing.T) {
	t.Run("default term and order", func(t *testing.T) {
		api := &searchAPI{}
		s, _, buf := newSearch(t, api, t.TempDir())

		require.NoError(t, s.Execute(nil))
		assert.Equal(t, []string{"React@0"}, api.queries)
		assert.True(t, strings.HasPrefix(buf.String(), "Search: React, page 1, 50 comments on this page\n\n"))
		assert.Equal(t, []string{"Zig is great", "Ada revisited", "Go generics"}, titles(buf.String()))
	})

	t.Run("term persists between runs", func(t *testing.T) {
		api := &searchAPI{}
		dir := t.TempDir()

		s, _, _ := newSearch(t, api, dir)
		s.Page = 2
		require.NoError(t, s.Execute([]string{"rust", "async"}))

		s, _, buf := newSearch(t, api, dir)
		require.NoError(t, s.Execute(nil))

		assert.Equal(t, []string{"rust async@2", "rust async@0"}, api.queries)
		assert.Contains(t, buf.String(), "Search: rust async, page 1")
	})

	t.Run("sorted", func(t *testing.T) {
		tbl := []struct {
			sort    string
			reverse bool
			want    []string
		}{
			{sort: "title", want: []string{"Ada revisited", "Go generics", "Zig is great"}},
			{sort: "title", reverse: true, want: []string{"Zig is great", "Go generics", "Ada revisited"}},
			{sort: "points", want: []string{"Go generics", "Zig is great", "Ada revisited"}},
			{sort: "comments", want: []string{"Ada revisited", "Go generics", "Zig is great"}},
			{sort: "comments", reverse: true, want: []string{"Zig is great", "Go generics", "Ada revisited"}},
			{sort: "none", reverse: true, want: []string{"Go generics", "Ada revisited", "Zig is great"}},
		}

		for _, tt := range tbl {
			tt := tt
			t.Run(tt.sort, func(t *testing.T) {
				s, _, buf := newSearch(t, &searchAPI{}, t.TempDir())
				s.Sort, s.Reverse = tt.sort, tt.reverse
				require.NoError(t, s.Execute(nil))
				assert.Equal(t, tt.want, titles(buf.String()))
			})
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		s, _, buf := newSearch(t, &searchAPI{}, t.TempDir())
		s.Query = "broken"
		assert.EqualError(t, s.Execute(nil), "failed to fetch stories")
		assert.Empty(t, buf.String())
	})

	t.Run("page out of range", func(t *testing.T) {
		s, _, _ := newSearch(t, &searchAPI{}, t.TempDir())
		s.Page = 50
		assert.EqualError(t, s.Execute(nil), "page must be in range [0, 49]")
	})
}

func TestSearch_ExecuteStoreLocked(t *testing.T) {
	api := &searchAPI{}
	dir := t.TempDir()

	running, err := store.NewBolt(dir, time.Second)
	require.NoError(t, err)
	defer running.Close()

	s, _, _ := newSearch(t, api, dir)
	s.StoreLockTimeout = 50 * time.Millisecond
	err = s.Execute([]string{"go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "make store")
	assert.Empty(t, api.queries)
}

func TestWriteTable_Aligned(t *testing.T) {
	api := &searchAPI{}
	s, _, buf := newSearch(t, api, t.TempDir())
	require.NoError(t, s.Execute(nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "#  Title          Author  Comments  Points", lines[2])
	assert.Equal(t, "1  Zig is great   ann     3         10", lines[3])
	assert.Equal(t, "2  Ada revisited  bob     40        2", lines[4])
}

func TestSearch_ExecuteYAML(t *testing.T) {
	s, _, buf := newSearch(t, &searchAPI{}, t.TempDir())
	s.Format, s.Sort = "yaml", "points"
	require.NoError(t, s.Execute([]string{"zig"}))

	var page yamlPage
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &page))
	assert.Equal(t, "zig", page.Term)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, 50, page.Comments)
	require.Len(t, page.Stories, 3)
	assert.Equal(t, yamlStory{ID: "3", Title: "Go generics", Author: "cid", Comments: 7, Points: 99}, page.Stories[0])
	assert.Equal(t, "https://z.example", page.Stories[1].URL)
	assert.Empty(t, page.Stories[2].URL)
}
