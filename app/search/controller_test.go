package search

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const testBase = "http://hn.test/api/v1"

// echoFetcher answers with a single story identified by the term and page of the request.
func echoFetcher() *FetcherMock {
	return &FetcherMock{
		SearchFunc: func(_ context.Context, u string) (hn.Page, error) {
			term := hn.TermFromURL(u)
			page := pageOf(u)
			return hn.Page{
				Hits: []hn.Story{
					{ObjectID: term + "-" + strconv.Itoa(page), Title: term, NumComments: 2},
					{ObjectID: term + "-x", Title: term, NumComments: 3},
				},
				Page: page,
			}, nil
		},
	}
}

func pageOf(u string) int {
	for i := len(u) - 1; i >= 0; i-- {
		if u[i] == '=' {
			p, _ := strconv.Atoi(u[i+1:])
			return p
		}
	}
	return 0
}

func newTestController(t *testing.T, f Fetcher, kv KV) *Controller {
	c, err := NewController(context.Background(), slog.Default(), f, NewTermStore(kv, TermKey, DefaultTerm), testBase)
	require.NoError(t, err)
	return c
}

func TestController_Start(t *testing.T) {
	f := echoFetcher()
	kv := memKV(map[string]string{})
	c := newTestController(t, f, kv)

	assert.Equal(t, []string{hn.SearchURL(testBase, DefaultTerm, 0)}, c.History())
	assert.Empty(t, f.SearchCalls())

	c.FetchCurrent(context.Background())

	require.Len(t, f.SearchCalls(), 1)
	v := c.Snapshot()
	assert.Equal(t, DefaultTerm, v.SearchTerm)
	assert.Equal(t, 0, v.Stories.Page)
	assert.False(t, v.Stories.IsLoading)
	assert.False(t, v.Stories.IsError)
	assert.Len(t, v.Stories.Data, 2)
	assert.Equal(t, 5, v.SumComments)
	assert.Empty(t, v.LastSearches)
	assert.Empty(t, kv.SetCalls())
}

func TestController_SearchAndHistory(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, echoFetcher(), memKV(map[string]string{}))
	c.FetchCurrent(ctx)

	require.NoError(t, c.SetTerm(ctx, "go"))
	c.Submit(ctx)
	c.More(ctx)
	c.More(ctx)

	v := c.Snapshot()
	assert.Equal(t, 2, v.Stories.Page)
	assert.Equal(t, "go-2", v.Stories.Data[0].ObjectID)
	assert.Equal(t, []string{DefaultTerm}, v.LastSearches)

	c.Less(ctx)
	assert.Equal(t, 1, c.Snapshot().Stories.Page)

	require.NoError(t, c.LastSearch(ctx, DefaultTerm))
	v = c.Snapshot()
	assert.Equal(t, DefaultTerm, v.SearchTerm)
	assert.Equal(t, 0, v.Stories.Page)
	assert.Equal(t, []string{DefaultTerm, "go"}, v.LastSearches)

	assert.Equal(t, []string{
		hn.SearchURL(testBase, DefaultTerm, 0),
		hn.SearchURL(testBase, "go", 0),
		hn.SearchURL(testBase, "go", 1),
		hn.SearchURL(testBase, "go", 2),
		hn.SearchURL(testBase, "go", 1),
		hn.SearchURL(testBase, DefaultTerm, 0),
	}, c.History())
}

func TestController_MoreUsesQueryTermNotInput(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, echoFetcher(), memKV(map[string]string{}))
	c.FetchCurrent(ctx)

	require.NoError(t, c.SetTerm(ctx, "typed but not submitted"))
	c.More(ctx)

	h := c.History()
	assert.Equal(t, hn.SearchURL(testBase, DefaultTerm, 1), h[len(h)-1])
}

func TestController_NoBoundChecks(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, echoFetcher(), memKV(map[string]string{}))
	c.FetchCurrent(ctx)

	c.Less(ctx)
	h := c.History()
	assert.Equal(t, hn.SearchURL(testBase, DefaultTerm, -1), h[len(h)-1])

	c.Search(ctx, DefaultTerm, hn.MaxPage)
	c.More(ctx)
	h = c.History()
	assert.Equal(t, hn.SearchURL(testBase, DefaultTerm, hn.MaxPage+1), h[len(h)-1])
}

func TestController_FetchFailure(t *testing.T) {
	ctx := context.Background()
	fail := false
	f := &FetcherMock{SearchFunc: func(ctx context.Context, u string) (hn.Page, error) {
		if fail {
			return hn.Page{}, errors.New("connection refused")
		}
		return echoFetcher().Search(ctx, u)
	}}

	c := newTestController(t, f, memKV(map[string]string{}))
	c.FetchCurrent(ctx)
	before := c.Snapshot().Stories

	fail = true
	c.More(ctx)

	v := c.Snapshot()
	assert.True(t, v.Stories.IsError)
	assert.False(t, v.Stories.IsLoading)
	assert.Equal(t, before.Data, v.Stories.Data)
	assert.Equal(t, before.Page, v.Stories.Page)

	fail = false
	c.FetchCurrent(ctx)
	v = c.Snapshot()
	assert.False(t, v.Stories.IsError)
	assert.Equal(t, 1, v.Stories.Page)
}

func TestController_LoadingDuringFetch(t *testing.T) {
	var c *Controller
	var during StoriesState
	f := &FetcherMock{SearchFunc: func(context.Context, string) (hn.Page, error) {
		during = c.Snapshot().Stories
		return hn.Page{}, nil
	}}
	c = newTestController(t, f, memKV(map[string]string{}))

	c.FetchCurrent(context.Background())

	assert.True(t, during.IsLoading)
	assert.False(t, c.Snapshot().Stories.IsLoading)
}

func TestController_RemoveAndSort(t *testing.T) {
	ctx := context.Background()
	c := newTestController(t, echoFetcher(), memKV(map[string]string{}))
	c.FetchCurrent(ctx)

	c.Sort(SortComment)
	v := c.Snapshot()
	assert.Equal(t, []string{DefaultTerm + "-x", DefaultTerm + "-0"}, ids(v.Sorted))
	assert.Equal(t, []string{DefaultTerm + "-0", DefaultTerm + "-x"}, ids(v.Stories.Data))

	c.Sort(SortComment)
	assert.Equal(t, SortState{Key: SortComment, IsReverse: true}, c.Snapshot().Sort)
	assert.Equal(t, []string{DefaultTerm + "-0", DefaultTerm + "-x"}, ids(c.Snapshot().Sorted))

	assert.True(t, c.Remove(DefaultTerm+"-x"))
	assert.False(t, c.Remove("missing"))
	v = c.Snapshot()
	assert.Equal(t, []string{DefaultTerm + "-0"}, ids(v.Stories.Data))
	assert.Equal(t, 2, v.SumComments)
}

func TestController_LoadError(t *testing.T) {
	kv := &KVMock{GetFunc: func(context.Context, string) (string, error) { return "", errors.New("disk") }}
	_, err := NewController(context.Background(), slog.Default(), echoFetcher(),
		NewTermStore(kv, TermKey, DefaultTerm), testBase)
	assert.Error(t, err)
}
