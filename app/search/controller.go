package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_fetcher.go . Fetcher

// Fetcher requests a page of stories by the search URL.
type Fetcher interface {
	Search(ctx context.Context, u string) (hn.Page, error)
}

// Controller drives a single search view: it issues searches, tracks
// the request history and holds the page state and the sort selection.
//
// Controller is safe for concurrent use, but the lock is released while
// the request is in flight, so a slow earlier response may overwrite
// the state set by a later one.
type Controller struct {
	log     *slog.Logger
	fetcher Fetcher
	term    *TermStore
	baseURL string

	mu      sync.Mutex
	urls    []string
	stories StoriesState
	sort    SortState
}

// View is a snapshot of everything a view needs to render.
type View struct {
	SearchTerm   string
	Stories      StoriesState
	Sorted       []hn.Story
	LastSearches []string
	Sort         SortState
	SumComments  int
}

// NewController loads the persisted term and makes a controller whose
// history starts with the first page of that term. Nothing is fetched
// until FetchCurrent is called.
func NewController(ctx context.Context, lg *slog.Logger, fetcher Fetcher, term *TermStore, baseURL string) (*Controller, error) {
	t, err := term.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load search term: %w", err)
	}

	return &Controller{
		log:     lg,
		fetcher: fetcher,
		term:    term,
		baseURL: baseURL,
		urls:    []string{hn.SearchURL(baseURL, t, 0)},
		sort:    SortState{Key: SortNone},
	}, nil
}

// SetTerm changes the search term without searching.
func (c *Controller) SetTerm(ctx context.Context, term string) error {
	if err := c.term.Save(ctx, term); err != nil {
		return fmt.Errorf("save search term: %w", err)
	}
	return nil
}

// Submit searches for the first page of the current term.
func (c *Controller) Submit(ctx context.Context) {
	c.Search(ctx, c.term.Value(), 0)
}

// LastSearch makes the term current and searches for its first page.
func (c *Controller) LastSearch(ctx context.Context, term string) error {
	if err := c.SetTerm(ctx, term); err != nil {
		return err
	}
	c.Search(ctx, term, 0)
	return nil
}

// Search appends the request for the page of the term to the history and fetches it.
func (c *Controller) Search(ctx context.Context, term string, page int) {
	c.mu.Lock()
	c.urls = append(c.urls, hn.SearchURL(c.baseURL, term, page))
	c.mu.Unlock()

	c.FetchCurrent(ctx)
}

// More searches for the next page of the current query.
// Callers must not go past hn.MaxPage.
func (c *Controller) More(ctx context.Context) {
	term, page := c.current()
	c.Search(ctx, term, page+1)
}

// Less searches for the previous page of the current query.
// Callers must not go below the first page.
func (c *Controller) Less(ctx context.Context) {
	term, page := c.current()
	c.Search(ctx, term, page-1)
}

// FetchCurrent fetches the most recent request of the history.
// Any failure ends up in StoriesState.IsError.
func (c *Controller) FetchCurrent(ctx context.Context) {
	c.mu.Lock()
	u := c.urls[len(c.urls)-1]
	c.dispatch(FetchInit{})
	c.mu.Unlock()

	page, err := c.fetcher.Search(ctx, u)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.log.WarnCtx(ctx, "failed to fetch stories", slog.String("url", u), slog.Any("err", err))
		c.dispatch(FetchFailure{})
		return
	}

	c.log.DebugCtx(ctx, "stories fetched",
		slog.String("url", u),
		slog.Int("page", page.Page),
		slog.Int("hits", len(page.Hits)),
	)
	c.dispatch(FetchSuccess{List: page.Hits, Page: page.Page})
}

// Remove removes the story with the id from the current page.
// It returns false if no such story is on the page.
func (c *Controller) Remove(objectID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	story, ok := lo.Find(c.stories.Data, func(s hn.Story) bool { return s.ObjectID == objectID })
	if !ok {
		return false
	}

	c.dispatch(RemoveStory{Story: story})
	return true
}

// Sort selects the sort key of the list.
func (c *Controller) Sort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sort = c.sort.Select(key)
}

// History returns a copy of the issued request URLs, earliest first.
func (c *Controller) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]string, len(c.urls))
	copy(res, c.urls)
	return res
}

// Snapshot returns the current view of the controller.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	return View{
		SearchTerm:   c.term.Value(),
		Stories:      c.stories,
		Sorted:       c.sort.Apply(c.stories.Data),
		LastSearches: LastSearches(c.urls),
		Sort:         c.sort,
		SumComments:  lo.SumBy(c.stories.Data, func(s hn.Story) int { return s.NumComments }),
	}
}

func (c *Controller) current() (term string, page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return hn.TermFromURL(c.urls[len(c.urls)-1]), c.stories.Page
}

// dispatch must be called with mu held.
func (c *Controller) dispatch(a Action) { c.stories = Reduce(c.stories, a) }
