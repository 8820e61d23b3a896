// Package search contains the state machine and controllers behind a search view:
// fetch lifecycle of a result page, recent searches, client-side sorting and
// the persisted search term.
package search

import (
	"fmt"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/samber/lo"
)

// StoriesState is the fetch lifecycle and data of the current result page.
type StoriesState struct {
	Data      []hn.Story
	Page      int
	IsLoading bool
	IsError   bool
}

// Action is a transition of StoriesState.
// The set of actions is closed: only this package can define them.
type Action interface{ storiesAction() }

// FetchInit marks the start of a fetch.
type FetchInit struct{}

// FetchSuccess replaces the page data with the fetched stories.
type FetchSuccess struct {
	List []hn.Story
	Page int
}

// FetchFailure marks the failed fetch.
type FetchFailure struct{}

// RemoveStory removes the story from the page data.
type RemoveStory struct {
	Story hn.Story
}

func (FetchInit) storiesAction()    {}
func (FetchSuccess) storiesAction() {}
func (FetchFailure) storiesAction() {}
func (RemoveStory) storiesAction()  {}

// Reduce applies the action to the state and returns the new state.
// It panics on an action it does not know, as that means the caller
// and the state machine disagree on the set of actions.
func Reduce(state StoriesState, action Action) StoriesState {
	switch a := action.(type) {
	case FetchInit:
		state.IsLoading = true
		state.IsError = false
	case FetchSuccess:
		state.IsLoading = false
		state.IsError = false
		state.Data = a.List
		state.Page = a.Page
	case FetchFailure:
		state.IsLoading = false
		state.IsError = true
	case RemoveStory:
		state.Data = lo.Filter(state.Data, func(s hn.Story, _ int) bool {
			return s.ObjectID != a.Story.ObjectID
		})
	default:
		panic(fmt.Sprintf("search: unknown stories action %T", action))
	}
	return state
}
