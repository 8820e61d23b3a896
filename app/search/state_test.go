package search

import (
	"testing"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/stretchr/testify/assert"
)

var testStories = []hn.Story{
	{ObjectID: "1", Title: "b", Author: "zed", NumComments: 5, Points: 10},
	{ObjectID: "2", Title: "a", Author: "amy", NumComments: 1, Points: 30},
	{ObjectID: "3", Title: "c", Author: "kim", NumComments: 9, Points: 20},
	{ObjectID: "4", Title: "d", Author: "bob", NumComments: 1, Points: 40},
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name   string
		state  StoriesState
		action Action
		want   StoriesState
	}{
		{
			name:   "fetch init keeps data and page",
			state:  StoriesState{Data: testStories[:1], Page: 3, IsError: true},
			action: FetchInit{},
			want:   StoriesState{Data: testStories[:1], Page: 3, IsLoading: true},
		},
		{
			name:   "fetch success replaces data",
			state:  StoriesState{Data: testStories[:2], Page: 0, IsLoading: true},
			action: FetchSuccess{List: testStories[2:], Page: 1},
			want:   StoriesState{Data: testStories[2:], Page: 1},
		},
		{
			name:   "fetch failure keeps data and page",
			state:  StoriesState{Data: testStories, Page: 2, IsLoading: true},
			action: FetchFailure{},
			want:   StoriesState{Data: testStories, Page: 2, IsError: true},
		},
		{
			name:   "remove story",
			state:  StoriesState{Data: testStories, Page: 1},
			action: RemoveStory{Story: testStories[1]},
			want:   StoriesState{Data: []hn.Story{testStories[0], testStories[2], testStories[3]}, Page: 1},
		},
		{
			name:   "remove absent story",
			state:  StoriesState{Data: testStories[:2]},
			action: RemoveStory{Story: hn.Story{ObjectID: "42"}},
			want:   StoriesState{Data: testStories[:2]},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.state, tt.action))
		})
	}
}

func TestReduce_RemoveSequence(t *testing.T) {
	state := StoriesState{Data: []hn.Story{
		{ObjectID: "1"}, {ObjectID: "2"}, {ObjectID: "1"}, {ObjectID: "3"}, {ObjectID: "4"},
	}}

	for _, id := range []string{"1", "4"} {
		state = Reduce(state, RemoveStory{Story: hn.Story{ObjectID: id}})
	}

	assert.Equal(t, []hn.Story{{ObjectID: "2"}, {ObjectID: "3"}}, state.Data)
}

func TestReduce_SuccessNeverAppends(t *testing.T) {
	state := StoriesState{}
	state = Reduce(state, FetchSuccess{List: testStories[:2], Page: 0})
	state = Reduce(state, FetchInit{})
	state = Reduce(state, FetchSuccess{List: testStories[3:], Page: 1})

	assert.Equal(t, testStories[3:], state.Data)
	assert.Equal(t, 1, state.Page)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	data := []hn.Story{{ObjectID: "1"}, {ObjectID: "2"}}
	state := StoriesState{Data: data}

	_ = Reduce(state, RemoveStory{Story: hn.Story{ObjectID: "1"}})

	assert.Equal(t, []hn.Story{{ObjectID: "1"}, {ObjectID: "2"}}, data)
}

type unknownAction struct{}

func (unknownAction) storiesAction() {}

func TestReduce_UnknownAction(t *testing.T) {
	assert.Panics(t, func() { Reduce(StoriesState{}, unknownAction{}) })
	assert.Panics(t, func() { Reduce(StoriesState{}, nil) })
}
