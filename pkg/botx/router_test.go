package botx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reply(text string) Handler {
	return func(_ context.Context, req Request) ([]Response, error) {
		return []Response{{ChatID: req.Chat.ID, Text: text + ":" + req.Args()}}, nil
	}
}

func TestRequest_CommandAndArgs(t *testing.T) {
	tests := []struct {
		text string
		cmd  string
		args string
	}{
		{text: "/search golang generics", cmd: "/search", args: "golang generics"},
		{text: "/more@hnsearch_bot", cmd: "/more", args: ""},
		{text: "/sort@bot   points ", cmd: "/sort", args: "points"},
		{text: "  rust lang ", cmd: "", args: "rust lang"},
		{text: "/", cmd: "/", args: ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			req := Request{Text: tt.text}
			assert.Equal(t, tt.cmd, req.Command())
			assert.Equal(t, tt.args, req.Args())
		})
	}
}

func TestRouter_Handle(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, req Request) ([]Response, error) {
				trace = append(trace, name)
				return next(ctx, req)
			}
		}
	}

	rtr := NewRouter()
	rtr.Use(mw("outer"))
	rtr.NotFound(reply("text"))
	rtr.Add("/search", reply("search"))
	rtr.Add("/sessions", reply("sessions"))
	rtr.Group(func(rtr *Router) {
		rtr.Use(mw("admin"))
		rtr.Add("/chats", reply("chats"))
	})

	tests := []struct {
		text  string
		want  string
		trace []string
	}{
		{text: "/search go", want: "search:go", trace: []string{"outer"}},
		{text: "/sessions", want: "sessions:", trace: []string{"outer"}},
		{text: "/searchx go", want: "text:go", trace: []string{"outer"}},
		{text: "just words", want: "text:just words", trace: []string{"outer"}},
		{text: "/chats@bot", want: "chats:", trace: []string{"outer", "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			trace = nil
			resps, err := rtr.Handle(context.Background(), Request{Chat: Chat{ID: "1"}, Text: tt.text})
			require.NoError(t, err)
			require.Len(t, resps, 1)
			assert.Equal(t, tt.want, resps[0].Text)
			assert.Equal(t, tt.trace, trace)
		})
	}

	resps, err := rtr.Handle(context.Background(), Request{Chat: Chat{ID: "1"}})
	require.NoError(t, err)
	assert.Empty(t, resps)
}

func TestNotFound(t *testing.T) {
	resps, err := NewRouter().Handle(context.Background(), Request{Chat: Chat{ID: "7"}, Text: "/nope"})
	require.NoError(t, err)
	assert.Equal(t, []Response{{ChatID: "7", Text: "command not found"}}, resps)
}
