package botx

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chanAPI struct {
	updates chan Request

	mu   sync.Mutex
	sent []Response
	err  error
}

func (a *chanAPI) Updates() <-chan Request { return a.updates }

func (a *chanAPI) SendMessage(_ context.Context, resp Response) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sent = append(a.sent, resp)
	return a.err
}

func TestBot_Run(t *testing.T) {
	api := &chanAPI{updates: make(chan Request, 10)}

	h := func(_ context.Context, req Request) ([]Response, error) {
		if req.Text == "fail" {
			return []Response{{ChatID: req.Chat.ID, Text: "failed"}}, errors.New("boom")
		}
		return []Response{{ChatID: req.Chat.ID, Text: "echo " + req.Text}}, nil
	}

	b := NewBot(h, api, WithWorkers(3))
	assert.Equal(t, 3, b.workers)

	api.updates <- Request{Chat: Chat{ID: "1"}, Text: "a"}
	api.updates <- Request{Chat: Chat{ID: "2"}, Text: "fail"}
	api.updates <- Request{Chat: Chat{ID: "3"}, Text: "b"}
	close(api.updates)

	done := make(chan struct{})
	go func() {
		b.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("bot did not stop after updates channel closed")
	}

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.ElementsMatch(t, []Response{
		{ChatID: "1", Text: "echo a"},
		{ChatID: "2", Text: "failed"},
		{ChatID: "3", Text: "echo b"},
	}, api.sent)
}

func TestBot_RunStopsOnContext(t *testing.T) {
	api := &chanAPI{updates: make(chan Request)}
	b := NewBot(func(context.Context, Request) ([]Response, error) { return nil, nil }, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.Fail(t, "bot did not stop after context was canceled")
	}
}

type slowAPI struct {
	chanAPI
	deadline chan bool
}

func (a *slowAPI) SendMessage(ctx context.Context, _ Response) error {
	_, ok := ctx.Deadline()
	a.deadline <- ok
	return nil
}

func TestBot_SendTimeout(t *testing.T) {
	api := &slowAPI{chanAPI: chanAPI{updates: make(chan Request, 1)}, deadline: make(chan bool, 1)}
	h := func(_ context.Context, req Request) ([]Response, error) { return []Response{{ChatID: req.Chat.ID}}, nil }

	b := NewBot(h, api, WithWorkers(0), WithSendTimeout(time.Minute))
	assert.Equal(t, 1, b.workers)

	api.updates <- Request{Chat: Chat{ID: "1"}}
	close(api.updates)
	b.Run(context.Background())

	assert.True(t, <-api.deadline)
}
