// Package botx provides interfaces and types to handle bot updates,
// with a chi-like router matching requests by command.
package botx

import (
	"context"
	"sync"
	"time"

	"github.com/Semior001/hnsearch/pkg/logx"
	"golang.org/x/exp/slog"
)

// API defines methods for an API interface to receive and send chat messages.
type API interface {
	Updates() <-chan Request
	SendMessage(ctx context.Context, resp Response) error
}

// Bot reads updates from the API and passes them to the handler,
// sending back whatever the handler responds with.
type Bot struct {
	h   Handler
	api API

	workers     int
	log         *slog.Logger
	sendTimeout time.Duration
}

// NewBot creates a new Bot.
func NewBot(h Handler, api API, opts ...Option) *Bot {
	b := &Bot{
		h:       h,
		api:     api,
		workers: 1,
		log:     slog.New(logx.NoOp()),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Run starts updates listener. It returns when the context is done
// or the updates channel is closed.
func (b *Bot) Run(ctx context.Context) {
	wg := &sync.WaitGroup{}
	wg.Add(b.workers)

	for i := 0; i < b.workers; i++ {
		go func(idx int) {
			defer wg.Done()
			b.serve(ctx, idx)
		}(i)
	}

	wg.Wait()
}

func (b *Bot) serve(ctx context.Context, idx int) {
	lg := b.log.With(slog.Int("worker", idx))
	lg.DebugCtx(ctx, "starting worker")
	defer lg.DebugCtx(ctx, "stopping worker")

	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-b.api.Updates():
			if !ok {
				return
			}
			b.handleUpdate(ctx, lg, req)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, lg *slog.Logger, req Request) {
	resps, err := b.h(ctx, req)
	if err != nil {
		lg.ErrorCtx(ctx, "failed to handle request",
			slog.String("chat_id", req.Chat.ID),
			slog.Any("err", err))
	}

	for _, resp := range resps {
		if err := b.send(ctx, resp); err != nil {
			lg.WarnCtx(ctx, "failed to send message",
				slog.String("chat_id", resp.ChatID),
				slog.Any("err", err))
		}
	}
}

func (b *Bot) send(ctx context.Context, resp Response) error {
	if b.sendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.sendTimeout)
		defer cancel()
	}
	return b.api.SendMessage(ctx, resp)
}
