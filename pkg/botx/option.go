package botx

import (
	"time"

	"golang.org/x/exp/slog"
)

// Option configures a Bot.
type Option func(*Bot)

// WithWorkers sets the number of goroutines handling updates.
// Values below one leave a single worker.
func WithWorkers(workers int) Option {
	return func(b *Bot) {
		if workers > 0 {
			b.workers = workers
		}
	}
}

// WithLogger sets the logger to use.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) { b.log = logger }
}

// WithSendTimeout limits every SendMessage call. Zero means no limit.
func WithSendTimeout(d time.Duration) Option {
	return func(b *Bot) { b.sendTimeout = d }
}
