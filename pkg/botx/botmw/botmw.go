// Package botmw provides middlewares for bot handler.
package botmw

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/Semior001/hnsearch/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Logger logs every request and the outcome of its handling.
// Message texts are logged only at debug level.
func Logger(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			debugOn := lg.Enabled(ctx, slog.LevelDebug)

			attrs := []slog.Attr{
				slog.String("chat_id", req.Chat.ID),
				slog.String("chat_username", req.Chat.Username),
				slog.String("command", req.Command()),
				slog.Bool("callback", req.IsCallback()),
			}
			if debugOn {
				attrs = append(attrs, slog.String("text", req.Text))
			}
			lg.LogAttrs(ctx, slog.LevelInfo, "request received", attrs...)

			start := time.Now()
			resps, err := next(ctx, req)

			logged := resps
			if !debugOn {
				logged = lo.Map(resps, func(r botx.Response, _ int) botx.Response {
					return botx.Response{ChatID: r.ChatID, EditMessageID: r.EditMessageID}
				})
			}

			lg.LogAttrs(ctx, slog.LevelInfo, "request processed",
				slog.Any("responses", logged),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("err", err),
			)

			return resps, err
		}
	}
}

// Recover turns a panic in the handler into its error.
func Recover(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) (resps []botx.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					lg.ErrorCtx(ctx, "panic recovered",
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())))
					resps, err = nil, fmt.Errorf("panic: %v", r)
				}
			}()

			return next(ctx, req)
		}
	}
}
