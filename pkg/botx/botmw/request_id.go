package botmw

import (
	"context"
	"fmt"

	"github.com/Semior001/hnsearch/pkg/botx"
	"github.com/Semior001/hnsearch/pkg/logx"
	"github.com/google/uuid"
)

// RequestID puts a request id into the context, unless
// the context already carries one.
func RequestID() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			if _, ok := logx.RequestIDFromContext(ctx); !ok {
				ctx = logx.ContextWithRequestID(ctx, uuid.NewString())
			}
			return next(ctx, req)
		}
	}
}

// ReplyOnError makes sure the requester learns about a failed request:
// replies addressed to the requester get the request id appended, and
// if there are none, msg is sent instead. Replies to other chats are
// left as they are.
func ReplyOnError(msg string) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			resps, err := next(ctx, req)
			if err == nil {
				return resps, nil
			}

			reqID, _ := logx.RequestIDFromContext(ctx)
			suffix := fmt.Sprintf("\n\nRequest ID: `%s`", reqID)

			replied := false
			for i := range resps {
				if resps[i].ChatID != req.Chat.ID {
					continue
				}
				resps[i].Text += suffix
				replied = true
			}

			if !replied {
				resps = append(resps, botx.Response{ChatID: req.Chat.ID, Text: msg + suffix})
			}

			return resps, err
		}
	}
}
