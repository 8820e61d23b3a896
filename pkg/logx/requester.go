package logx

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// RoundTripperOpts contains options for client logger.
type RoundTripperOpts struct {
	Level slog.Level
	// SecretHeaders are logged as "***", names are canonicalized.
	SecretHeaders []string
}

const maxLoggedBody = 1024

// LoggingRoundTripper logs every outgoing request and its outcome.
// Bodies are logged up to maxLoggedBody bytes and stay readable.
func LoggingRoundTripper(lg *slog.Logger, opts RoundTripperOpts) middleware.RoundTripperHandler {
	secret := lo.Map(opts.SecretHeaders, func(h string, _ int) string { return http.CanonicalHeaderKey(h) })

	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()

			var reqBody string
			req.Body, reqBody = peekBody(req.Body)

			lg.LogAttrs(ctx, opts.Level, "request sent", slog.Group("request",
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
				slog.Any("headers", maskHeaders(req.Header, secret)),
				slog.String("body", reqBody),
			))

			start := time.Now()
			resp, err := next.RoundTrip(req)
			elapsed := time.Since(start)

			if err != nil {
				lg.LogAttrs(ctx, opts.Level, "request failed",
					slog.String("url", req.URL.String()),
					slog.Duration("elapsed", elapsed),
					slog.Any("err", err),
				)
				return resp, err
			}

			var respBody string
			resp.Body, respBody = peekBody(resp.Body)

			lg.LogAttrs(ctx, opts.Level, "response received",
				slog.Group("response",
					slog.Int("status", resp.StatusCode),
					slog.Any("headers", maskHeaders(resp.Header, secret)),
					slog.String("body", respBody),
				),
				slog.Duration("elapsed", elapsed),
			)

			return resp, nil
		})
	}
}

func maskHeaders(h http.Header, secret []string) map[string]string {
	res := make(map[string]string, len(h))
	for k, vals := range h {
		if lo.Contains(secret, http.CanonicalHeaderKey(k)) {
			res[k] = "***"
			continue
		}
		res[k] = strings.Join(vals, ",")
	}
	return res
}

// peekBody reads the head of the body and returns a reader
// that yields the whole body again, along with the head flattened
// into a single line.
func peekBody(body io.ReadCloser) (io.ReadCloser, string) {
	if body == nil || body == http.NoBody {
		return body, ""
	}

	head := &bytes.Buffer{}
	n, err := io.CopyN(head, body, maxLoggedBody)

	logged := strings.NewReplacer("\n", "", "\r", "", "\t", "").Replace(head.String())
	if n == maxLoggedBody {
		logged += "..."
	}

	if err != nil {
		// body is exhausted, nothing is left past the head
		_ = body.Close()
		return io.NopCloser(bytes.NewReader(head.Bytes())), logged
	}

	return readCloser{Reader: io.MultiReader(head, body), Closer: body}, logged
}

type readCloser struct {
	io.Reader
	io.Closer
}
