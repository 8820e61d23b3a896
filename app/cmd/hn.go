package cmd

import (
	"net/http"
	"time"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/Semior001/hnsearch/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// HNGroup defines parameters of the search API.
type HNGroup struct {
	BaseURL string        `long:"base-url" env:"BASE_URL" default:"https://hn.algolia.com/api/v1" description:"search API base url"`
	Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"10s" description:"timeout for search requests"`
	RPS     float64       `long:"rps" env:"RPS" default:"5" description:"max search requests per second, 0 for no limit"`
}

const userAgent = "hnsearch"

func newRequester(lg *slog.Logger, timeout time.Duration, secretHeaders ...string) *requester.Requester {
	return requester.New(
		http.Client{Timeout: timeout},
		middleware.Header("User-Agent", userAgent),
		logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{
			Level:         slog.LevelDebug,
			SecretHeaders: secretHeaders,
		}),
	)
}

func (g HNGroup) client(lg *slog.Logger) *hn.Client {
	return hn.NewClient(lg, newRequester(lg, g.Timeout), g.RPS)
}
