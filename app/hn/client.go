package hn

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-pkgz/requester"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// Client makes requests to the search API.
type Client struct {
	log     *slog.Logger
	rq      *requester.Requester
	limiter *rate.Limiter
}

// NewClient creates a new Client. Zero rps disables rate limiting.
func NewClient(lg *slog.Logger, rq *requester.Requester, rps float64) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}

	return &Client{
		log:     lg,
		rq:      rq,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Search requests a page of stories by the prebuilt search URL.
func (c *Client) Search(ctx context.Context, u string) (Page, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Page{}, fmt.Errorf("wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.rq.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Page{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	var page Page
	if err = json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return Page{}, fmt.Errorf("decode response: %w", err)
	}

	return page, nil
}
