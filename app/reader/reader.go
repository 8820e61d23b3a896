package reader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Semior001/hnsearch/app/hn"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
	"golang.org/x/exp/slog"
)

// ErrNoURL is returned for stories that link to nothing, e.g. "Ask HN" posts.
var ErrNoURL = errors.New("story has no url")

// Reader loads story pages.
type Reader struct {
	log       *slog.Logger
	rq        *requester.Requester
	chatGPT   *ChatGPT
	extractor Extractor
}

// NewReader creates new Reader. If chatGPT is nil, articles are not summarized.
func NewReader(lg *slog.Logger, rq *requester.Requester, chatGPT *ChatGPT) *Reader {
	return &Reader{log: lg, rq: rq, chatGPT: chatGPT}
}

// SummaryStat returns stats of the bullet points cache,
// ok is false if articles are not summarized.
func (r *Reader) SummaryStat() (stats cache.Stats, ok bool) {
	if r.chatGPT == nil {
		return cache.Stats{}, false
	}
	return r.chatGPT.cacheStat(), true
}

// Read loads the page the story links to.
func (r *Reader) Read(ctx context.Context, story hn.Story) (Article, error) {
	if story.URL == "" {
		return Article{}, ErrNoURL
	}

	r.log.DebugCtx(ctx, "reading article", slog.String("url", story.URL))

	u, err := url.Parse(story.URL)
	if err != nil {
		return Article{}, fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return Article{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.rq.Do(req)
	if err != nil {
		return Article{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			r.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Article{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	article, err := r.extractor.Extract(resp.Body, u)
	if err != nil {
		return Article{}, fmt.Errorf("extract article: %w", err)
	}
	article.URL = story.URL
	if article.Title == "" {
		article.Title = story.Title
	}
	if article.Author == "" {
		article.Author = story.Author
	}

	if r.chatGPT == nil {
		return article, nil
	}

	if article.BulletPoints, err = r.chatGPT.BulletPoints(ctx, article); err != nil {
		return Article{}, fmt.Errorf("get bullet points: %w", err)
	}

	return article, nil
}
