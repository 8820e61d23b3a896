package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Semior001/hnsearch/app/search"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"golang.org/x/exp/slog"
)

// Sessions keeps a search controller per chat. Idle sessions expire,
// only the search term of a chat outlives its session.
type Sessions struct {
	log     *slog.Logger
	fetcher search.Fetcher
	kv      search.KV
	baseURL string

	mu    sync.Mutex
	cache cache.Cache[string, *search.Controller]
}

// NewSessions makes a session registry that keeps at most maxSessions
// sessions, each for ttl since its last use.
func NewSessions(
	lg *slog.Logger,
	fetcher search.Fetcher,
	kv search.KV,
	baseURL string,
	ttl time.Duration,
	maxSessions int,
) *Sessions {
	return &Sessions{
		log:     lg,
		fetcher: fetcher,
		kv:      kv,
		baseURL: baseURL,
		cache: cache.NewCache[string, *search.Controller]().
			WithLRU().
			WithTTL(ttl).
			WithMaxKeys(maxSessions),
	}
}

// TermKey returns the storage key of the chat's search term.
func TermKey(chatID string) string { return search.TermKey + "/" + chatID }

// Get returns the session of the chat, making a new one if there is none.
func (s *Sessions) Get(ctx context.Context, chatID string) (ctrl *search.Controller, created bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl, ok := s.cache.Get(chatID); ok {
		s.cache.Set(chatID, ctrl, 0)
		return ctrl, false, nil
	}

	term := search.NewTermStore(s.kv, TermKey(chatID), search.DefaultTerm)
	if ctrl, err = search.NewController(ctx, s.log, s.fetcher, term, s.baseURL); err != nil {
		return nil, false, fmt.Errorf("make controller for chat %s: %w", chatID, err)
	}

	s.log.DebugCtx(ctx, "new session", slog.String("chat_id", chatID), slog.String("term", term.Value()))
	s.cache.Set(chatID, ctrl, 0)
	return ctrl, true, nil
}

// Stat returns stats of the session cache.
func (s *Sessions) Stat() cache.Stats { return s.cache.Stat() }

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.DeleteExpired()
	return s.cache.Len()
}

type sessionKey struct{}

type session struct {
	ctrl *search.Controller
	// fresh is set when the session was made and mounted by this request
	fresh bool
}

func sessionFromContext(ctx context.Context) (*search.Controller, bool) {
	sess, ok := ctx.Value(sessionKey{}).(session)
	return sess.ctrl, ok
}

func freshSession(ctx context.Context) bool {
	sess, _ := ctx.Value(sessionKey{}).(session)
	return sess.fresh
}

func contextWithSession(ctx context.Context, ctrl *search.Controller, fresh bool) context.Context {
	return context.WithValue(ctx, sessionKey{}, session{ctrl: ctrl, fresh: fresh})
}
