// Package bot contains routers and controllers for the search bot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Semior001/hnsearch/app/hn"
	"github.com/Semior001/hnsearch/app/reader"
	"github.com/Semior001/hnsearch/app/search"
	"github.com/Semior001/hnsearch/app/store"
	"github.com/Semior001/hnsearch/pkg/botx"
	"github.com/Semior001/hnsearch/pkg/botx/botmw"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_chats.go . Chats
//go:generate moq -out mock_reader.go . Reader

// Chats is a registry of chats the bot has talked to.
type Chats interface {
	PutChat(ctx context.Context, c store.Chat) error
	GetChat(ctx context.Context, id string) (store.Chat, error)
	ListChats(ctx context.Context) ([]store.Chat, error)
}

// Reader loads the page a story links to.
type Reader interface {
	Read(ctx context.Context, story hn.Story) (reader.Article, error)
	SummaryStat() (stats cache.Stats, ok bool)
}

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	Sessions       *Sessions
	Chats          Chats
	Reader         Reader
	API            botx.API
	AdminIDs       []string
	HandlerTimeout time.Duration
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.ReplyOnError("Something went wrong. Please, ask admin for help."),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
		botmw.Recover(c.Logger),
		c.trackChat,
		c.withSession,
	)

	rtr.NotFound(c.search)
	rtr.Add("/start", c.start)
	rtr.Add("/help", c.help)
	rtr.Add("/search", c.search)
	rtr.Add("/more", c.more)
	rtr.Add("/less", c.less)
	rtr.Add("/sort", c.sort)
	rtr.Add("/remove", c.remove)
	rtr.Add("/last", c.last)
	rtr.Add("/history", c.history)
	rtr.Add("/read", c.read)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(c.ensureAdmin)

		rtr.Add("/sessions", c.sessions)
		rtr.Add("/chats", c.chats)
	})

	return rtr
}

const helpText = "Send me anything to search Hacker News for it.\n\n" +
	"/search <term> - search for the term\n" +
	"/more, /less - next and previous page\n" +
	"/sort <none|title|author|comments|points> - sort the page, twice to reverse\n" +
	"/remove <n> - hide the story from the page\n" +
	"/read <n> - read the story\n" +
	"/history - recent searches\n" +
	"/last <term> - search for a recent term again"

func (c *Ctrl) start(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	ctrl := mustSession(ctx)
	if !freshSession(ctx) {
		ctrl.FetchCurrent(ctx)
	}

	resps, err := c.page(req, ctrl)
	if err != nil {
		return nil, err
	}

	return append([]botx.Response{{ChatID: req.Chat.ID, Text: helpText}}, resps...), nil
}

func (c *Ctrl) help(_ context.Context, req botx.Request) ([]botx.Response, error) {
	return []botx.Response{{ChatID: req.Chat.ID, Text: helpText}}, nil
}

func (c *Ctrl) search(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	term := req.Args()
	if term == "" || (req.Command() != "" && req.Command() != "/search") {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Please, send me a search term.\n\n" + helpText}}, nil
	}

	ctrl := mustSession(ctx)
	if err := ctrl.SetTerm(ctx, term); err != nil {
		return nil, fmt.Errorf("set search term: %w", err)
	}
	ctrl.Submit(ctx)

	return c.page(req, ctrl)
}

func (c *Ctrl) more(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	ctrl := mustSession(ctx)
	if ctrl.Snapshot().Stories.Page >= hn.MaxPage {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "This is the last page."}}, nil
	}

	ctrl.More(ctx)
	return c.page(req, ctrl)
}

func (c *Ctrl) less(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	ctrl := mustSession(ctx)
	if ctrl.Snapshot().Stories.Page <= 0 {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "This is the first page."}}, nil
	}

	ctrl.Less(ctx)
	return c.page(req, ctrl)
}

func (c *Ctrl) sort(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	key, err := search.ParseSortKey(req.Args())
	if err != nil {
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "I can sort only by none, title, author, comments or points.",
		}}, nil
	}

	ctrl := mustSession(ctx)
	ctrl.Sort(key)
	return c.page(req, ctrl)
}

func (c *Ctrl) remove(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	ctrl := mustSession(ctx)

	story, ok := findStory(ctrl.Snapshot(), req.Args())
	if !ok || !ctrl.Remove(story.ObjectID) {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "There is no such story on the page."}}, nil
	}

	return c.page(req, ctrl)
}

func (c *Ctrl) last(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	term := req.Args()
	if term == "" {
		return c.history(ctx, req)
	}

	ctrl := mustSession(ctx)
	if err := ctrl.LastSearch(ctx, term); err != nil {
		return nil, fmt.Errorf("search for last term: %w", err)
	}

	return c.page(req, ctrl)
}

func (c *Ctrl) history(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	terms := mustSession(ctx).Snapshot().LastSearches
	if len(terms) == 0 {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "No recent searches yet."}}, nil
	}

	return []botx.Response{{
		ChatID:  req.Chat.ID,
		Text:    "Recent searches:",
		Buttons: historyButtons(terms),
	}}, nil
}

func (c *Ctrl) read(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	story, ok := findStory(mustSession(ctx).Snapshot(), req.Args())
	if !ok {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "There is no such story on the page."}}, nil
	}

	article, err := c.Reader.Read(ctx, story)
	switch {
	case errors.Is(err, reader.ErrNoURL):
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "This story has no link, read it at " + storyLink(story),
		}}, nil
	case errors.Is(err, reader.ErrTooManyTokens):
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   "The article is too long to summarize, read it at " + storyLink(story),
		}}, nil
	case err != nil:
		return nil, fmt.Errorf("read story %s: %w", story.ObjectID, err)
	}

	text, err := renderArticle(article)
	if err != nil {
		return nil, err
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: text}}, nil
}

func (c *Ctrl) sessions(_ context.Context, req botx.Request) ([]botx.Response, error) {
	stats := c.Sessions.Stat()
	text := fmt.Sprintf("sessions: %d, hits: %d, misses: %d, evictions: %d, added: %d\n",
		c.Sessions.Len(), stats.Hits, stats.Misses, stats.Evicted, stats.Added)

	if sum, ok := c.Reader.SummaryStat(); ok {
		text += fmt.Sprintf("summaries: hits: %d, misses: %d, evictions: %d, added: %d\n",
			sum.Hits, sum.Misses, sum.Evicted, sum.Added)
	}

	return []botx.Response{{ChatID: req.Chat.ID, Text: text}}, nil
}

func (c *Ctrl) chats(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	chats, err := c.Chats.ListChats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	sb := &strings.Builder{}
	_, _ = sb.WriteString("Chats:\n")
	for _, ch := range chats {
		_, _ = sb.WriteString(fmt.Sprintf("id: %s, username: %s, first seen: %s\n",
			ch.ChatID, escapeMarkdown(ch.Username), ch.FirstSeen.Format(time.RFC3339)))
	}

	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text:   sb.String(),
	}}, nil
}

// page renders the current page of the session, replacing the message
// with the pressed button if there is one.
func (c *Ctrl) page(req botx.Request, ctrl *search.Controller) ([]botx.Response, error) {
	text, buttons, err := renderPage(ctrl.Snapshot())
	if err != nil {
		return nil, err
	}

	resp := botx.Response{ChatID: req.Chat.ID, Text: text, Buttons: buttons}
	if req.IsCallback() {
		resp.EditMessageID = req.MessageID
	}

	return []botx.Response{resp}, nil
}

// findStory looks the story up on the page by its id or by its 1-based
// position in the sorted list.
func findStory(v search.View, arg string) (hn.Story, bool) {
	if arg == "" {
		return hn.Story{}, false
	}

	if s, ok := lo.Find(v.Sorted, func(s hn.Story) bool { return s.ObjectID == arg }); ok {
		return s, true
	}

	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(v.Sorted) {
		return hn.Story{}, false
	}

	return v.Sorted[idx-1], true
}

func (c *Ctrl) ensureAdmin(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		if !lo.Contains(c.AdminIDs, req.Chat.ID) {
			return botx.NotFound(ctx, req)
		}

		return h(ctx, req)
	}
}

func (c *Ctrl) trackChat(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		_, err := c.Chats.GetChat(ctx, req.Chat.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			ch := store.Chat{ChatID: req.Chat.ID, Username: req.Chat.Username, FirstSeen: time.Now()}
			if err = c.Chats.PutChat(ctx, ch); err != nil {
				return nil, fmt.Errorf("register chat: %w", err)
			}

			if err = c.NotifyAdmins(ctx, fmt.Sprintf("new chat: %s", escapeMarkdown(req.Chat.Username))); err != nil {
				c.Logger.WarnCtx(ctx, "notify admins about new chat", slog.Any("err", err))
			}
		case err != nil:
			return nil, fmt.Errorf("get chat: %w", err)
		}

		return h(ctx, req)
	}
}

func (c *Ctrl) withSession(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		ctrl, created, err := c.Sessions.Get(ctx, req.Chat.ID)
		if err != nil {
			return nil, fmt.Errorf("get session: %w", err)
		}

		// a new session shows the current query right away, so buttons
		// of messages sent before it expired keep working
		if created {
			ctrl.FetchCurrent(ctx)
		}

		return h(contextWithSession(ctx, ctrl, created), req)
	}
}

func mustSession(ctx context.Context) *search.Controller {
	ctrl, ok := sessionFromContext(ctx)
	if !ok {
		panic("bot: no session in context")
	}
	return ctrl
}

// NotifyAdmins sends a message to all admins.
func (c *Ctrl) NotifyAdmins(ctx context.Context, msg string) error {
	for _, adminID := range c.AdminIDs {
		if err := c.API.SendMessage(ctx, botx.Response{
			ChatID: adminID,
			Text:   msg,
		}); err != nil {
			return fmt.Errorf("send message to admin: %w", err)
		}
	}

	return nil
}
