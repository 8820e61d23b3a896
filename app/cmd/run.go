// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/hnsearch/app/bot"
	"github.com/Semior001/hnsearch/app/reader"
	"github.com/Semior001/hnsearch/app/store"
	"github.com/Semior001/hnsearch/pkg/botx"
	"github.com/Semior001/hnsearch/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Run is a command to run the bot.
type Run struct {
	Bot struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"2m" description:"timeout for requests"`

		Telegram struct {
			Token string `long:"token" env:"TOKEN" description:"telegram token"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

		AdminIDs []string `long:"admin-ids" env:"ADMIN_IDS" env-delim:"," description:"admin IDs"`
		Workers  int      `long:"workers" env:"WORKERS" default:"10" description:"amount of update handlers"`

		Sessions struct {
			TTL time.Duration `long:"ttl" env:"TTL" default:"24h" description:"time to keep an idle search session"`
			Max int           `long:"max" env:"MAX" default:"1000" description:"max amount of search sessions"`
		} `group:"sessions" namespace:"sessions" env-namespace:"SESSIONS"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`

	HN HNGroup `group:"hn" namespace:"hn" env-namespace:"HN"`

	Reader struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"15s" description:"timeout for loading articles"`

		OpenAI struct {
			Token     string        `long:"token" env:"TOKEN" description:"OpenAI token, articles are not summarized if empty"`
			MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"1000" description:"max tokens for OpenAI"`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for OpenAI calls"`
		} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	} `group:"reader" namespace:"reader" env-namespace:"READER"`

	StorePath        string        `long:"store-path" env:"STORE_PATH" default:"." description:"parent dir for bolt files"`
	StoreLockTimeout time.Duration `long:"store-lock-timeout" env:"STORE_LOCK_TIMEOUT" default:"1s" description:"how long to wait for the bolt file lock"`
}

// Execute runs the command.
func (r Run) Execute(_ []string) error {
	lg := slog.Default()

	s, err := store.NewBolt(r.StorePath, r.StoreLockTimeout)
	if err != nil {
		return fmt.Errorf("make store: %w", err)
	}

	defer func() {
		if err := s.Close(); err != nil {
			lg.Error("close bolt store", slog.Any("err", err))
		}
	}()

	api, err := botapi.NewTelegram(
		lg.With(slog.String("prefix", "telegram")),
		r.Bot.Telegram.Token,
		100,
	)
	if err != nil {
		return fmt.Errorf("make telegram controller: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger: lg.With(slog.String("prefix", "bot")),
		Sessions: bot.NewSessions(
			lg.With(slog.String("prefix", "search")),
			r.HN.client(lg.With(slog.String("prefix", "hn"))),
			s,
			r.HN.BaseURL,
			r.Bot.Sessions.TTL,
			r.Bot.Sessions.Max,
		),
		Chats:          s,
		Reader:         r.reader(lg),
		API:            api,
		AdminIDs:       r.Bot.AdminIDs,
		HandlerTimeout: r.Bot.Timeout,
	}

	b := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(r.Bot.Workers),
		botx.WithSendTimeout(30*time.Second),
	)

	if err = ctrl.NotifyAdmins(context.Background(), "bot started"); err != nil {
		return fmt.Errorf("notify admins about started bot: %w", err)
	}

	runErr := serve(lg, b, api)

	// updates are no longer received here, but messages can still be sent
	msg := "bot stopped"
	if runErr != nil {
		msg = fmt.Sprintf("bot stopped with error: %v", runErr)
	}
	if err = ctrl.NotifyAdmins(context.Background(), msg); err != nil {
		lg.Warn("failed to notify admins about stopped bot", slog.Any("err", err))
	}

	return runErr
}

// serve runs the bot until a termination signal arrives or the telegram
// api stops delivering updates.
func serve(lg *slog.Logger, b *botx.Bot, api *botapi.Telegram) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		lg.Info("starting telegram api")
		api.Run()
		lg.Warn("telegram api stopped listening for updates")
		return nil
	})
	ewg.Go(func() error {
		lg.Info("starting bot")
		b.Run(ctx)
		lg.Warn("bot stopped")

		// unblocks the api if the bot stopped on signal
		api.Stop()

		if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	return ewg.Wait()
}

func (r Run) reader(lg *slog.Logger) *reader.Reader {
	var gpt *reader.ChatGPT
	if r.Reader.OpenAI.Token != "" {
		gpt = reader.NewChatGPT(
			lg.With(slog.String("prefix", "chatgpt")),
			&http.Client{Timeout: r.Reader.OpenAI.Timeout},
			r.Reader.OpenAI.Token,
			r.Reader.OpenAI.MaxTokens,
		)
	}

	return reader.NewReader(
		lg.With(slog.String("prefix", "reader")),
		newRequester(lg.With(slog.String("prefix", "reader")), r.Reader.Timeout),
		gpt,
	)
}
