// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/Semior001/hnsearch/pkg/botx"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"
)

// Telegram is a controller that handles requests from telegram.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	updates chan botx.Request

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewTelegram returns a new telegram bot controller.
func NewTelegram(lg *slog.Logger, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	return &Telegram{
		log:     lg,
		api:     api,
		updates: make(chan botx.Request, bufferSize),
		stopped: make(chan struct{}),
	}, nil
}

// Run runs telegram bot listener until Stop is called.
// The channel returned by Updates is closed when Run returns.
func (b *Telegram) Run() {
	defer close(b.updates)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		var update tgbotapi.Update
		select {
		case <-b.stopped:
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			update = upd
		}

		req, ok := b.request(update)
		if !ok {
			continue
		}

		select {
		case b.updates <- req:
		case <-b.stopped:
			return
		}
	}
}

func (b *Telegram) request(update tgbotapi.Update) (botx.Request, bool) {
	if cb := update.CallbackQuery; cb != nil {
		if cb.Message == nil || cb.Message.Chat == nil || cb.Data == "" {
			return botx.Request{}, false
		}

		// stop the loading indicator on the button right away
		if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			b.log.Warn("failed to answer callback query", slog.Any("err", err))
		}

		return botx.Request{
			MessageID:  strconv.Itoa(cb.Message.MessageID),
			CallbackID: cb.ID,
			Chat: botx.Chat{
				ID:       strconv.FormatInt(cb.Message.Chat.ID, 10),
				Username: cb.From.UserName,
			},
			Text: cb.Data,
		}, true
	}

	if update.Message == nil || update.Message.Chat == nil || update.Message.Text == "" {
		return botx.Request{}, false
	}

	return botx.Request{
		MessageID: strconv.Itoa(update.Message.MessageID),
		Chat: botx.Chat{
			ID:       strconv.FormatInt(update.Message.Chat.ID, 10),
			Username: update.Message.Chat.UserName,
		},
		Text: update.Message.Text,
	}, true
}

// Stop stops telegram bot listener. It is safe to call Stop more than once.
func (b *Telegram) Stop() {
	b.stopOnce.Do(func() {
		close(b.stopped)
		b.api.StopReceivingUpdates()
	})
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request {
	return b.updates
}

// SendMessage sends message to telegram user, or edits the message
// if the response says so.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id: %w", err)
	}

	if resp.EditMessageID != "" {
		return b.edit(chatID, resp)
	}

	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if len(resp.Buttons) > 0 {
		msg.ReplyMarkup = keyboard(resp.Buttons)
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func (b *Telegram) edit(chatID int64, resp botx.Response) error {
	msgID, err := strconv.Atoi(resp.EditMessageID)
	if err != nil {
		return fmt.Errorf("parse edit message id: %w", err)
	}

	msg := tgbotapi.NewEditMessageText(chatID, msgID, resp.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if len(resp.Buttons) > 0 {
		kb := keyboard(resp.Buttons)
		msg.ReplyMarkup = &kb
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}

	return nil
}

func keyboard(rows [][]botx.Button) tgbotapi.InlineKeyboardMarkup {
	kb := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		btns := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			btns = append(btns, tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data))
		}
		kb = append(kb, btns)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}
