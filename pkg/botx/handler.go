package botx

import (
	"context"
	"strings"
)

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps a handler.
type Middleware func(Handler) Handler

// Request is a request for handler: either a text message or a button press.
type Request struct {
	MessageID string
	// CallbackID is set when the request comes from an inline button,
	// MessageID then points to the message the button is attached to.
	CallbackID string
	Chat       Chat
	Text       string
}

// Command returns the command of the request without the bot mention,
// e.g. "/search" for "/search@bot golang". Plain text has no command.
func (r Request) Command() string {
	if !strings.HasPrefix(r.Text, "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(strings.TrimSpace(r.Text), " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd
}

// Args returns the text after the command, trimmed.
func (r Request) Args() string {
	if r.Command() == "" {
		return strings.TrimSpace(r.Text)
	}
	_, args, _ := strings.Cut(strings.TrimSpace(r.Text), " ")
	return strings.TrimSpace(args)
}

// IsCallback reports whether the request comes from an inline button.
func (r Request) IsCallback() bool { return r.CallbackID != "" }

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// Response is a response from handler.
type Response struct {
	// EditMessageID, if set, makes the response replace the text and
	// buttons of the message instead of sending a new one.
	EditMessageID string
	ChatID        string
	Text          string
	Buttons       [][]Button
}

// Button is an inline button that sends Data back as the request text when pressed.
type Button struct {
	Text string
	Data string
}

// NotFound is a default handler for not found commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
