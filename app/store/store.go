// Package store contains persisted entities and their storages.
package store

import (
	"errors"
	"time"
)

// ErrNotFound is an error that is returned when the requested entity is not found.
var ErrNotFound = errors.New("not found")

// Chat is a chat the bot has talked to.
type Chat struct {
	ChatID    string    `json:"chat_id"`
	Username  string    `json:"username"`
	FirstSeen time.Time `json:"first_seen"`
}
