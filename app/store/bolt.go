package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	valuesBktName = "values"
	chatsBktName  = "chats"
)

// Bolt is a storage that uses BoltDB as a backend.
type Bolt struct {
	db *bolt.DB
}

// NewBolt creates new Bolt storage in the given directory.
// It fails if the file lock, held by another process using the same
// directory, is not released within lockTimeout. Zero waits forever.
func NewBolt(dir string, lockTimeout time.Duration) (*Bolt, error) {
	db, err := bolt.Open(path.Join(dir, "hnsearch.db"), 0600, &bolt.Options{Timeout: lockTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to make boltdb for %s: %w", dir, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{valuesBktName, chatsBktName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create top-level bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("make buckets: %w", err)
	}

	return &Bolt{db: db}, nil
}

// Get returns the value stored under the key.
func (b *Bolt) Get(_ context.Context, key string) (v string, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		bts := tx.Bucket([]byte(valuesBktName)).Get([]byte(key))
		if bts == nil {
			return ErrNotFound
		}
		v = string(bts)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("view storage: %w", err)
	}
	return v, nil
}

// Set puts the value under the key.
func (b *Bolt) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(valuesBktName)).Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("put value: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}
	return nil
}

// PutChat puts chat to storage.
func (b *Bolt) PutChat(_ context.Context, c Chat) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(chatsBktName))

		bts, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshal chat: %w", err)
		}

		if err := bkt.Put([]byte(c.ChatID), bts); err != nil {
			return fmt.Errorf("put chat to storage: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("update storage: %w", err)
	}

	return nil
}

// GetChat returns chat from storage.
func (b *Bolt) GetChat(_ context.Context, id string) (c Chat, err error) {
	err = b.db.View(func(tx *bolt.Tx) error {
		bts := tx.Bucket([]byte(chatsBktName)).Get([]byte(id))
		if bts == nil {
			return ErrNotFound
		}

		if err := json.Unmarshal(bts, &c); err != nil {
			return fmt.Errorf("unmarshal chat: %w", err)
		}

		return nil
	})
	if err != nil {
		return Chat{}, fmt.Errorf("view storage: %w", err)
	}

	return c, nil
}

// ListChats returns all chats from storage, ordered by id.
func (b *Bolt) ListChats(context.Context) ([]Chat, error) {
	var result []Chat
	err := b.db.View(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(chatsBktName)).ForEach(func(k, v []byte) error {
			var c Chat
			if err := json.Unmarshal(v, &c); err != nil {
				return fmt.Errorf("unmarshal chat %s: %w", k, err)
			}
			result = append(result, c)
			return nil
		})
		if err != nil {
			return fmt.Errorf("foreach: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("view storage: %w", err)
	}
	return result, nil
}

// Close closes the storage.
func (b *Bolt) Close() error { return b.db.Close() }
