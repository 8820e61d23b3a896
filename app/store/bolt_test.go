package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func newTestBolt(t *testing.T) *Bolt {
	b, err := NewBolt(t.TempDir(), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, b.Close()) })
	return b
}

func TestBolt_Values(t *testing.T) {
	ctx := context.Background()
	b := newTestBolt(t)

	_, err := b.Get(ctx, "search")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Set(ctx, "search", "React"))
	require.NoError(t, b.Set(ctx, "search/42", "go"))

	v, err := b.Get(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "React", v)

	require.NoError(t, b.Set(ctx, "search", "rust"))
	v, err = b.Get(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "rust", v)

	v, err = b.Get(ctx, "search/42")
	require.NoError(t, err)
	assert.Equal(t, "go", v)
}

func TestBolt_Chats(t *testing.T) {
	ctx := context.Background()
	b := newTestBolt(t)

	_, err := b.GetChat(ctx, "1")
	assert.ErrorIs(t, err, ErrNotFound)

	seen := time.Date(2023, time.March, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, b.PutChat(ctx, Chat{ChatID: "2", Username: "bob", FirstSeen: seen}))
	require.NoError(t, b.PutChat(ctx, Chat{ChatID: "1", Username: "amy", FirstSeen: seen}))

	c, err := b.GetChat(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, Chat{ChatID: "2", Username: "bob", FirstSeen: seen}, c)

	chats, err := b.ListChats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Chat{
		{ChatID: "1", Username: "amy", FirstSeen: seen},
		{ChatID: "2", Username: "bob", FirstSeen: seen},
	}, chats)
}

func TestBolt_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := NewBolt(dir, time.Second)
	require.NoError(t, err)
	require.NoError(t, b.Set(ctx, "search", "zig"))
	require.NoError(t, b.Close())

	b, err = NewBolt(dir, time.Second)
	require.NoError(t, err)
	defer b.Close()

	v, err := b.Get(ctx, "search")
	require.NoError(t, err)
	assert.Equal(t, "zig", v)
}

func TestBolt_LockedByAnotherProcess(t *testing.T) {
	dir := t.TempDir()

	b, err := NewBolt(dir, time.Second)
	require.NoError(t, err)
	defer b.Close()

	start := time.Now()
	_, err = NewBolt(dir, 50*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, bolt.ErrTimeout)
	assert.Less(t, time.Since(start), 5*time.Second)
}
