package snapshot

import (
	"context"
	"testing"

	"github.com/SaiNageswarS/resume-chat/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := ProvideMemoryStore()
	ctx := context.Background()

	snap := &SessionSnapshot{
		Resume: "R",
		Chat: []db.ChatMessage{
			{Role: db.RoleUser, Text: "hi", Ts: 100},
			{Role: db.RoleAssistant, Text: "hey", Ts: 101},
		},
	}

	require.NoError(t, store.Write(ctx, "s1", snap))

	got, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Resume, got.Resume)
	assert.Equal(t, snap.Chat, got.Chat)
}

func TestMemoryStore_AbsentIsNotAnError(t *testing.T) {
	store := ProvideMemoryStore()

	got, err := store.Read(context.Background(), "never-written")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_CorruptBlobIsAbsent(t *testing.T) {
	store := ProvideMemoryStore()
	store.SeedRaw("s1", []byte("{not json"))

	got, err := store.Read(context.Background(), "s1")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_OverwritesPriorSnapshot(t *testing.T) {
	store := ProvideMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, "s1", &SessionSnapshot{Resume: "old"}))
	require.NoError(t, store.Write(ctx, "s1", &SessionSnapshot{Resume: "new"}))

	got, err := store.Read(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "new", got.Resume)
}

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "sessions/abc/latest.json", ObjectPath("abc"))
}
