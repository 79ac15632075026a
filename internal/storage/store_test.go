package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_MembersInFirstSeenOrder(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 20, DisplayName: "Bob"}))
	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 10, DisplayName: "Alice"}))
	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 30, DisplayName: "sushibot", IsBot: true}))

	members, err := store.Members(1)
	require.NoError(t, err)
	assert.Equal(t, []Member{
		{ChatID: 1, UserID: 20, DisplayName: "Bob"},
		{ChatID: 1, UserID: 10, DisplayName: "Alice"},
		{ChatID: 1, UserID: 30, DisplayName: "sushibot", IsBot: true},
	}, members)
}

func TestSQLiteStore_UpsertKeepsPosition(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 10, DisplayName: "Alice"}))
	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 20, DisplayName: "Bob"}))
	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 10, DisplayName: "Alice Smith"}))

	members, err := store.Members(1)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Alice Smith", members[0].DisplayName)
	assert.Equal(t, "Bob", members[1].DisplayName)
}

func TestSQLiteStore_RemoveMember(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 10, DisplayName: "Alice"}))
	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 20, DisplayName: "Bob"}))
	require.NoError(t, store.RemoveMember(1, 10))

	members, err := store.Members(1)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, int64(20), members[0].UserID)
}

func TestSQLiteStore_ChatsAreIsolated(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.UpsertMember(Member{ChatID: 1, UserID: 10, DisplayName: "Alice"}))
	require.NoError(t, store.UpsertMember(Member{ChatID: 2, UserID: 10, DisplayName: "Alice"}))
	require.NoError(t, store.RemoveMember(2, 10))

	members, err := store.Members(1)
	require.NoError(t, err)
	assert.Len(t, members, 1)

	members, err = store.Members(2)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestSQLiteStore_ScrapeRuns(t *testing.T) {
	store := newTestStore(t)

	last, err := store.LastSuccessfulRun()
	require.NoError(t, err)
	assert.Nil(t, last)

	ok, err := store.StartRun()
	require.NoError(t, err)
	assert.NotEmpty(t, ok.ID)
	require.NoError(t, store.FinishRun(ok, 42, nil))
	assert.True(t, ok.Succeeded())

	failed, err := store.StartRun()
	require.NoError(t, err)
	require.NoError(t, store.FinishRun(failed, 0, errors.New("boom")))
	assert.False(t, failed.Succeeded())

	last, err = store.LastSuccessfulRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, ok.ID, last.ID)
	assert.Equal(t, 42, last.Entries)
}
