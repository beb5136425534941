package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalEntryAppliesToEveryChat(t *testing.T) {
	s := newTestStorage(t)

	changed, err := s.AddListEntry(ListSafe, 42, GlobalScope())
	require.NoError(t, err)
	require.True(t, changed)

	for _, chatID := range []int64{-100123, -200456, 7} {
		member, err := s.IsMember(ListSafe, 42, chatID)
		require.NoError(t, err)
		require.True(t, member, "chat %d", chatID)
	}

	// No per-chat entry exists for any of those chats.
	ids, err := s.ListEntries(ListSafe, ChatScope(-100123))
	require.NoError(t, err)
	require.Empty(t, ids)

	global, err := s.IsGlobalMember(ListSafe, 42)
	require.NoError(t, err)
	require.True(t, global)
}

func TestChatEntryIsScopedToItsChat(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.AddListEntry(ListBan, 42, ChatScope(100))
	require.NoError(t, err)

	banned, err := s.IsMember(ListBan, 42, 100)
	require.NoError(t, err)
	require.True(t, banned)

	banned, err = s.IsMember(ListBan, 42, 200)
	require.NoError(t, err)
	require.False(t, banned)

	global, err := s.IsGlobalMember(ListBan, 42)
	require.NoError(t, err)
	require.False(t, global)
}

func TestAddListEntryIsIdempotent(t *testing.T) {
	s := newTestStorage(t)

	changed, err := s.AddListEntry(ListBan, 7, ChatScope(100))
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.AddListEntry(ListBan, 7, ChatScope(100))
	require.NoError(t, err)
	require.False(t, changed, "second add must be an absorbed no-op")

	ids, err := s.ListEntries(ListBan, ChatScope(100))
	require.NoError(t, err)
	require.Equal(t, []int64{7}, ids)
}

func TestRemoveAbsentEntryIsNoop(t *testing.T) {
	s := newTestStorage(t)

	changed, err := s.RemoveListEntry(ListSafe, 7, GlobalScope())
	require.NoError(t, err)
	require.False(t, changed)
}

func TestRemoveMatchesScopeExactly(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.AddListEntry(ListSafe, 42, GlobalScope())
	require.NoError(t, err)
	_, err = s.AddListEntry(ListSafe, 42, ChatScope(5))
	require.NoError(t, err)

	changed, err := s.RemoveListEntry(ListSafe, 42, ChatScope(5))
	require.NoError(t, err)
	require.True(t, changed)

	exists, err := s.EntryExists(ListSafe, 42, GlobalScope())
	require.NoError(t, err)
	require.True(t, exists, "removing a per-chat entry must not touch the global one")

	_, err = s.AddListEntry(ListSafe, 42, ChatScope(5))
	require.NoError(t, err)
	changed, err = s.RemoveListEntry(ListSafe, 42, GlobalScope())
	require.NoError(t, err)
	require.True(t, changed)

	exists, err = s.EntryExists(ListSafe, 42, ChatScope(5))
	require.NoError(t, err)
	require.True(t, exists, "removing the global entry must not touch the per-chat one")
}

func TestListEntriesAscendingAndExactScope(t *testing.T) {
	s := newTestStorage(t)

	for _, userID := range []int64{30, 10, 20} {
		_, err := s.AddListEntry(ListBan, userID, ChatScope(100))
		require.NoError(t, err)
	}
	_, err := s.AddListEntry(ListBan, 5, GlobalScope())
	require.NoError(t, err)

	ids, err := s.ListEntries(ListBan, ChatScope(100))
	require.NoError(t, err)
	require.Equal(t, []int64{10, 20, 30}, ids)

	ids, err = s.ListEntries(ListBan, GlobalScope())
	require.NoError(t, err)
	require.Equal(t, []int64{5}, ids)
}

func TestSafeAndBanListsAreIndependent(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.AddListEntry(ListSafe, 42, ChatScope(100))
	require.NoError(t, err)
	_, err = s.AddListEntry(ListBan, 42, ChatScope(100))
	require.NoError(t, err)

	safe, err := s.IsMember(ListSafe, 42, 100)
	require.NoError(t, err)
	banned, err := s.IsMember(ListBan, 42, 100)
	require.NoError(t, err)
	require.True(t, safe)
	require.True(t, banned, "the store holds both; precedence is the caller's job")
}

func TestBanScenario(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.AddListEntry(ListBan, 42, ChatScope(100))
	require.NoError(t, err)

	ids, err := s.ListEntries(ListBan, ChatScope(100))
	require.NoError(t, err)
	require.Equal(t, []int64{42}, ids)

	banned, err := s.IsMember(ListBan, 42, 200)
	require.NoError(t, err)
	require.False(t, banned)

	_, err = s.AddListEntry(ListBan, 42, GlobalScope())
	require.NoError(t, err)

	banned, err = s.IsMember(ListBan, 42, 200)
	require.NoError(t, err)
	require.True(t, banned)
}
