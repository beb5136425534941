package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpsertChatInsertsAndUpdates(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.UpsertChat(-100123, "Old Title", ChatKindGroup))
	require.NoError(t, s.UpsertChat(-100123, "New Title", ChatKindSupergroup))

	chats, err := s.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 1)
	require.Equal(t, int64(-100123), chats[0].ID)
	require.Equal(t, "New Title", chats[0].Title)
	require.Equal(t, ChatKindSupergroup, chats[0].Kind)
}

func TestListChatsOrderedByTitle(t *testing.T) {
	s := newTestStorage(t)

	require.NoError(t, s.UpsertChat(-3, "Charlie", ChatKindChannel))
	require.NoError(t, s.UpsertChat(-1, "Alpha", ChatKindGroup))
	require.NoError(t, s.UpsertChat(-2, "Bravo", ChatKindGroup))

	chats, err := s.ListChats()
	require.NoError(t, err)
	require.Len(t, chats, 3)
	require.Equal(t, "Alpha", chats[0].Title)
	require.Equal(t, "Bravo", chats[1].Title)
	require.Equal(t, "Charlie", chats[2].Title)
}
