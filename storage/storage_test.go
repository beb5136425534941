package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "guard.sqlite"))
	require.NoError(t, err)
	return s
}

func TestNewMigratesSchema(t *testing.T) {
	s := newTestStorage(t)

	for _, model := range []any{&Chat{}, &SafeEntry{}, &BanEntry{}, &Folder{}, &FolderMember{}, &Link{}} {
		require.True(t, s.db.Migrator().HasTable(model), "missing table for %T", model)
	}
}
