package bot

import (
	"errors"
	"path/filepath"
	"testing"

	"telegram-guard-bot/storage"

	"github.com/stretchr/testify/require"
)

type fakeModerator struct {
	banCalls   []int64
	unbanCalls []int64
	failWith   error
}

func (m *fakeModerator) BanUser(chatID, userID int64) error {
	m.banCalls = append(m.banCalls, chatID)
	return m.failWith
}

func (m *fakeModerator) UnbanUser(chatID, userID int64) error {
	m.unbanCalls = append(m.unbanCalls, chatID)
	return m.failWith
}

func newTestBot(t *testing.T) (*Bot, *fakeModerator) {
	t.Helper()

	store, err := storage.New(filepath.Join(t.TempDir(), "guard.sqlite"))
	require.NoError(t, err)

	platform := &fakeModerator{}
	return &Bot{storage: store, platform: platform, ownerID: 1}, platform
}

func TestShouldEnforce(t *testing.T) {
	tests := []struct {
		name         string
		safe, banned bool
		want         bool
	}{
		{"unknown user is allowed", false, false, false},
		{"safe user is allowed", true, false, false},
		{"banned user is enforced", false, true, true},
		{"safe suppresses enforcement even when banned", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, shouldEnforce(tt.safe, tt.banned))
		})
	}
}

func TestApplyBanRecordsThenKicks(t *testing.T) {
	b, platform := newTestBot(t)

	outcome, err := b.applyBan(42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)
	require.Equal(t, []int64{-100}, platform.banCalls)

	banned, err := b.storage.EntryExists(storage.ListBan, 42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.True(t, banned)
}

func TestApplyBanAlreadyBanned(t *testing.T) {
	b, platform := newTestBot(t)

	_, err := b.applyBan(42, storage.ChatScope(-100))
	require.NoError(t, err)

	outcome, err := b.applyBan(42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.Equal(t, OutcomeNoChange, outcome)
	// The platform call is still made: state and enforcement may have
	// diverged, and the kick is idempotent on Telegram's side.
	require.Len(t, platform.banCalls, 2)
}

func TestApplyBanSurfacesPlatformFailure(t *testing.T) {
	b, platform := newTestBot(t)
	platform.failWith = errors.New("forbidden: bot is not admin")

	outcome, err := b.applyBan(42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.Equal(t, OutcomeEffectFailed, outcome)

	// Local state is recorded even though the platform call failed.
	banned, err := b.storage.EntryExists(storage.ListBan, 42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.True(t, banned)
}

func TestApplyBanGlobalSkipsPlatformCall(t *testing.T) {
	b, platform := newTestBot(t)

	outcome, err := b.applyBan(42, storage.GlobalScope())
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)
	require.Empty(t, platform.banCalls, "a global ban has no single chat to kick from")

	global, err := b.storage.IsGlobalMember(storage.ListBan, 42)
	require.NoError(t, err)
	require.True(t, global)
}

func TestApplyUnban(t *testing.T) {
	b, platform := newTestBot(t)

	_, err := b.applyBan(42, storage.ChatScope(-100))
	require.NoError(t, err)

	outcome, err := b.applyUnban(42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.Equal(t, OutcomeApplied, outcome)
	require.Equal(t, []int64{-100}, platform.unbanCalls)

	banned, err := b.storage.EntryExists(storage.ListBan, 42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.False(t, banned)

	outcome, err = b.applyUnban(42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.Equal(t, OutcomeNoChange, outcome)
}

func TestApplyUnbanExactScope(t *testing.T) {
	b, _ := newTestBot(t)

	_, err := b.applyBan(42, storage.GlobalScope())
	require.NoError(t, err)

	// Unbanning in one chat must not lift the global ban.
	outcome, err := b.applyUnban(42, storage.ChatScope(-100))
	require.NoError(t, err)
	require.Equal(t, OutcomeNoChange, outcome)

	global, err := b.storage.IsGlobalMember(storage.ListBan, 42)
	require.NoError(t, err)
	require.True(t, global)
}
