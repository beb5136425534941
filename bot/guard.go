package bot

import (
	"fmt"
	"log/slog"

	"telegram-guard-bot/storage"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

// Outcome is what a moderation mutation actually did. The local state
// write and the platform-side effect succeed or fail independently, and
// callers must be able to tell the cases apart.
type Outcome int

const (
	// OutcomeApplied means state changed and any platform call succeeded.
	OutcomeApplied Outcome = iota
	// OutcomeNoChange means state was already as desired.
	OutcomeNoChange
	// OutcomeEffectFailed means state was recorded but the platform call
	// failed. The store stays authoritative; the divergence is surfaced
	// for an operator to reconcile, never retried silently.
	OutcomeEffectFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNoChange:
		return "already as desired"
	case OutcomeEffectFailed:
		return "recorded, but the platform call failed"
	}
	return "unknown"
}

// platformModerator is the external side-effecting surface: actually
// kicking or reinstating a user in a live chat.
type platformModerator interface {
	BanUser(chatID, userID int64) error
	UnbanUser(chatID, userID int64) error
}

type telegoModerator struct {
	api *telego.Bot
}

func (m telegoModerator) BanUser(chatID, userID int64) error {
	return m.api.BanChatMember(&telego.BanChatMemberParams{
		ChatID: tu.ID(chatID),
		UserID: userID,
	})
}

func (m telegoModerator) UnbanUser(chatID, userID int64) error {
	return m.api.UnbanChatMember(&telego.UnbanChatMemberParams{
		ChatID:       tu.ID(chatID),
		UserID:       userID,
		OnlyIfBanned: true,
	})
}

// shouldEnforce is the guard decision for a joining user: the safe list
// suppresses enforcement, otherwise a ban entry triggers it.
func shouldEnforce(safe, banned bool) bool {
	if safe {
		return false
	}
	return banned
}

// guardHandler fires on chat member updates. Only new joins matter.
func (b *Bot) guardHandler(bot *telego.Bot, update telego.Update) {
	event := update.ChatMember
	if event.NewChatMember.MemberStatus() != telego.MemberStatusMember {
		return
	}

	chat := event.Chat
	user := event.NewChatMember.MemberUser()

	if user.ID == b.ownerID {
		return
	}

	safe, err := b.storage.IsMember(storage.ListSafe, user.ID, chat.ID)
	if err != nil {
		slog.Error("bot: Guard safe check failed", "error", err, "user_id", user.ID, "chat_id", chat.ID)
		return
	}
	banned, err := b.storage.IsMember(storage.ListBan, user.ID, chat.ID)
	if err != nil {
		slog.Error("bot: Guard ban check failed", "error", err, "user_id", user.ID, "chat_id", chat.ID)
		return
	}

	if !shouldEnforce(safe, banned) {
		slog.Debug("bot: Joiner allowed", "user_id", user.ID, "chat_id", chat.ID, "safe", safe)
		return
	}

	outcome, err := b.applyBan(user.ID, storage.ChatScope(chat.ID))
	if err != nil {
		slog.Error("bot: Guard enforcement failed", "error", err, "user_id", user.ID, "chat_id", chat.ID)
		return
	}

	slog.Info("bot: Guard enforced ban", "user_id", user.ID, "chat_id", chat.ID, "outcome", outcome.String())
	b.notifyOwner(fmt.Sprintf("Banned user %d joined %q: %s", user.ID, chat.Title, outcome))
}

// applyBan persists the ban first, then attempts the platform kick. A
// global ban has no single chat to kick from; it is enforced chat by
// chat as the user is next seen joining.
func (b *Bot) applyBan(userID int64, scope storage.Scope) (Outcome, error) {
	changed, err := b.storage.AddListEntry(storage.ListBan, userID, scope)
	if err != nil {
		return OutcomeNoChange, err
	}

	if chatID, ok := scope.ChatID(); ok {
		if err := b.platform.BanUser(chatID, userID); err != nil {
			slog.Warn("bot: Platform ban failed", "error", err, "user_id", userID, "chat_id", chatID)
			return OutcomeEffectFailed, nil
		}
	}

	if !changed {
		return OutcomeNoChange, nil
	}
	return OutcomeApplied, nil
}

// applyUnban mirrors applyBan: remove the entry, then lift the platform
// restriction for per-chat scopes.
func (b *Bot) applyUnban(userID int64, scope storage.Scope) (Outcome, error) {
	changed, err := b.storage.RemoveListEntry(storage.ListBan, userID, scope)
	if err != nil {
		return OutcomeNoChange, err
	}

	if chatID, ok := scope.ChatID(); ok {
		if err := b.platform.UnbanUser(chatID, userID); err != nil {
			slog.Warn("bot: Platform unban failed", "error", err, "user_id", userID, "chat_id", chatID)
			return OutcomeEffectFailed, nil
		}
	}

	if !changed {
		return OutcomeNoChange, nil
	}
	return OutcomeApplied, nil
}

func (b *Bot) notifyOwner(text string) {
	if b.ownerID == 0 {
		return
	}
	b.sendMessage(b.ownerID, escapeMarkdownV2(text))
}
