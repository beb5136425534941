package bot

import (
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// chatObserveMiddleware feeds the chat registry: any update carrying a
// group, supergroup or channel records (or refreshes) that chat, so
// operators can pick targets by title later. Registration failures are
// logged but never block handling.
func (b *Bot) chatObserveMiddleware(bot *telego.Bot, update telego.Update, next th.Handler) {
	if chat := observedChat(update); chat != nil {
		switch chat.Type {
		case telego.ChatTypeGroup, telego.ChatTypeSupergroup, telego.ChatTypeChannel:
			if err := b.storage.UpsertChat(chat.ID, chat.Title, chat.Type); err != nil {
				slog.Error("bot: Failed to register chat", "error", err, "chat_id", chat.ID)
			}
		}
	}

	next(bot, update)
}

func observedChat(update telego.Update) *telego.Chat {
	switch {
	case update.Message != nil:
		return &update.Message.Chat
	case update.MyChatMember != nil:
		return &update.MyChatMember.Chat
	case update.ChatMember != nil:
		return &update.ChatMember.Chat
	}
	return nil
}

// fromOwner gates mutating commands. Operator identity is assumed to be
// established externally; the bot only compares against the configured
// owner id.
func (b *Bot) fromOwner(update telego.Update) bool {
	return update.Message != nil &&
		update.Message.From != nil &&
		update.Message.From.ID == b.ownerID
}

// requireOwner replies with a refusal when the sender is not the owner.
func (b *Bot) requireOwner(update telego.Update) bool {
	if b.fromOwner(update) {
		return true
	}
	b.reply(update, "You are not authorized.")
	return false
}
