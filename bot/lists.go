package bot

import (
	"fmt"
	"log/slog"

	"telegram-guard-bot/storage"

	"github.com/mymmrac/telego"
)

func (b *Bot) safeHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	userID, scope, err := parseUserScope(commandArgs(update.Message.Text), update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Usage: /safe <user_id> [global]")
		return
	}

	changed, err := b.storage.AddListEntry(storage.ListSafe, userID, scope)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !changed {
		b.reply(update, fmt.Sprintf("User %d is already safe (%s).", userID, scope))
		return
	}
	b.reply(update, fmt.Sprintf("User %d marked safe (%s).", userID, scope))
}

func (b *Bot) unsafeHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	userID, scope, err := parseUserScope(commandArgs(update.Message.Text), update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Usage: /unsafe <user_id> [global]")
		return
	}

	changed, err := b.storage.RemoveListEntry(storage.ListSafe, userID, scope)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !changed {
		b.reply(update, fmt.Sprintf("User %d was not safe (%s).", userID, scope))
		return
	}
	b.reply(update, fmt.Sprintf("User %d removed from the safe list (%s).", userID, scope))
}

func (b *Bot) safeListHandler(bot *telego.Bot, update telego.Update) {
	scope, err := parseListScope(commandArgs(update.Message.Text), update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Usage: /safelist [global]")
		return
	}

	ids, err := b.storage.ListEntries(storage.ListSafe, scope)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	b.reply(update, fmt.Sprintf("Safe users (%s):\n%s", scope, formatUserList(ids)))
}

func (b *Bot) banHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	userID, scope, err := parseUserScope(commandArgs(update.Message.Text), update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Usage: /ban <user_id> [global]")
		return
	}

	outcome, err := b.applyBan(userID, scope)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	slog.Info("bot: Ban command", "user_id", userID, "scope", scope.String(), "outcome", outcome.String())
	b.reply(update, fmt.Sprintf("Ban of user %d (%s): %s.", userID, scope, outcome))
}

func (b *Bot) unbanHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	userID, scope, err := parseUserScope(commandArgs(update.Message.Text), update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Usage: /unban <user_id> [global]")
		return
	}

	outcome, err := b.applyUnban(userID, scope)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	slog.Info("bot: Unban command", "user_id", userID, "scope", scope.String(), "outcome", outcome.String())
	b.reply(update, fmt.Sprintf("Unban of user %d (%s): %s.", userID, scope, outcome))
}

func (b *Bot) banListHandler(bot *telego.Bot, update telego.Update) {
	scope, err := parseListScope(commandArgs(update.Message.Text), update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Usage: /banlist [global]")
		return
	}

	ids, err := b.storage.ListEntries(storage.ListBan, scope)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	b.reply(update, fmt.Sprintf("Banned users (%s):\n%s", scope, formatUserList(ids)))
}
