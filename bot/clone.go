package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
)

// cloneHandler copies the current chat's rule-state onto the given
// destination chats. Destinations are independent: one failing leaves
// the others applied.
func (b *Bot) cloneHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		b.reply(update, "Usage: /clone <dst_chat_id...> (run inside the source chat)")
		return
	}

	dstIDs := make([]int64, 0, len(args))
	for _, arg := range args {
		dstID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || dstID == 0 {
			b.reply(update, fmt.Sprintf("Bad chat id %q: destination ids must be numeric.", arg))
			return
		}
		dstIDs = append(dstIDs, dstID)
	}

	results := b.storage.CloneChatRules(update.Message.Chat.ID, dstIDs...)

	lines := make([]string, 0, len(results))
	for _, result := range results {
		if result.Err != nil {
			lines = append(lines, fmt.Sprintf("%d: failed, nothing applied there", result.ChatID))
			continue
		}
		lines = append(lines, fmt.Sprintf("%d: done", result.ChatID))
	}
	b.reply(update, "Clone results:\n"+strings.Join(lines, "\n"))
}

func (b *Bot) chatsHandler(bot *telego.Bot, update telego.Update) {
	chats, err := b.storage.ListChats()
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if len(chats) == 0 {
		b.reply(update, "No chats registered yet. Add the bot to a chat first.")
		return
	}

	lines := make([]string, 0, len(chats))
	for _, chat := range chats {
		title := chat.Title
		if title == "" {
			title = "-"
		}
		lines = append(lines, fmt.Sprintf("%d: %s (%s)", chat.ID, title, chat.Kind))
	}
	b.reply(update, "Known chats:\n"+strings.Join(lines, "\n"))
}
