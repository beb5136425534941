package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"telegram-guard-bot/storage"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

var errBadArguments = errors.New("bad arguments")

// commandArgs returns the words following the command itself.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// parseUserID accepts only a positive numeric id. Telegram user ids are
// positive; rejecting everything else keeps malformed input out of the
// store.
func parseUserID(arg string) (int64, error) {
	userID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: user id must be a positive number", errBadArguments)
	}
	return userID, nil
}

// parseUserScope parses "<user_id> [global]" arguments. Without the
// global keyword the scope is the chat the command was issued in.
func parseUserScope(args []string, chatID int64) (int64, storage.Scope, error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, storage.Scope{}, errBadArguments
	}

	userID, err := parseUserID(args[0])
	if err != nil {
		return 0, storage.Scope{}, err
	}

	scope := storage.ChatScope(chatID)
	if len(args) == 2 {
		if !strings.EqualFold(args[1], "global") {
			return 0, storage.Scope{}, errBadArguments
		}
		scope = storage.GlobalScope()
	}
	return userID, scope, nil
}

// parseListScope parses the optional "global" argument of the list
// commands.
func parseListScope(args []string, chatID int64) (storage.Scope, error) {
	switch {
	case len(args) == 0:
		return storage.ChatScope(chatID), nil
	case len(args) == 1 && strings.EqualFold(args[0], "global"):
		return storage.GlobalScope(), nil
	}
	return storage.Scope{}, errBadArguments
}

// formatUserList renders user ids one per line for a list reply.
func formatUserList(ids []int64) string {
	if len(ids) == 0 {
		return "(empty)"
	}
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, strconv.FormatInt(id, 10))
	}
	return strings.Join(lines, "\n")
}

func escapeMarkdownV2(text string) string {
	specialChars := []string{
		"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!", "&", "<",
	}

	for _, char := range specialChars {
		text = strings.ReplaceAll(text, char, "\\"+char)
	}
	return text
}

func (b *Bot) sendMessage(chatID int64, text string) {
	message := tu.Message(tu.ID(chatID), text)
	message.ParseMode = "MarkdownV2"

	_, err := b.api.SendMessage(message)
	if err != nil {
		// Honor the retry_after hint once on rate limiting.
		if strings.Contains(err.Error(), "Too Many Requests") {
			parts := strings.Split(err.Error(), "retry after: ")
			if len(parts) == 2 {
				var retryAfter int
				if _, _ = fmt.Sscanf(parts[1], "%d", &retryAfter); retryAfter > 0 {
					slog.Info("bot: Rate limit hit, waiting", "seconds", retryAfter)
					time.Sleep(time.Duration(retryAfter) * time.Second)
					_, retryErr := b.api.SendMessage(message)
					if retryErr == nil {
						return
					}
					err = retryErr
				}
			}
		}
		slog.Error("bot: Failed to send message", "error", err, "chat_id", chatID, "text_length", len(text))
	}
}

// reply answers in the chat a command came from.
func (b *Bot) reply(update telego.Update, text string) {
	b.sendMessage(update.Message.Chat.ID, escapeMarkdownV2(text))
}
