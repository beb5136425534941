package bot

import (
	"fmt"
	"log/slog"

	"telegram-guard-bot/storage"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

type Bot struct {
	api      *telego.Bot
	storage  *storage.Storage
	platform platformModerator
	ownerID  int64
}

func New(token string, store *storage.Storage, ownerID int64) (*Bot, error) {
	api, err := telego.NewBot(token, telego.WithDefaultLogger(false, true))
	if err != nil {
		slog.Error("bot: Failed to create API client", "error", err)
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &Bot{
		api:      api,
		storage:  store,
		platform: telegoModerator{api: api},
		ownerID:  ownerID,
	}, nil
}

// Run starts long polling and blocks until the update stream ends.
func (b *Bot) Run() error {
	botUser, err := b.api.GetMe()
	if err != nil {
		slog.Error("bot: Cannot retrieve api user", "error", err)
		return fmt.Errorf("cannot retrieve api user: %w", err)
	}

	slog.Info("bot: Running as", "id", botUser.ID, "username", botUser.Username)

	// chat_member updates are not delivered unless requested explicitly.
	updates, err := b.api.UpdatesViaLongPolling(&telego.GetUpdatesParams{
		AllowedUpdates: []string{"message", "my_chat_member", "chat_member"},
	})
	if err != nil {
		slog.Error("bot: Cannot get update channel", "error", err)
		return fmt.Errorf("cannot get update channel: %w", err)
	}

	bh, err := th.NewBotHandler(b.api, updates)
	if err != nil {
		slog.Error("bot: Cannot initialize bot handler", "error", err)
		return fmt.Errorf("cannot initialize bot handler: %w", err)
	}

	defer bh.Stop()
	defer b.api.StopLongPolling()

	bh.Use(b.chatObserveMiddleware)

	bh.Handle(b.guardHandler, anyChatMember)
	bh.Handle(b.myChatMemberHandler, anyMyChatMember)

	bh.Handle(b.startHandler, th.CommandEqual("start"))

	bh.Handle(b.safeHandler, th.CommandEqual("safe"))
	bh.Handle(b.unsafeHandler, th.CommandEqual("unsafe"))
	bh.Handle(b.safeListHandler, th.CommandEqual("safelist"))
	bh.Handle(b.banHandler, th.CommandEqual("ban"))
	bh.Handle(b.unbanHandler, th.CommandEqual("unban"))
	bh.Handle(b.banListHandler, th.CommandEqual("banlist"))

	bh.Handle(b.folderCreateHandler, th.CommandEqual("folder_create"))
	bh.Handle(b.folderDeleteHandler, th.CommandEqual("folder_delete"))
	bh.Handle(b.folderAddHandler, th.CommandEqual("folder_add"))
	bh.Handle(b.folderRemoveHandler, th.CommandEqual("folder_remove"))
	bh.Handle(b.folderMembersHandler, th.CommandEqual("folder_members"))
	bh.Handle(b.foldersHandler, th.CommandEqual("folders"))

	bh.Handle(b.linkAddHandler, th.CommandEqual("link_add"))
	bh.Handle(b.linkDeleteHandler, th.CommandEqual("link_delete"))
	bh.Handle(b.linksHandler, th.CommandEqual("links"))

	bh.Handle(b.cloneHandler, th.CommandEqual("clone"))
	bh.Handle(b.chatsHandler, th.CommandEqual("chats"))

	bh.Handle(b.helpHandler, th.AnyCommand())

	bh.Start()

	return nil
}

func anyChatMember(update telego.Update) bool {
	return update.ChatMember != nil
}

func anyMyChatMember(update telego.Update) bool {
	return update.MyChatMember != nil
}

// myChatMemberHandler fires when the bot itself is added to or removed
// from a chat. Registration is done by the observe middleware; this
// only logs the transition.
func (b *Bot) myChatMemberHandler(bot *telego.Bot, update telego.Update) {
	event := update.MyChatMember
	slog.Info("bot: Own membership changed",
		"chat_id", event.Chat.ID,
		"chat_title", event.Chat.Title,
		"status", event.NewChatMember.MemberStatus())
}

func (b *Bot) startHandler(bot *telego.Bot, update telego.Update) {
	b.sendMessage(update.Message.Chat.ID, escapeMarkdownV2(
		"Guard bot is running. Use /safe, /ban, /folders, /links, /clone or /chats."))
}

func (b *Bot) helpHandler(bot *telego.Bot, update telego.Update) {
	b.sendMessage(update.Message.Chat.ID, escapeMarkdownV2(
		"Commands (run inside the chat they apply to, add 'global' for all chats):\n"+
			"/safe <user_id> [global] — exempt a user from the guard\n"+
			"/unsafe <user_id> [global]\n"+
			"/safelist [global]\n"+
			"/ban <user_id> [global]\n"+
			"/unban <user_id> [global]\n"+
			"/banlist [global]\n"+
			"/folder_create <name>, /folder_delete <name>, /folders\n"+
			"/folder_add <name> <user_id>, /folder_remove <name> <user_id>, /folder_members <name>\n"+
			"/link_add <name> <url>, /link_delete <id>, /links\n"+
			"/clone <dst_chat_id...> — copy this chat's rules onto other chats\n"+
			"/chats — list known chats"))
}
