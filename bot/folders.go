package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"telegram-guard-bot/storage"

	"github.com/mymmrac/telego"
)

func (b *Bot) folderCreateHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(update, "Usage: /folder_create <name>")
		return
	}

	created, err := b.storage.CreateFolder(update.Message.Chat.ID, args[0])
	if errors.Is(err, storage.ErrEmptyFolderName) {
		b.reply(update, "Folder name must not be empty.")
		return
	}
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !created {
		b.reply(update, fmt.Sprintf("Folder %q already exists.", args[0]))
		return
	}
	b.reply(update, fmt.Sprintf("Folder %q created.", args[0]))
}

func (b *Bot) folderDeleteHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(update, "Usage: /folder_delete <name>")
		return
	}

	deleted, err := b.storage.DeleteFolder(update.Message.Chat.ID, args[0])
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !deleted {
		b.reply(update, fmt.Sprintf("No folder %q in this chat.", args[0]))
		return
	}
	b.reply(update, fmt.Sprintf("Folder %q deleted.", args[0]))
}

func (b *Bot) foldersHandler(bot *telego.Bot, update telego.Update) {
	folders, err := b.storage.ListFolders(update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if len(folders) == 0 {
		b.reply(update, "No folders in this chat.")
		return
	}

	lines := make([]string, 0, len(folders))
	for _, folder := range folders {
		lines = append(lines, folder.Name)
	}
	b.reply(update, "Folders:\n"+strings.Join(lines, "\n"))
}

func (b *Bot) folderAddHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		b.reply(update, "Usage: /folder_add <name> <user_id>")
		return
	}
	userID, err := parseUserID(args[1])
	if err != nil {
		b.reply(update, "User id must be a positive number.")
		return
	}

	found, err := b.storage.AddFolderMember(update.Message.Chat.ID, args[0], userID)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !found {
		b.reply(update, fmt.Sprintf("No folder %q in this chat. Create it with /folder_create first.", args[0]))
		return
	}
	b.reply(update, fmt.Sprintf("User %d added to folder %q.", userID, args[0]))
}

func (b *Bot) folderRemoveHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		b.reply(update, "Usage: /folder_remove <name> <user_id>")
		return
	}
	userID, err := parseUserID(args[1])
	if err != nil {
		b.reply(update, "User id must be a positive number.")
		return
	}

	found, err := b.storage.RemoveFolderMember(update.Message.Chat.ID, args[0], userID)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !found {
		b.reply(update, fmt.Sprintf("No folder %q in this chat.", args[0]))
		return
	}
	b.reply(update, fmt.Sprintf("User %d removed from folder %q.", userID, args[0]))
}

func (b *Bot) folderMembersHandler(bot *telego.Bot, update telego.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(update, "Usage: /folder_members <name>")
		return
	}

	members, err := b.storage.ListFolderMembers(update.Message.Chat.ID, args[0])
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	b.reply(update, fmt.Sprintf("Members of %q:\n%s", args[0], formatUserList(members)))
}

func (b *Bot) linkAddHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 2 {
		b.reply(update, "Usage: /link_add <name> <url>")
		return
	}

	link, err := b.storage.AddLink(update.Message.Chat.ID, args[0], args[1])
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	b.reply(update, fmt.Sprintf("Link %q saved with id %d.", link.Name, link.ID))
}

func (b *Bot) linkDeleteHandler(bot *telego.Bot, update telego.Update) {
	if !b.requireOwner(update) {
		return
	}

	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		b.reply(update, "Usage: /link_delete <id>")
		return
	}
	linkID, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		b.reply(update, "Link id must be a number.")
		return
	}

	deleted, err := b.storage.DeleteLink(uint(linkID))
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if !deleted {
		b.reply(update, fmt.Sprintf("No link with id %d.", linkID))
		return
	}
	b.reply(update, fmt.Sprintf("Link %d deleted.", linkID))
}

func (b *Bot) linksHandler(bot *telego.Bot, update telego.Update) {
	links, err := b.storage.ListLinks(update.Message.Chat.ID)
	if err != nil {
		b.reply(update, "Database error. Try again later.")
		return
	}

	if len(links) == 0 {
		b.reply(update, "No links stored for this chat.")
		return
	}

	lines := make([]string, 0, len(links))
	for _, link := range links {
		lines = append(lines, fmt.Sprintf("%d: %s %s", link.ID, link.Name, link.URL))
	}
	b.reply(update, "Links:\n"+strings.Join(lines, "\n"))
}
