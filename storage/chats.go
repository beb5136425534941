package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm/clause"
)

// UpsertChat records a chat observation: a new chat is inserted, a
// known one gets its title and kind refreshed. The registry is
// append-only; chats are never removed.
func (s *Storage) UpsertChat(chatID int64, title string, kind string) error {
	chat := Chat{ID: chatID, Title: title, Kind: kind}
	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "kind"}),
	}).Create(&chat)
	if result.Error != nil {
		slog.Error("storage: Failed to upsert chat", "error", result.Error,
			"chat_id", chatID, "title", title, "kind", kind)
		return fmt.Errorf("failed to upsert chat: %w", result.Error)
	}
	return nil
}

// ListChats returns every known chat, ordered by title for operator
// menus.
func (s *Storage) ListChats() ([]Chat, error) {
	var chats []Chat
	result := s.db.Order("title ASC").Find(&chats)
	if result.Error != nil {
		slog.Error("storage: Failed to list chats", "error", result.Error)
		return nil, fmt.Errorf("failed to list chats: %w", result.Error)
	}
	return chats, nil
}
