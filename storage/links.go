package storage

import (
	"fmt"
	"log/slog"
	"strings"
)

// AddLink stores a named link for a chat. Links are append-only: the
// same name and URL may be stored any number of times.
func (s *Storage) AddLink(chatID int64, name, url string) (*Link, error) {
	link := &Link{
		ChatID: chatID,
		Name:   strings.TrimSpace(name),
		URL:    strings.TrimSpace(url),
	}

	result := s.db.Create(link)
	if result.Error != nil {
		slog.Error("storage: Failed to add link", "error", result.Error,
			"chat_id", chatID, "name", link.Name)
		return nil, fmt.Errorf("failed to add link: %w", result.Error)
	}
	return link, nil
}

// ListLinks returns the chat's links, newest first.
func (s *Storage) ListLinks(chatID int64) ([]Link, error) {
	var links []Link
	result := s.db.Where("chat_id = ?", chatID).Order("id DESC").Find(&links)
	if result.Error != nil {
		slog.Error("storage: Failed to list links", "error", result.Error, "chat_id", chatID)
		return nil, fmt.Errorf("failed to list links: %w", result.Error)
	}
	return links, nil
}

// DeleteLink removes a link by id. It reports whether a row was
// deleted.
func (s *Storage) DeleteLink(linkID uint) (bool, error) {
	result := s.db.Delete(&Link{}, linkID)
	if result.Error != nil {
		slog.Error("storage: Failed to delete link", "error", result.Error, "link_id", linkID)
		return false, fmt.Errorf("failed to delete link: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
