package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrEmptyFolderName is returned when a folder name is empty after
// trimming. Nothing is written in that case.
var ErrEmptyFolderName = errors.New("folder name is empty")

// CreateFolder ensures a folder with the trimmed name exists in the
// chat. It reports whether a new folder was created; an existing
// (chat, name) pair is not an error.
func (s *Storage) CreateFolder(chatID int64, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyFolderName
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Folder{ChatID: chatID, Name: name})
	if result.Error != nil {
		slog.Error("storage: Failed to create folder", "error", result.Error,
			"chat_id", chatID, "name", name)
		return false, fmt.Errorf("failed to create folder: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListFolders returns the chat's folders, alphabetical by name.
func (s *Storage) ListFolders(chatID int64) ([]Folder, error) {
	var folders []Folder
	result := s.db.Where("chat_id = ?", chatID).Order("name ASC").Find(&folders)
	if result.Error != nil {
		slog.Error("storage: Failed to list folders", "error", result.Error, "chat_id", chatID)
		return nil, fmt.Errorf("failed to list folders: %w", result.Error)
	}
	return folders, nil
}

// findFolder resolves a folder by (chat, name). A missing folder is
// reported as a nil folder, not an error: callers treat it as routine
// control flow.
func (s *Storage) findFolder(chatID int64, name string) (*Folder, error) {
	var folder Folder
	result := s.db.Where("chat_id = ? AND name = ?", chatID, name).First(&folder)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		slog.Error("storage: Failed to find folder", "error", result.Error,
			"chat_id", chatID, "name", name)
		return nil, fmt.Errorf("failed to find folder: %w", result.Error)
	}
	return &folder, nil
}

// AddFolderMember puts a user into the named folder. It returns false
// when no such folder exists (folders are never created implicitly);
// adding an existing member is an absorbed no-op.
func (s *Storage) AddFolderMember(chatID int64, folderName string, userID int64) (bool, error) {
	folder, err := s.findFolder(chatID, folderName)
	if err != nil {
		return false, err
	}
	if folder == nil {
		return false, nil
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&FolderMember{FolderID: folder.ID, UserID: userID})
	if result.Error != nil {
		slog.Error("storage: Failed to add folder member", "error", result.Error,
			"folder_id", folder.ID, "user_id", userID)
		return false, fmt.Errorf("failed to add folder member: %w", result.Error)
	}
	return true, nil
}

// RemoveFolderMember removes a user from the named folder. It returns
// false when no such folder exists; removing an absent member is an
// absorbed no-op.
func (s *Storage) RemoveFolderMember(chatID int64, folderName string, userID int64) (bool, error) {
	folder, err := s.findFolder(chatID, folderName)
	if err != nil {
		return false, err
	}
	if folder == nil {
		return false, nil
	}

	result := s.db.Where("folder_id = ? AND user_id = ?", folder.ID, userID).Delete(&FolderMember{})
	if result.Error != nil {
		slog.Error("storage: Failed to remove folder member", "error", result.Error,
			"folder_id", folder.ID, "user_id", userID)
		return false, fmt.Errorf("failed to remove folder member: %w", result.Error)
	}
	return true, nil
}

// ListFolderMembers returns the user ids in the named folder,
// ascending. A missing folder yields an empty list.
func (s *Storage) ListFolderMembers(chatID int64, folderName string) ([]int64, error) {
	var ids []int64
	result := s.db.Model(&FolderMember{}).
		Joins("JOIN folders ON folders.id = folder_members.folder_id").
		Where("folders.chat_id = ? AND folders.name = ?", chatID, folderName).
		Order("folder_members.user_id ASC").
		Pluck("folder_members.user_id", &ids)
	if result.Error != nil {
		slog.Error("storage: Failed to list folder members", "error", result.Error,
			"chat_id", chatID, "name", folderName)
		return nil, fmt.Errorf("failed to list folder members: %w", result.Error)
	}
	return ids, nil
}

// DeleteFolder removes the named folder together with its memberships,
// in one transaction. It returns false when no such folder exists.
func (s *Storage) DeleteFolder(chatID int64, folderName string) (bool, error) {
	folder, err := s.findFolder(chatID, folderName)
	if err != nil {
		return false, err
	}
	if folder == nil {
		return false, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("folder_id = ?", folder.ID).Delete(&FolderMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&Folder{}, folder.ID).Error
	})
	if err != nil {
		slog.Error("storage: Failed to delete folder", "error", err,
			"folder_id", folder.ID, "chat_id", chatID, "name", folderName)
		return false, fmt.Errorf("failed to delete folder: %w", err)
	}
	return true, nil
}
