package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CloneResult reports the outcome of cloning onto one destination.
type CloneResult struct {
	ChatID int64
	Err    error
}

// CloneChatRules copies every per-chat rule owned by src onto each
// destination: safe entries, ban entries, folders with their members,
// and stored links. Global entries are never touched. Destinations are
// processed independently, each in its own transaction: a failure rolls
// that destination back wholesale and the remaining destinations are
// still attempted.
func (s *Storage) CloneChatRules(srcChatID int64, dstChatIDs ...int64) []CloneResult {
	results := make([]CloneResult, 0, len(dstChatIDs))
	for _, dst := range dstChatIDs {
		err := s.cloneInto(srcChatID, dst)
		if err != nil {
			slog.Error("storage: Clone failed", "error", err, "src", srcChatID, "dst", dst)
		} else {
			slog.Info("storage: Cloned chat rules", "src", srcChatID, "dst", dst)
		}
		results = append(results, CloneResult{ChatID: dst, Err: err})
	}
	return results
}

func (s *Storage) cloneInto(src, dst int64) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// Per-chat list entries only; existing destination entries are
		// kept, so re-running a clone is repeatable.
		err := tx.Exec(
			"INSERT OR IGNORE INTO safe_entries (user_id, scope_chat_id) "+
				"SELECT user_id, ? FROM safe_entries WHERE scope_chat_id = ?",
			dst, src,
		).Error
		if err != nil {
			return fmt.Errorf("failed to clone safe entries: %w", err)
		}

		err = tx.Exec(
			"INSERT OR IGNORE INTO ban_entries (user_id, scope_chat_id) "+
				"SELECT user_id, ? FROM ban_entries WHERE scope_chat_id = ?",
			dst, src,
		).Error
		if err != nil {
			return fmt.Errorf("failed to clone ban entries: %w", err)
		}

		var folders []Folder
		if err := tx.Where("chat_id = ?", src).Find(&folders).Error; err != nil {
			return fmt.Errorf("failed to load source folders: %w", err)
		}

		for _, folder := range folders {
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&Folder{ChatID: dst, Name: folder.Name}).Error
			if err != nil {
				return fmt.Errorf("failed to clone folder %q: %w", folder.Name, err)
			}

			// Re-resolve: the destination folder may have pre-existed.
			var dstFolder Folder
			err = tx.Where("chat_id = ? AND name = ?", dst, folder.Name).First(&dstFolder).Error
			if err != nil {
				return fmt.Errorf("failed to resolve cloned folder %q: %w", folder.Name, err)
			}

			err = tx.Exec(
				"INSERT OR IGNORE INTO folder_members (folder_id, user_id) "+
					"SELECT ?, user_id FROM folder_members WHERE folder_id = ?",
				dstFolder.ID, folder.ID,
			).Error
			if err != nil {
				return fmt.Errorf("failed to clone members of folder %q: %w", folder.Name, err)
			}
		}

		// Links are append-only and not deduplicated, so cloning a chat
		// onto itself would only double its own links. Skip them then.
		if src != dst {
			var links []Link
			if err := tx.Where("chat_id = ?", src).Order("id ASC").Find(&links).Error; err != nil {
				return fmt.Errorf("failed to load source links: %w", err)
			}
			for _, link := range links {
				copied := Link{ChatID: dst, Name: link.Name, URL: link.URL}
				if err := tx.Create(&copied).Error; err != nil {
					return fmt.Errorf("failed to clone link %q: %w", link.Name, err)
				}
			}
		}

		return nil
	})
}
