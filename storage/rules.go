package storage

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm/clause"
)

func (k ListKind) model() any {
	if k == ListBan {
		return &BanEntry{}
	}
	return &SafeEntry{}
}

func (k ListKind) entry(userID int64, scope Scope) any {
	if k == ListBan {
		return &BanEntry{UserID: userID, ScopeChatID: scope.chatID}
	}
	return &SafeEntry{UserID: userID, ScopeChatID: scope.chatID}
}

// AddListEntry ensures the user holds an entry with exactly the given
// scope. It reports whether a new row was written; an entry that
// already exists is not an error.
func (s *Storage) AddListEntry(kind ListKind, userID int64, scope Scope) (bool, error) {
	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(kind.entry(userID, scope))
	if result.Error != nil {
		slog.Error("storage: Failed to add list entry", "error", result.Error,
			"list", kind, "user_id", userID, "scope", scope.String())
		return false, fmt.Errorf("failed to add %s entry: %w", kind, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveListEntry deletes the entry with exactly the given scope, if
// present. Removing a per-chat entry never touches a global entry for
// the same user, and vice versa. It reports whether a row was deleted;
// an absent entry is not an error.
func (s *Storage) RemoveListEntry(kind ListKind, userID int64, scope Scope) (bool, error) {
	result := s.db.Where("user_id = ? AND scope_chat_id = ?", userID, scope.chatID).Delete(kind.model())
	if result.Error != nil {
		slog.Error("storage: Failed to remove list entry", "error", result.Error,
			"list", kind, "user_id", userID, "scope", scope.String())
		return false, fmt.Errorf("failed to remove %s entry: %w", kind, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// ListEntries returns the user ids holding an entry with exactly the
// given scope, ascending. Global entries are not merged into per-chat
// listings.
func (s *Storage) ListEntries(kind ListKind, scope Scope) ([]int64, error) {
	var ids []int64
	result := s.db.Model(kind.model()).
		Where("scope_chat_id = ?", scope.chatID).
		Order("user_id ASC").
		Pluck("user_id", &ids)
	if result.Error != nil {
		slog.Error("storage: Failed to list entries", "error", result.Error,
			"list", kind, "scope", scope.String())
		return nil, fmt.Errorf("failed to list %s entries: %w", kind, result.Error)
	}
	return ids, nil
}

// EntryExists reports whether the user holds an entry with exactly the
// given scope. For the merged check used by enforcement, see IsMember.
func (s *Storage) EntryExists(kind ListKind, userID int64, scope Scope) (bool, error) {
	var count int64
	result := s.db.Model(kind.model()).
		Where("user_id = ? AND scope_chat_id = ?", userID, scope.chatID).
		Count(&count)
	if result.Error != nil {
		slog.Error("storage: Failed to check entry", "error", result.Error,
			"list", kind, "user_id", userID, "scope", scope.String())
		return false, fmt.Errorf("failed to check %s entry: %w", kind, result.Error)
	}
	return count > 0, nil
}

// IsMember reports whether the user is effectively on the list for the
// chat: a global entry or a per-chat entry satisfies the check. A
// per-chat entry for another chat does not.
func (s *Storage) IsMember(kind ListKind, userID int64, chatID int64) (bool, error) {
	var count int64
	result := s.db.Model(kind.model()).
		Where("user_id = ? AND scope_chat_id IN ?", userID, []int64{globalScopeID, chatID}).
		Count(&count)
	if result.Error != nil {
		slog.Error("storage: Failed to resolve membership", "error", result.Error,
			"list", kind, "user_id", userID, "chat_id", chatID)
		return false, fmt.Errorf("failed to resolve %s membership: %w", kind, result.Error)
	}
	return count > 0, nil
}

// IsGlobalMember reports whether the user holds a global entry,
// ignoring per-chat entries entirely.
func (s *Storage) IsGlobalMember(kind ListKind, userID int64) (bool, error) {
	return s.EntryExists(kind, userID, GlobalScope())
}
