package storage

import (
	"fmt"
	"time"
)

// ListKind selects which access list an operation targets.
type ListKind string

const (
	// ListSafe holds users exempt from guard enforcement.
	ListSafe ListKind = "safe"
	// ListBan holds users blocked from chats.
	ListBan ListKind = "ban"
)

// globalScopeID is the stored sentinel for the global scope. Telegram
// never assigns chat id 0, and a NOT NULL sentinel keeps the composite
// primary key unique (SQLite treats every NULL in a key as distinct).
const globalScopeID int64 = 0

// Scope is the breadth of a list entry: every chat, or one specific
// chat. The zero value is the global scope.
type Scope struct {
	chatID int64
}

// GlobalScope returns the scope covering all chats.
func GlobalScope() Scope {
	return Scope{}
}

// ChatScope returns the scope covering a single chat.
func ChatScope(chatID int64) Scope {
	return Scope{chatID: chatID}
}

func (s Scope) IsGlobal() bool {
	return s.chatID == globalScopeID
}

// ChatID returns the chat the scope is bound to; ok is false for the
// global scope.
func (s Scope) ChatID() (int64, bool) {
	return s.chatID, !s.IsGlobal()
}

func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return fmt.Sprintf("chat:%d", s.chatID)
}

// Chat kinds as reported by the platform.
const (
	ChatKindGroup      = "group"
	ChatKindSupergroup = "supergroup"
	ChatKindChannel    = "channel"
)

// Chat is a group, supergroup or channel the bot has observed. The id
// is assigned by the platform. Chats are recorded on first activity and
// never deleted.
type Chat struct {
	ID    int64 `gorm:"primaryKey;autoIncrement:false"`
	Title string
	Kind  string `gorm:"default:'group'"`
}

// SafeEntry exempts a user from guard enforcement within its scope.
type SafeEntry struct {
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	ScopeChatID int64 `gorm:"primaryKey;autoIncrement:false"`
}

// BanEntry blocks a user within its scope. Same shape as SafeEntry; the
// two lists are independent and a user may appear on both.
type BanEntry struct {
	UserID      int64 `gorm:"primaryKey;autoIncrement:false"`
	ScopeChatID int64 `gorm:"primaryKey;autoIncrement:false"`
}

// Folder is a named per-chat set of users for bulk targeting. Names are
// unique within a chat and stored trimmed.
type Folder struct {
	ID      uint           `gorm:"primaryKey"`
	ChatID  int64          `gorm:"uniqueIndex:idx_chat_folder"`
	Name    string         `gorm:"uniqueIndex:idx_chat_folder"`
	Members []FolderMember `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE"`
}

// FolderMember relates a folder to a user.
type FolderMember struct {
	FolderID uint  `gorm:"primaryKey;autoIncrement:false"`
	UserID   int64 `gorm:"primaryKey;autoIncrement:false"`
}

// Link is an append-only stored reference owned by a chat.
type Link struct {
	ID        uint  `gorm:"primaryKey"`
	ChatID    int64 `gorm:"index"`
	Name      string
	URL       string
	CreatedAt time.Time
}
