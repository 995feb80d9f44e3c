package memory

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Category labels what kind of fact a memory records.
type Category string

const (
	CategoryName           Category = "name"
	CategoryPreference     Category = "preference"
	CategoryTopic          Category = "topic"
	CategoryEmotionalState Category = "emotional_state"
	CategoryStory          Category = "story"
)

// Memory is a short persisted fact about a conversation, surfaced back into
// future prompts for the owning avatar.
type Memory struct {
	ID             string     `json:"id"`
	AvatarID       string     `json:"avatarId"`
	ConversationID string     `json:"conversationId"`
	Category       Category   `json:"category"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastReferenced *time.Time `json:"lastReferenced,omitempty"`
}

// New builds a memory with a fresh ULID. ULIDs sort by creation time, which
// keeps append order recoverable even if entries are ever re-serialized.
func New(avatarID, conversationID string, category Category, content string) Memory {
	now := time.Now().UTC()
	return Memory{
		ID:             ulid.Make().String(),
		AvatarID:       avatarID,
		ConversationID: conversationID,
		Category:       category,
		Content:        content,
		CreatedAt:      now,
	}
}
