package chat

import "time"

// Roles accepted in client-supplied history. Both "avatar" and "assistant"
// denote a model turn; anything else is treated as a user turn.
const (
	RoleUser      = "user"
	RoleAvatar    = "avatar"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. The server never persists these;
// the caller round-trips its full history on every chat request.
type Message struct {
	ID             string    `json:"id,omitempty"`
	ConversationID string    `json:"conversationId,omitempty"`
	AvatarID       string    `json:"avatarId,omitempty"`
	Role           string    `json:"role"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp,omitempty"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	HasImage       bool      `json:"hasImage,omitempty"`
}
