package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type MessageType string

const (
	MessageText             MessageType = "text"
	MessageSystem           MessageType = "system"
	MessageFile             MessageType = "file"
	MessageInvestmentUpdate MessageType = "investment_update"
	MessageMilestone        MessageType = "milestone"
)

// Message rows are ordered by creation time ascending within a conversation.
type Message struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	ConversationID uuid.UUID   `db:"conversation_id" json:"conversation_id"`
	SenderID       uuid.UUID   `db:"sender_id" json:"sender_id"`
	Content        string      `db:"content" json:"content"`
	Type           MessageType `db:"message_type" json:"message_type"`

	Attachment     sql.NullString `db:"attachment" json:"attachment"`
	AttachmentName sql.NullString `db:"attachment_name" json:"attachment_name"`

	IsEdited  bool      `db:"is_edited" json:"is_edited"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MessageRecipient is the per-recipient delivery record; one row per
// (message, user), created at send time for every member except the sender.
// Late joiners never receive records for earlier messages.
type MessageRecipient struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	MessageID uuid.UUID  `db:"message_id" json:"message_id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	IsRead    bool       `db:"is_read" json:"is_read"`
	ReadAt    *time.Time `db:"read_at" json:"read_at,omitempty"`
}
