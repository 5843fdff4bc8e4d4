package domain

import (
	"time"

	"github.com/google/uuid"
)

type ConversationType string

const (
	ConversationDirect     ConversationType = "direct"
	ConversationProject    ConversationType = "project"
	ConversationStartup    ConversationType = "startup"
	ConversationInvestment ConversationType = "investment"
	ConversationVenture    ConversationType = "venture"
)

type Conversation struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	Title     string           `db:"title" json:"title"`
	Type      ConversationType `db:"conversation_type" json:"conversation_type"`
	CreatedBy uuid.UUID        `db:"created_by" json:"created_by"`
	IsActive  bool             `db:"is_active" json:"is_active"`

	// Context references, set by conversation type.
	StartupID    *uuid.UUID `db:"startup_id" json:"startup_id,omitempty"`
	ProjectID    *uuid.UUID `db:"project_id" json:"project_id,omitempty"`
	InvestmentID *uuid.UUID `db:"investment_id" json:"investment_id,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ConversationMember joins users into conversations; at most one row per
// (conversation, user).
type ConversationMember struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	IsAdmin        bool      `db:"is_admin" json:"is_admin"`
	JoinedAt       time.Time `db:"joined_at" json:"joined_at"`
}
