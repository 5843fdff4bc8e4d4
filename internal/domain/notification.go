package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSystem  NotificationType = "system"
)

type Notification struct {
	ID      uuid.UUID        `db:"id" json:"id"`
	UserID  uuid.UUID        `db:"user_id" json:"user_id"`
	Title   string           `db:"title" json:"title"`
	Message string           `db:"message" json:"message"`
	Type    NotificationType `db:"notification_type" json:"notification_type"`
	IsRead  bool             `db:"is_read" json:"is_read"`

	ActionURL         sql.NullString `db:"action_url" json:"action_url"`
	RelatedObjectID   *uuid.UUID     `db:"related_object_id" json:"related_object_id,omitempty"`
	RelatedObjectType sql.NullString `db:"related_object_type" json:"related_object_type"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	ReadAt    *time.Time `db:"read_at" json:"read_at,omitempty"`
}
