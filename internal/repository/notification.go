package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/venturenest/backend/internal/domain"
)

type notificationRepository struct {
	db *sqlx.DB
}

func newNotificationRepository(db *sqlx.DB) *notificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	const op = "repository.notification.Create"

	const query = `
    INSERT INTO notification (id, user_id, title, message, notification_type, action_url, related_object_id, related_object_type)
    VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, uuid_to_bin(?), ?)
    `

	var relatedID interface{}
	if notification.RelatedObjectID != nil {
		relatedID = *notification.RelatedObjectID
	}

	if _, err := r.db.ExecContext(ctx, query,
		notification.ID,
		notification.UserID,
		notification.Title,
		notification.Message,
		notification.Type,
		notification.ActionURL,
		relatedID,
		notification.RelatedObjectType,
	); err != nil {
		return fmt.Errorf("%s: insert notification failed: %w", op, err)
	}

	return nil
}

// CreateBulk inserts all rows in one statement; either all rows land or none.
func (r *notificationRepository) CreateBulk(ctx context.Context, notifications []domain.Notification) error {
	const op = "repository.notification.CreateBulk"

	if len(notifications) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(notifications))
	args := make([]interface{}, 0, len(notifications)*5)
	for _, n := range notifications {
		placeholders = append(placeholders, "(uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?)")
		args = append(args, n.ID, n.UserID, n.Title, n.Message, n.Type, n.ActionURL)
	}

	query := `
    INSERT INTO notification (id, user_id, title, message, notification_type, action_url)
    VALUES ` + strings.Join(placeholders, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: bulk insert notifications failed: %w", op, err)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) error {
	const op = "repository.notification.MarkAllRead"

	const query = `
    UPDATE notification SET is_read = true, read_at = ?
    WHERE user_id = uuid_to_bin(?) AND is_read = false
    `

	if _, err := r.db.ExecContext(ctx, query, at, userID); err != nil {
		return fmt.Errorf("%s: mark all read failed: %w", op, err)
	}

	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	const op = "repository.notification.CountUnread"

	const query = `SELECT COUNT(*) FROM notification WHERE user_id = uuid_to_bin(?) AND is_read = false`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("%s: count unread failed: %w", op, err)
	}

	return count, nil
}

func (r *notificationRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	const op = "repository.notification.ListRecent"

	const query = `
    SELECT id, user_id, title, message, notification_type, is_read, action_url, related_object_id, related_object_type, created_at, read_at
    FROM notification
    WHERE user_id = uuid_to_bin(?)
    ORDER BY created_at DESC
    LIMIT ?
    `

	var notifications []domain.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, limit); err != nil {
		return nil, fmt.Errorf("%s: select notifications failed: %w", op, err)
	}

	return notifications, nil
}
