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

type messageRepository struct {
	db *sqlx.DB
}

func newMessageRepository(db *sqlx.DB) *messageRepository {
	return &messageRepository{
		db: db,
	}
}

// CreateWithRecipients inserts the message and the per-recipient delivery
// rows in a single transaction; neither side is ever partially visible.
func (r *messageRepository) CreateWithRecipients(ctx context.Context, message *domain.Message, recipients []uuid.UUID) error {
	const op = "repository.message.CreateWithRecipients"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx failed: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertMessage = `
    INSERT INTO message (id, conversation_id, sender_id, content, message_type, attachment, attachment_name)
    VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?)
    `
	if _, err := tx.ExecContext(ctx, insertMessage,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Content,
		message.Type,
		message.Attachment,
		message.AttachmentName,
	); err != nil {
		return fmt.Errorf("%s: insert message failed: %w", op, err)
	}

	if len(recipients) > 0 {
		placeholders := make([]string, 0, len(recipients))
		args := make([]interface{}, 0, len(recipients)*3)
		for _, userID := range recipients {
			recipientID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("%s: generate recipient id failed: %w", op, err)
			}
			placeholders = append(placeholders, "(uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?))")
			args = append(args, recipientID, message.ID, userID)
		}

		insertRecipients := `
    INSERT INTO message_recipient (id, message_id, user_id)
    VALUES ` + strings.Join(placeholders, ", ")

		if _, err := tx.ExecContext(ctx, insertRecipients, args...); err != nil {
			return fmt.Errorf("%s: insert recipients failed: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit failed: %w", op, err)
	}

	return nil
}

// ListByConversation returns the newest limit messages in chronological
// order: the query pages from the tail of the thread, the slice is flipped
// back for display.
func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]domain.Message, error) {
	const query = `
    SELECT id, conversation_id, sender_id, content, message_type, attachment, attachment_name, is_edited, created_at, updated_at
    FROM message
    WHERE conversation_id = uuid_to_bin(?)
    ORDER BY created_at DESC
    LIMIT ?
    `

	var messages []domain.Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID, limit); err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}

	reverseMessages(messages)

	return messages, nil
}

func reverseMessages(messages []domain.Message) {
	for left, right := 0, len(messages)-1; left < right; left, right = left+1, right-1 {
		messages[left], messages[right] = messages[right], messages[left]
	}
}

func (r *messageRepository) MarkConversationRead(ctx context.Context, conversationID, userID uuid.UUID, at time.Time) error {
	const query = `
    UPDATE message_recipient mr
    JOIN message m ON m.id = mr.message_id
    SET mr.is_read = true, mr.read_at = ?
    WHERE m.conversation_id = uuid_to_bin(?) AND mr.user_id = uuid_to_bin(?) AND mr.is_read = false
    `

	if _, err := r.db.ExecContext(ctx, query, at, conversationID, userID); err != nil {
		return fmt.Errorf("mark conversation read failed: %w", err)
	}

	return nil
}

// CountUnread excludes self-sent messages; a sender is never "unread" on
// their own message.
func (r *messageRepository) CountUnread(ctx context.Context, conversationID, userID uuid.UUID) (int, error) {
	const query = `
    SELECT COUNT(*)
    FROM message_recipient mr
    JOIN message m ON m.id = mr.message_id
    WHERE m.conversation_id = uuid_to_bin(?)
      AND mr.user_id = uuid_to_bin(?)
      AND mr.is_read = false
      AND m.sender_id <> uuid_to_bin(?)
    `

	var count int
	if err := r.db.GetContext(ctx, &count, query, conversationID, userID, userID); err != nil {
		return 0, fmt.Errorf("count unread messages failed: %w", err)
	}

	return count, nil
}

func (r *messageRepository) ListRecipients(ctx context.Context, messageID uuid.UUID) ([]domain.MessageRecipient, error) {
	const query = `
    SELECT id, message_id, user_id, is_read, read_at
    FROM message_recipient
    WHERE message_id = uuid_to_bin(?)
    `

	var recipients []domain.MessageRecipient
	if err := r.db.SelectContext(ctx, &recipients, query, messageID); err != nil {
		return nil, fmt.Errorf("list message recipients failed: %w", err)
	}

	return recipients, nil
}
