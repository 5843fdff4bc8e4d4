package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/venturenest/backend/internal/db"
	"github.com/venturenest/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const conversationColumns = `id, title, conversation_type, created_by, is_active, startup_id, project_id, investment_id, created_at`

type conversationRepository struct {
	db *sqlx.DB
}

func newConversationRepository(db *sqlx.DB) *conversationRepository {
	return &conversationRepository{
		db: db,
	}
}

func (r *conversationRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversation WHERE id = uuid_to_bin(?)`

	var conversation domain.Conversation
	if err := r.db.GetContext(ctx, &conversation, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select conversation by id failed: %w", err)
	}

	return &conversation, nil
}

// directPairKey returns the canonical identity of a direct pair: the two
// member ids sorted lexically. Both call orders produce the same key, so the
// unique index on conversation.direct_key admits one direct row per pair.
func directPairKey(userA, userB uuid.UUID) string {
	a, b := userA.String(), userB.String()
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// CreateDirect guards against concurrent duplicate creation: both the
// conversation and its two membership rows commit together, and the pair key
// unique index turns the losing insert into domain.ErrDuplicateEntry.
func (r *conversationRepository) CreateDirect(ctx context.Context, conversation *domain.Conversation, userA, userB uuid.UUID) error {
	const op = "repository.conversation.CreateDirect"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin tx failed: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	const insertConversation = `
    INSERT INTO conversation (id, title, conversation_type, created_by, is_active, direct_key)
    VALUES (uuid_to_bin(?), ?, ?, uuid_to_bin(?), true, ?)
    `
	if _, err := tx.ExecContext(ctx, insertConversation,
		conversation.ID, conversation.Title, conversation.Type, conversation.CreatedBy,
		directPairKey(userA, userB),
	); err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("%s: insert conversation failed: %w", op, err)
	}

	const insertMember = `
    INSERT INTO conversation_member (id, conversation_id, user_id, is_admin)
    VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?)
    `
	for i, userID := range []uuid.UUID{userA, userB} {
		memberID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("%s: generate member id failed: %w", op, err)
		}
		if _, err := tx.ExecContext(ctx, insertMember, memberID, conversation.ID, userID, i == 0); err != nil {
			return fmt.Errorf("%s: insert member failed: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit failed: %w", op, err)
	}

	return nil
}

func (r *conversationRepository) FindDirectBetween(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error) {
	query := `
    SELECT ` + conversationColumns + ` FROM conversation c
    WHERE c.conversation_type = 'direct'
      AND EXISTS (SELECT 1 FROM conversation_member m WHERE m.conversation_id = c.id AND m.user_id = uuid_to_bin(?))
      AND EXISTS (SELECT 1 FROM conversation_member m WHERE m.conversation_id = c.id AND m.user_id = uuid_to_bin(?))
    ORDER BY c.created_at
    LIMIT 1
    `

	var conversation domain.Conversation
	if err := r.db.GetContext(ctx, &conversation, query, userA, userB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find direct conversation failed: %w", err)
	}

	return &conversation, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error) {
	query := `
    SELECT ` + conversationColumns + ` FROM conversation c
    WHERE c.is_active = true
      AND EXISTS (SELECT 1 FROM conversation_member m WHERE m.conversation_id = c.id AND m.user_id = uuid_to_bin(?))
    ORDER BY c.created_at DESC
    `

	var conversations []domain.Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, fmt.Errorf("list conversations for user failed: %w", err)
	}

	return conversations, nil
}

func (r *conversationRepository) ListMembers(ctx context.Context, conversationID uuid.UUID) ([]domain.ConversationMember, error) {
	const query = `
    SELECT id, conversation_id, user_id, is_admin, joined_at
    FROM conversation_member
    WHERE conversation_id = uuid_to_bin(?)
    ORDER BY joined_at
    `

	var members []domain.ConversationMember
	if err := r.db.SelectContext(ctx, &members, query, conversationID); err != nil {
		return nil, fmt.Errorf("list conversation members failed: %w", err)
	}

	return members, nil
}

func (r *conversationRepository) IsMember(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	const query = `
    SELECT COUNT(*) FROM conversation_member
    WHERE conversation_id = uuid_to_bin(?) AND user_id = uuid_to_bin(?)
    `

	var count int
	if err := r.db.GetContext(ctx, &count, query, conversationID, userID); err != nil {
		return false, fmt.Errorf("check conversation membership failed: %w", err)
	}

	return count > 0, nil
}

func (r *conversationRepository) AddMember(ctx context.Context, member *domain.ConversationMember) error {
	const query = `
    INSERT INTO conversation_member (id, conversation_id, user_id, is_admin)
    VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?)
    `

	if _, err := r.db.ExecContext(ctx, query, member.ID, member.ConversationID, member.UserID, member.IsAdmin); err != nil {
		return fmt.Errorf("insert conversation member failed: %w", err)
	}

	return nil
}

func (r *conversationRepository) RemoveMember(ctx context.Context, conversationID, userID uuid.UUID) error {
	const query = `
    DELETE FROM conversation_member
    WHERE conversation_id = uuid_to_bin(?) AND user_id = uuid_to_bin(?)
    `

	res, err := r.db.ExecContext(ctx, query, conversationID, userID)
	if err != nil {
		return fmt.Errorf("delete conversation member failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}
	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *conversationRepository) CountMembers(ctx context.Context, conversationID uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM conversation_member WHERE conversation_id = uuid_to_bin(?)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, conversationID); err != nil {
		return 0, fmt.Errorf("count conversation members failed: %w", err)
	}

	return count, nil
}

func (r *conversationRepository) SetActive(ctx context.Context, conversationID uuid.UUID, active bool) error {
	const query = `UPDATE conversation SET is_active = ? WHERE id = uuid_to_bin(?)`

	if _, err := r.db.ExecContext(ctx, query, active, conversationID); err != nil {
		return fmt.Errorf("set conversation active failed: %w", err)
	}

	return nil
}
