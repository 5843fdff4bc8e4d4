package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/venturenest/backend/internal/domain"
)

type passwordResetRepository struct {
	db *sqlx.DB
}

func newPasswordResetRepository(db *sqlx.DB) *passwordResetRepository {
	return &passwordResetRepository{
		db: db,
	}
}

func (r *passwordResetRepository) CreateToken(ctx context.Context, token *domain.PasswordResetToken) error {
	const op = "repository.passwordReset.CreateToken"

	const query = `
    INSERT INTO password_reset_token (id, user_id, token, expires_at)
    VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?)
    `

	res, err := r.db.ExecContext(ctx, query, token.ID, token.UserID, token.Token, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: insert reset token failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows != 1 {
		return fmt.Errorf("%s: expected 1 row affected, got %d", op, rows)
	}

	return nil
}

func (r *passwordResetRepository) GetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	const op = "repository.passwordReset.GetToken"

	const query = `
    SELECT id, user_id, token, used, expires_at, created_at, used_at
    FROM password_reset_token
    WHERE token = ?
    `

	var resetToken domain.PasswordResetToken
	if err := r.db.GetContext(ctx, &resetToken, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: select reset token failed: %w", op, err)
	}

	return &resetToken, nil
}

// MarkTokenUsed consumes the token; the used=false guard makes a second
// confirm with the same token report no rows.
func (r *passwordResetRepository) MarkTokenUsed(ctx context.Context, id uuid.UUID, at time.Time) error {
	const op = "repository.passwordReset.MarkTokenUsed"

	const query = `
    UPDATE password_reset_token
    SET used = true, used_at = ?
    WHERE id = uuid_to_bin(?) AND used = false
    `

	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		return fmt.Errorf("%s: update reset token failed: %w", op, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: get rows affected failed: %w", op, err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *passwordResetRepository) CreateAttempt(ctx context.Context, attempt *domain.PasswordResetAttempt) error {
	const op = "repository.passwordReset.CreateAttempt"

	const query = `
    INSERT INTO password_reset_attempt (id, user_id, ip_address, successful)
    VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?)
    `

	if _, err := r.db.ExecContext(ctx, query, attempt.ID, attempt.UserID, attempt.IPAddress, attempt.Successful); err != nil {
		return fmt.Errorf("%s: insert reset attempt failed: %w", op, err)
	}

	return nil
}

func (r *passwordResetRepository) CountAttemptsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	const op = "repository.passwordReset.CountAttemptsSince"

	const query = `
    SELECT COUNT(*) FROM password_reset_attempt
    WHERE user_id = uuid_to_bin(?) AND created_at >= ?
    `

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("%s: count reset attempts failed: %w", op, err)
	}

	return count, nil
}
