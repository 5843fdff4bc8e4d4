package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/venturenest/backend/internal/db"
	"github.com/venturenest/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, username, first_name, last_name, role, phone, bio, password_hash,
	email_verified, email_verification_token, email_verification_expiry,
	last_verification_sent, verification_request_count, verification_rate_limit_expiry,
	created_at, updated_at, deleted_at`

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO user
	(id, email, username, first_name, last_name, role, phone, bio, password_hash)
	VALUES(uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?);
	`

	result, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.FirstName.String,
		user.LastName.String,
		user.Role,
		user.Phone.String,
		user.Bio.String,
		user.PasswordHash,
	)

	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected failed: %w", err)
	}

	if rowsAffected == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}

func (r *userRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user WHERE id = uuid_to_bin(?);`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by id failed: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user WHERE email = ? AND deleted_at IS NULL;`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by email failed: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmailAndToken(ctx context.Context, email, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user
	WHERE email = ? AND email_verification_token = ? AND deleted_at IS NULL;`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user by email and token failed: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM user WHERE role = ? AND deleted_at IS NULL;`

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("select users by role failed: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateVerificationIssue(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error {
	const query = `
	UPDATE user SET email_verification_token = ?, email_verification_expiry = ?
	WHERE id = uuid_to_bin(?);
	`
	_, err := r.db.ExecContext(ctx, query, token, expiry, userID)
	if err != nil {
		return fmt.Errorf("update verification issue failed: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateVerificationCounters(ctx context.Context, userID uuid.UUID, lastSent time.Time, count int, cooldownUntil *time.Time) error {
	const query = `
	UPDATE user SET last_verification_sent = ?, verification_request_count = ?, verification_rate_limit_expiry = ?
	WHERE id = uuid_to_bin(?);
	`
	_, err := r.db.ExecContext(ctx, query, lastSent, count, cooldownUntil, userID)
	if err != nil {
		return fmt.Errorf("update verification counters failed: %w", err)
	}
	return nil
}

// MarkEmailVerified flips the verified flag and clears the token and expiry
// in one statement, keeping the token-null-when-verified invariant.
func (r *userRepository) MarkEmailVerified(ctx context.Context, userID uuid.UUID) error {
	const query = `
	UPDATE user SET email_verified = true, email_verification_token = NULL, email_verification_expiry = NULL
	WHERE id = uuid_to_bin(?);
	`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("mark email verified failed: %w", err)
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

func (r *userRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `UPDATE user SET password_hash = ? WHERE id = uuid_to_bin(?);`

	_, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	return nil
}
