package domain

import (
	"time"

	"github.com/google/uuid"
)

type PasswordResetToken struct {
	ID        uuid.UUID  `db:"id"`
	UserID    uuid.UUID  `db:"user_id"`
	Token     string     `db:"token"`
	Used      bool       `db:"used"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	UsedAt    *time.Time `db:"used_at"`
}

// IsExpired reports the single caller-visible invalid state: a consumed
// token and a past-expiry token are indistinguishable.
func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return t.Used || now.After(t.ExpiresAt)
}

// PasswordResetAttempt is an append-only audit row; the reset rate limit is
// a count of rows inside a sliding window.
type PasswordResetAttempt struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	IPAddress  string    `db:"ip_address"`
	Successful bool      `db:"successful"`
	CreatedAt  time.Time `db:"created_at"`
}

type RefreshSession struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	RefreshToken uuid.UUID `db:"refresh_token"`
	UserAgent    string    `db:"user_agent"`
	IP           string    `db:"ip"`
	ExpiresIn    time.Time `db:"expires_in"`
}
