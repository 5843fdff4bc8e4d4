package domain

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of platform roles. Stored lowercase; any casing
// arriving at the boundary is normalized through ParseRole.
type Role string

const (
	RoleManager    Role = "manager"
	RoleFounder    Role = "founder"
	RoleTeamMember Role = "team_member"
	RoleInvestor   Role = "investor"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(s)) {
	case RoleManager:
		return RoleManager, true
	case RoleFounder:
		return RoleFounder, true
	case RoleTeamMember:
		return RoleTeamMember, true
	case RoleInvestor:
		return RoleInvestor, true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

type User struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Email        string         `db:"email" json:"email"`
	Username     string         `db:"username" json:"username"`
	FirstName    sql.NullString `db:"first_name" json:"first_name"`
	LastName     sql.NullString `db:"last_name" json:"last_name"`
	Role         Role           `db:"role" json:"role"`
	Phone        sql.NullString `db:"phone" json:"phone"`
	Bio          sql.NullString `db:"bio" json:"bio"`
	PasswordHash string         `db:"password_hash" json:"-"`

	EmailVerified bool `db:"email_verified" json:"email_verified"`

	// Verification bookkeeping. Token and expiry are both null once the
	// address is verified.
	EmailVerificationToken  sql.NullString `db:"email_verification_token" json:"-"`
	EmailVerificationExpiry *time.Time     `db:"email_verification_expiry" json:"-"`
	LastVerificationSent    *time.Time     `db:"last_verification_sent" json:"-"`
	VerificationRequests    int            `db:"verification_request_count" json:"-"`
	VerificationCooldownTil *time.Time     `db:"verification_rate_limit_expiry" json:"-"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// FullName falls back to the email when no name parts are set.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName.String + " " + u.LastName.String)
	if name == "" {
		return u.Email
	}
	return name
}
