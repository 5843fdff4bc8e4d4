package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type StartupStage string

const (
	StageIdea    StartupStage = "idea"
	StagePreSeed StartupStage = "pre_seed"
	StageSeed    StartupStage = "seed"
	StageSeriesA StartupStage = "series_a"
	StageSeriesB StartupStage = "series_b"
	StageGrowth  StartupStage = "growth"
)

type Startup struct {
	ID          uuid.UUID      `db:"id" json:"id"`
	FounderID   uuid.UUID      `db:"founder_id" json:"founder_id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Industry    string         `db:"industry" json:"industry"`
	Stage       StartupStage   `db:"stage" json:"stage"`
	Location    string         `db:"location" json:"location"`
	Website     sql.NullString `db:"website" json:"website"`
	TeamSize    int            `db:"team_size" json:"team_size"`
	Market      string         `db:"market" json:"market"`
	IsActive    bool           `db:"is_active" json:"is_active"`

	MonthlyRevenue float64 `db:"monthly_revenue" json:"monthly_revenue"`
	Valuation      float64 `db:"valuation" json:"valuation"`

	FoundingDate time.Time `db:"founding_date" json:"founding_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StartupTeamMember links team-member users to a startup; it backs the
// founder/team and team/team messaging rules.
type StartupTeamMember struct {
	ID        uuid.UUID `db:"id" json:"id"`
	StartupID uuid.UUID `db:"startup_id" json:"startup_id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	JoinedAt  time.Time `db:"joined_at" json:"joined_at"`
}
