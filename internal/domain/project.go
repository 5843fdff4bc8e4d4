package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectDelayed    ProjectStatus = "delayed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Project struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	StartupID   uuid.UUID     `db:"startup_id" json:"startup_id"`
	CreatedBy   uuid.UUID     `db:"created_by" json:"created_by"`
	Name        string        `db:"name" json:"name"`
	Description string        `db:"description" json:"description"`
	Status      ProjectStatus `db:"status" json:"status"`
	Priority    Priority      `db:"priority" json:"priority"`
	Budget      float64       `db:"budget" json:"budget"`
	Progress    int           `db:"progress" json:"progress"`

	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	DueDate   *time.Time `db:"due_date" json:"due_date,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func (p *Project) IsOverdue(now time.Time) bool {
	return p.DueDate != nil && p.Status != ProjectCompleted && now.After(*p.DueDate)
}
