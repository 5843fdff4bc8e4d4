package domain

import (
	"time"

	"github.com/google/uuid"
)

type FundingStatus string

const (
	FundingDraft       FundingStatus = "draft"
	FundingSubmitted   FundingStatus = "submitted"
	FundingUnderReview FundingStatus = "under_review"
	FundingApproved    FundingStatus = "approved"
	FundingRejected    FundingStatus = "rejected"
	FundingFunded      FundingStatus = "funded"
)

type FundingApplication struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	StartupID     uuid.UUID     `db:"startup_id" json:"startup_id"`
	Round         FundingRound  `db:"funding_round" json:"funding_round"`
	Amount        float64       `db:"amount" json:"amount"`
	EquityOffered *float64      `db:"equity_offered" json:"equity_offered,omitempty"`
	Valuation     *float64      `db:"valuation" json:"valuation,omitempty"`
	Pitch         string        `db:"pitch" json:"pitch"`
	UseOfFunds    string        `db:"use_of_funds" json:"use_of_funds"`
	Milestones    string        `db:"milestones" json:"milestones"`
	Status        FundingStatus `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
