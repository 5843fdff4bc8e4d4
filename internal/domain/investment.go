package domain

import (
	"time"

	"github.com/google/uuid"
)

type FundingRound string

const (
	RoundPreSeed FundingRound = "pre_seed"
	RoundSeed    FundingRound = "seed"
	RoundSeriesA FundingRound = "series_a"
	RoundSeriesB FundingRound = "series_b"
	RoundSeriesC FundingRound = "series_c"
)

type InvestmentStatus string

const (
	InvestmentActive     InvestmentStatus = "active"
	InvestmentExited     InvestmentStatus = "exited"
	InvestmentWrittenOff InvestmentStatus = "written_off"
)

type Investment struct {
	ID         uuid.UUID        `db:"id" json:"id"`
	InvestorID uuid.UUID        `db:"investor_id" json:"investor_id"`
	StartupID  uuid.UUID        `db:"startup_id" json:"startup_id"`
	Amount     float64          `db:"amount" json:"amount"`
	Equity     float64          `db:"equity" json:"equity"`
	Valuation  float64          `db:"valuation" json:"valuation"`
	Round      FundingRound     `db:"round" json:"round"`
	Status     InvestmentStatus `db:"status" json:"status"`

	CurrentValuation *float64   `db:"current_valuation" json:"current_valuation,omitempty"`
	ExitDate         *time.Time `db:"exit_date" json:"exit_date,omitempty"`
	ExitValue        *float64   `db:"exit_value" json:"exit_value,omitempty"`

	InvestmentDate time.Time `db:"investment_date" json:"investment_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// CurrentValue estimates the holding's worth from the latest valuation,
// falling back to the invested amount.
func (i *Investment) CurrentValue() float64 {
	if i.CurrentValuation != nil {
		return *i.CurrentValuation * i.Equity / 100
	}
	return i.Amount
}

// ROI is the percentage return over the invested amount.
func (i *Investment) ROI() float64 {
	if i.Amount == 0 {
		return 0
	}
	return (i.CurrentValue() - i.Amount) / i.Amount * 100
}
