package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/venturenest/backend/internal/domain"
)

const fundingColumns = `id, startup_id, funding_round, amount, equity_offered, valuation, pitch, use_of_funds, milestones, status, created_at, updated_at`

type fundingRepository struct {
	db *sqlx.DB
}

func newFundingRepository(db *sqlx.DB) *fundingRepository {
	return &fundingRepository{
		db: db,
	}
}

func (r *fundingRepository) Create(ctx context.Context, application *domain.FundingApplication) error {
	const query = `
	INSERT INTO funding_application (id, startup_id, funding_round, amount, equity_offered, valuation, pitch, use_of_funds, milestones, status)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query,
		application.ID,
		application.StartupID,
		application.Round,
		application.Amount,
		application.EquityOffered,
		application.Valuation,
		application.Pitch,
		application.UseOfFunds,
		application.Milestones,
		application.Status,
	); err != nil {
		return fmt.Errorf("db insert funding application: %w", err)
	}

	return nil
}

func (r *fundingRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.FundingApplication, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_application WHERE id = uuid_to_bin(?)`

	var application domain.FundingApplication
	if err := r.db.GetContext(ctx, &application, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select funding application by id failed: %w", err)
	}

	return &application, nil
}

func (r *fundingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FundingStatus) error {
	const query = `UPDATE funding_application SET status = ? WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update funding application status failed: %w", err)
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

func (r *fundingRepository) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.FundingApplication, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_application WHERE startup_id = uuid_to_bin(?) ORDER BY created_at DESC`

	var applications []domain.FundingApplication
	if err := r.db.SelectContext(ctx, &applications, query, startupID); err != nil {
		return nil, fmt.Errorf("list funding applications by startup failed: %w", err)
	}

	return applications, nil
}

func (r *fundingRepository) ListByStatus(ctx context.Context, status domain.FundingStatus) ([]domain.FundingApplication, error) {
	query := `SELECT ` + fundingColumns + ` FROM funding_application WHERE status = ? ORDER BY created_at DESC`

	var applications []domain.FundingApplication
	if err := r.db.SelectContext(ctx, &applications, query, status); err != nil {
		return nil, fmt.Errorf("list funding applications by status failed: %w", err)
	}

	return applications, nil
}
