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

const investmentColumns = `id, investor_id, startup_id, amount, equity, valuation, round, status,
	current_valuation, exit_date, exit_value, investment_date, created_at, updated_at`

type investmentRepository struct {
	db *sqlx.DB
}

func newInvestmentRepository(db *sqlx.DB) *investmentRepository {
	return &investmentRepository{
		db: db,
	}
}

func (r *investmentRepository) Create(ctx context.Context, investment *domain.Investment) error {
	const query = `
	INSERT INTO investment (id, investor_id, startup_id, amount, equity, valuation, round, status, investment_date)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query,
		investment.ID,
		investment.InvestorID,
		investment.StartupID,
		investment.Amount,
		investment.Equity,
		investment.Valuation,
		investment.Round,
		investment.Status,
		investment.InvestmentDate,
	); err != nil {
		return fmt.Errorf("db insert investment: %w", err)
	}

	return nil
}

func (r *investmentRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE id = uuid_to_bin(?)`

	var investment domain.Investment
	if err := r.db.GetContext(ctx, &investment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select investment by id failed: %w", err)
	}

	return &investment, nil
}

func (r *investmentRepository) ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE investor_id = uuid_to_bin(?) ORDER BY investment_date DESC`

	var investments []domain.Investment
	if err := r.db.SelectContext(ctx, &investments, query, investorID); err != nil {
		return nil, fmt.Errorf("list investments by investor failed: %w", err)
	}

	return investments, nil
}

func (r *investmentRepository) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Investment, error) {
	query := `SELECT ` + investmentColumns + ` FROM investment WHERE startup_id = uuid_to_bin(?) ORDER BY investment_date DESC`

	var investments []domain.Investment
	if err := r.db.SelectContext(ctx, &investments, query, startupID); err != nil {
		return nil, fmt.Errorf("list investments by startup failed: %w", err)
	}

	return investments, nil
}

func (r *investmentRepository) LinkExists(ctx context.Context, investorID, founderID uuid.UUID) (bool, error) {
	const query = `
	SELECT COUNT(*)
	FROM investment i
	JOIN startup s ON s.id = i.startup_id
	WHERE i.investor_id = uuid_to_bin(?) AND s.founder_id = uuid_to_bin(?)
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, investorID, founderID); err != nil {
		return false, fmt.Errorf("check investment link failed: %w", err)
	}

	return count > 0, nil
}
