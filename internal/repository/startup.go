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

const startupColumns = `id, founder_id, name, description, industry, stage, location, website, team_size, market, is_active,
	monthly_revenue, valuation, founding_date, created_at, updated_at`

type startupRepository struct {
	db *sqlx.DB
}

func newStartupRepository(db *sqlx.DB) *startupRepository {
	return &startupRepository{
		db: db,
	}
}

func (r *startupRepository) Create(ctx context.Context, startup *domain.Startup) error {
	const query = `
	INSERT INTO startup (id, founder_id, name, description, industry, stage, location, website, team_size, market, monthly_revenue, valuation, founding_date)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query,
		startup.ID,
		startup.FounderID,
		startup.Name,
		startup.Description,
		startup.Industry,
		startup.Stage,
		startup.Location,
		startup.Website,
		startup.TeamSize,
		startup.Market,
		startup.MonthlyRevenue,
		startup.Valuation,
		startup.FoundingDate,
	); err != nil {
		return fmt.Errorf("db insert startup: %w", err)
	}

	return nil
}

func (r *startupRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startup WHERE id = uuid_to_bin(?)`

	var startup domain.Startup
	if err := r.db.GetContext(ctx, &startup, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select startup by id failed: %w", err)
	}

	return &startup, nil
}

func (r *startupRepository) Update(ctx context.Context, startup *domain.Startup) error {
	const query = `
	UPDATE startup
	SET name = ?, description = ?, industry = ?, stage = ?, location = ?, website = ?, team_size = ?, market = ?, monthly_revenue = ?, valuation = ?, is_active = ?
	WHERE id = uuid_to_bin(?)
	`

	res, err := r.db.ExecContext(ctx, query,
		startup.Name,
		startup.Description,
		startup.Industry,
		startup.Stage,
		startup.Location,
		startup.Website,
		startup.TeamSize,
		startup.Market,
		startup.MonthlyRevenue,
		startup.Valuation,
		startup.IsActive,
		startup.ID,
	)
	if err != nil {
		return fmt.Errorf("update startup failed: %w", err)
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

func (r *startupRepository) ListByFounder(ctx context.Context, founderID uuid.UUID) ([]domain.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startup WHERE founder_id = uuid_to_bin(?) ORDER BY created_at DESC`

	var startups []domain.Startup
	if err := r.db.SelectContext(ctx, &startups, query, founderID); err != nil {
		return nil, fmt.Errorf("list startups by founder failed: %w", err)
	}

	return startups, nil
}

func (r *startupRepository) ListAll(ctx context.Context) ([]domain.Startup, error) {
	query := `SELECT ` + startupColumns + ` FROM startup ORDER BY created_at DESC`

	var startups []domain.Startup
	if err := r.db.SelectContext(ctx, &startups, query); err != nil {
		return nil, fmt.Errorf("list all startups failed: %w", err)
	}

	return startups, nil
}

func (r *startupRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM startup WHERE is_active = true`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count startups failed: %w", err)
	}

	return count, nil
}

func (r *startupRepository) AddTeamMember(ctx context.Context, member *domain.StartupTeamMember) error {
	const query = `
	INSERT INTO startup_team_member (id, startup_id, user_id)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?))
	`

	if _, err := r.db.ExecContext(ctx, query, member.ID, member.StartupID, member.UserID); err != nil {
		return fmt.Errorf("db insert startup team member: %w", err)
	}

	return nil
}

func (r *startupRepository) TeamLinkExists(ctx context.Context, founderID, memberID uuid.UUID) (bool, error) {
	const query = `
	SELECT COUNT(*)
	FROM startup_team_member stm
	JOIN startup s ON s.id = stm.startup_id
	WHERE s.founder_id = uuid_to_bin(?) AND stm.user_id = uuid_to_bin(?)
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, founderID, memberID); err != nil {
		return false, fmt.Errorf("check team link failed: %w", err)
	}

	return count > 0, nil
}

func (r *startupRepository) ShareStartup(ctx context.Context, userA, userB uuid.UUID) (bool, error) {
	const query = `
	SELECT COUNT(*)
	FROM startup_team_member a
	JOIN startup_team_member b ON a.startup_id = b.startup_id
	WHERE a.user_id = uuid_to_bin(?) AND b.user_id = uuid_to_bin(?)
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userA, userB); err != nil {
		return false, fmt.Errorf("check shared startup failed: %w", err)
	}

	return count > 0, nil
}

func (r *startupRepository) ListByTeamMember(ctx context.Context, userID uuid.UUID) ([]domain.Startup, error) {
	query := `
	SELECT ` + startupColumns + ` FROM startup s
	JOIN startup_team_member stm ON stm.startup_id = s.id
	WHERE stm.user_id = uuid_to_bin(?)
	ORDER BY s.created_at DESC
	`

	var startups []domain.Startup
	if err := r.db.SelectContext(ctx, &startups, query, userID); err != nil {
		return nil, fmt.Errorf("list startups by team member failed: %w", err)
	}

	return startups, nil
}
