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

const projectColumns = `id, startup_id, created_by, name, description, status, priority, budget, progress, start_date, due_date, created_at, updated_at`

type projectRepository struct {
	db *sqlx.DB
}

func newProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{
		db: db,
	}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	const query = `
	INSERT INTO project (id, startup_id, created_by, name, description, status, priority, budget, progress, start_date, due_date)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query,
		project.ID,
		project.StartupID,
		project.CreatedBy,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.Budget,
		project.Progress,
		project.StartDate,
		project.DueDate,
	); err != nil {
		return fmt.Errorf("db insert project: %w", err)
	}

	return nil
}

func (r *projectRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE id = uuid_to_bin(?)`

	var project domain.Project
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select project by id failed: %w", err)
	}

	return &project, nil
}

func (r *projectRepository) Update(ctx context.Context, project *domain.Project) error {
	const query = `
	UPDATE project
	SET name = ?, description = ?, status = ?, priority = ?, budget = ?, progress = ?, start_date = ?, due_date = ?
	WHERE id = uuid_to_bin(?)
	`

	res, err := r.db.ExecContext(ctx, query,
		project.Name,
		project.Description,
		project.Status,
		project.Priority,
		project.Budget,
		project.Progress,
		project.StartDate,
		project.DueDate,
		project.ID,
	)
	if err != nil {
		return fmt.Errorf("update project failed: %w", err)
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

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM project WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project failed: %w", err)
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

func (r *projectRepository) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE startup_id = uuid_to_bin(?) ORDER BY created_at DESC`

	var projects []domain.Project
	if err := r.db.SelectContext(ctx, &projects, query, startupID); err != nil {
		return nil, fmt.Errorf("list projects by startup failed: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM project WHERE created_by = uuid_to_bin(?) ORDER BY created_at DESC`

	var projects []domain.Project
	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("list projects by creator failed: %w", err)
	}

	return projects, nil
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM project`

	var count int64
	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, fmt.Errorf("count projects failed: %w", err)
	}

	return count, nil
}
