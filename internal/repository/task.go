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

const taskColumns = `id, project_id, assigned_to, title, description, status, priority, progress, due_date, created_at, updated_at`

type taskRepository struct {
	db *sqlx.DB
}

func newTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{
		db: db,
	}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
	INSERT INTO task (id, project_id, assigned_to, title, description, status, priority, progress, due_date)
	VALUES (uuid_to_bin(?), uuid_to_bin(?), uuid_to_bin(?), ?, ?, ?, ?, ?, ?)
	`

	var assignedTo interface{}
	if task.AssignedTo != nil {
		assignedTo = *task.AssignedTo
	}

	if _, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.ProjectID,
		assignedTo,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Progress,
		task.DueDate,
	); err != nil {
		return fmt.Errorf("db insert task: %w", err)
	}

	return nil
}

func (r *taskRepository) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE id = uuid_to_bin(?)`

	var task domain.Task
	if err := r.db.GetContext(ctx, &task, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select task by id failed: %w", err)
	}

	return &task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
	UPDATE task
	SET title = ?, description = ?, status = ?, priority = ?, progress = ?, due_date = ?
	WHERE id = uuid_to_bin(?)
	`

	res, err := r.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.Progress,
		task.DueDate,
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("update task failed: %w", err)
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

func (r *taskRepository) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE assigned_to = uuid_to_bin(?) ORDER BY created_at DESC`

	var tasks []domain.Task
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks by assignee failed: %w", err)
	}

	return tasks, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM task WHERE project_id = uuid_to_bin(?) ORDER BY created_at DESC`

	var tasks []domain.Task
	if err := r.db.SelectContext(ctx, &tasks, query, projectID); err != nil {
		return nil, fmt.Errorf("list tasks by project failed: %w", err)
	}

	return tasks, nil
}
