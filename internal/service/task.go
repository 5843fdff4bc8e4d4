package service

import (
	"context"
	"fmt"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type taskService struct {
	taskRepository    repository.Tasks
	projectRepository repository.Projects
	startupRepository repository.Startups
	notifications     Notifications
}

func newTaskService(
	taskRepository repository.Tasks,
	projectRepository repository.Projects,
	startupRepository repository.Startups,
	notifications Notifications,
) *taskService {
	return &taskService{
		taskRepository:    taskRepository,
		projectRepository: projectRepository,
		startupRepository: startupRepository,
		notifications:     notifications,
	}
}

func (s *taskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if _, err := s.projectRepository.GetOneByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate task id failed: %w", err)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		ID:          id,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TaskNotStarted,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.taskRepository.Create(ctx, task); err != nil {
		return nil, err
	}

	if task.AssignedTo != nil {
		s.notifications.TaskAssigned(ctx, task)
	}

	return task, nil
}

func (s *taskService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, task *domain.Task) error {
	previous, err := s.GetOneByID(ctx, task.ID)
	if err != nil {
		return err
	}

	if task.Progress < 0 {
		task.Progress = 0
	}
	if task.Progress > 100 {
		task.Progress = 100
	}
	if task.Status == domain.TaskCompleted {
		task.Progress = 100
	}

	if err := s.taskRepository.Update(ctx, task); err != nil {
		return err
	}

	if assigneeChanged(previous, task) {
		s.notifications.TaskAssigned(ctx, task)
	}
	if previous.Status != task.Status {
		startup := s.startupForTask(ctx, task)
		s.notifications.TaskUpdated(ctx, task, startup)
	}

	return nil
}

func (s *taskService) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error) {
	return s.taskRepository.ListByAssignee(ctx, userID)
}

func (s *taskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error) {
	return s.taskRepository.ListByProject(ctx, projectID)
}

func assigneeChanged(previous, current *domain.Task) bool {
	if current.AssignedTo == nil {
		return false
	}
	return previous.AssignedTo == nil || *previous.AssignedTo != *current.AssignedTo
}

// startupForTask walks task -> project -> startup; nil when any hop is gone.
func (s *taskService) startupForTask(ctx context.Context, task *domain.Task) *domain.Startup {
	project, err := s.projectRepository.GetOneByID(ctx, task.ProjectID)
	if err != nil {
		return nil
	}
	startup, err := s.startupRepository.GetOneByID(ctx, project.StartupID)
	if err != nil {
		return nil
	}
	return startup
}
