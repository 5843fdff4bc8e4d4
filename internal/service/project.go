package service

import (
	"context"
	"fmt"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type projectService struct {
	projectRepository repository.Projects
	startupRepository repository.Startups
	notifications     Notifications
}

func newProjectService(
	projectRepository repository.Projects,
	startupRepository repository.Startups,
	notifications Notifications,
) *projectService {
	return &projectService{
		projectRepository: projectRepository,
		startupRepository: startupRepository,
		notifications:     notifications,
	}
}

func (s *projectService) Create(ctx context.Context, creatorID uuid.UUID, input CreateProjectInput) (*domain.Project, error) {
	startup, err := s.startupRepository.GetOneByID(ctx, input.StartupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate project id failed: %w", err)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	project := &domain.Project{
		ID:          id,
		StartupID:   startup.ID,
		CreatedBy:   creatorID,
		Name:        input.Name,
		Description: input.Description,
		Status:      domain.ProjectNotStarted,
		Priority:    priority,
		Budget:      input.Budget,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
	}
	if err := s.projectRepository.Create(ctx, project); err != nil {
		return nil, err
	}

	s.notifications.ProjectCreated(ctx, project, startup)

	return project, nil
}

func (s *projectService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projectRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, actorID uuid.UUID, project *domain.Project) error {
	startup, err := s.authorize(ctx, actorID, project)
	if err != nil {
		return err
	}

	if project.Progress < 0 {
		project.Progress = 0
	}
	if project.Progress > 100 {
		project.Progress = 100
	}

	if err := s.projectRepository.Update(ctx, project); err != nil {
		return err
	}

	s.notifications.ProjectUpdated(ctx, project, startup)

	return nil
}

func (s *projectService) Delete(ctx context.Context, actorID, projectID uuid.UUID) error {
	project, err := s.GetOneByID(ctx, projectID)
	if err != nil {
		return err
	}

	startup, err := s.authorize(ctx, actorID, project)
	if err != nil {
		return err
	}

	if err := s.projectRepository.Delete(ctx, projectID); err != nil {
		return err
	}

	s.notifications.ProjectDeleted(ctx, project, startup)

	return nil
}

func (s *projectService) ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	return s.projectRepository.ListByCreator(ctx, userID)
}

func (s *projectService) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Project, error) {
	return s.projectRepository.ListByStartup(ctx, startupID)
}

// authorize allows the project creator and the owning founder; it returns the
// startup so callers can reuse it for fan-out.
func (s *projectService) authorize(ctx context.Context, actorID uuid.UUID, project *domain.Project) (*domain.Startup, error) {
	startup, err := s.startupRepository.GetOneByID(ctx, project.StartupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	if actorID != project.CreatedBy && actorID != startup.FounderID {
		return nil, ErrPermissionDenied
	}
	return startup, nil
}
