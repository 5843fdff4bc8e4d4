package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type startupService struct {
	startupRepository repository.Startups
	userRepository    repository.Users
	notifications     Notifications
}

func newStartupService(
	startupRepository repository.Startups,
	userRepository repository.Users,
	notifications Notifications,
) *startupService {
	return &startupService{
		startupRepository: startupRepository,
		userRepository:    userRepository,
		notifications:     notifications,
	}
}

func (s *startupService) Create(ctx context.Context, founderID uuid.UUID, input CreateStartupInput) (*domain.Startup, error) {
	founder, err := s.userRepository.GetOneByID(ctx, founderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if founder.Role != domain.RoleFounder && founder.Role != domain.RoleManager {
		return nil, ErrPermissionDenied
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate startup id failed: %w", err)
	}

	stage := input.Stage
	if stage == "" {
		stage = domain.StageIdea
	}

	startup := &domain.Startup{
		ID:             id,
		FounderID:      founderID,
		Name:           input.Name,
		Description:    input.Description,
		Industry:       input.Industry,
		Stage:          stage,
		Location:       input.Location,
		Website:        sql.NullString{String: input.Website, Valid: input.Website != ""},
		TeamSize:       input.TeamSize,
		Market:         input.Market,
		IsActive:       true,
		MonthlyRevenue: input.MonthlyRevenue,
		Valuation:      input.Valuation,
		FoundingDate:   input.FoundingDate,
	}
	if err := s.startupRepository.Create(ctx, startup); err != nil {
		return nil, err
	}

	s.notifications.StartupCreated(ctx, startup, founder)

	return startup, nil
}

func (s *startupService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error) {
	startup, err := s.startupRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return startup, nil
}

// Update is restricted to the owning founder and managers.
func (s *startupService) Update(ctx context.Context, actorID uuid.UUID, startup *domain.Startup) error {
	if err := s.authorize(ctx, actorID, startup.ID); err != nil {
		return err
	}

	if err := s.startupRepository.Update(ctx, startup); err != nil {
		return err
	}

	s.notifications.StartupUpdated(ctx, startup)

	return nil
}

func (s *startupService) ListByFounder(ctx context.Context, founderID uuid.UUID) ([]domain.Startup, error) {
	return s.startupRepository.ListByFounder(ctx, founderID)
}

func (s *startupService) ListAll(ctx context.Context) ([]domain.Startup, error) {
	return s.startupRepository.ListAll(ctx)
}

func (s *startupService) AddTeamMember(ctx context.Context, actorID, startupID, userID uuid.UUID) error {
	if err := s.authorize(ctx, actorID, startupID); err != nil {
		return err
	}

	member, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if member.Role != domain.RoleTeamMember {
		return ErrInvalidRole
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate team member id failed: %w", err)
	}
	err = s.startupRepository.AddTeamMember(ctx, &domain.StartupTeamMember{
		ID:        id,
		StartupID: startupID,
		UserID:    userID,
	})
	if errors.Is(err, domain.ErrDuplicateEntry) {
		// Already on the team, treated as a no-op.
		return nil
	}
	return err
}

func (s *startupService) authorize(ctx context.Context, actorID, startupID uuid.UUID) error {
	startup, err := s.startupRepository.GetOneByID(ctx, startupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrStartupNotFound
		}
		return err
	}
	if startup.FounderID == actorID {
		return nil
	}

	actor, err := s.userRepository.GetOneByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role != domain.RoleManager {
		return ErrPermissionDenied
	}
	return nil
}
