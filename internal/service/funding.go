package service

import (
	"context"
	"fmt"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type fundingService struct {
	fundingRepository repository.Funding
	startupRepository repository.Startups
	notifications     Notifications
}

func newFundingService(
	fundingRepository repository.Funding,
	startupRepository repository.Startups,
	notifications Notifications,
) *fundingService {
	return &fundingService{
		fundingRepository: fundingRepository,
		startupRepository: startupRepository,
		notifications:     notifications,
	}
}

func (s *fundingService) Submit(ctx context.Context, actorID uuid.UUID, input CreateFundingInput) (*domain.FundingApplication, error) {
	startup, err := s.startupRepository.GetOneByID(ctx, input.StartupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	if startup.FounderID != actorID {
		return nil, ErrPermissionDenied
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate funding application id failed: %w", err)
	}

	application := &domain.FundingApplication{
		ID:            id,
		StartupID:     startup.ID,
		Round:         input.Round,
		Amount:        input.Amount,
		EquityOffered: input.EquityOffered,
		Valuation:     input.Valuation,
		Pitch:         input.Pitch,
		UseOfFunds:    input.UseOfFunds,
		Milestones:    input.Milestones,
		Status:        domain.FundingSubmitted,
	}
	if err := s.fundingRepository.Create(ctx, application); err != nil {
		return nil, err
	}

	s.notifications.FundingSubmitted(ctx, application, startup)

	return application, nil
}

// UpdateStatus is a manager-only transition; the new status is broadcast to
// the owning founder.
func (s *fundingService) UpdateStatus(ctx context.Context, actorID, applicationID uuid.UUID, status domain.FundingStatus) error {
	application, err := s.fundingRepository.GetOneByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrFundingNotFound
		}
		return err
	}

	if err := s.fundingRepository.UpdateStatus(ctx, applicationID, status); err != nil {
		return err
	}
	application.Status = status

	startup, err := s.startupRepository.GetOneByID(ctx, application.StartupID)
	if err != nil {
		startup = nil
	}
	s.notifications.FundingStatusChanged(ctx, application, startup)

	return nil
}

func (s *fundingService) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.FundingApplication, error) {
	return s.fundingRepository.ListByStartup(ctx, startupID)
}

func (s *fundingService) ListByStatus(ctx context.Context, status domain.FundingStatus) ([]domain.FundingApplication, error) {
	return s.fundingRepository.ListByStatus(ctx, status)
}
