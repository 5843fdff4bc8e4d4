package service

import (
	"context"
	"fmt"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type investmentService struct {
	investmentRepository repository.Investments
	startupRepository    repository.Startups
	notifications        Notifications
}

func newInvestmentService(
	investmentRepository repository.Investments,
	startupRepository repository.Startups,
	notifications Notifications,
) *investmentService {
	return &investmentService{
		investmentRepository: investmentRepository,
		startupRepository:    startupRepository,
		notifications:        notifications,
	}
}

func (s *investmentService) Create(ctx context.Context, investorID uuid.UUID, input CreateInvestmentInput) (*domain.Investment, error) {
	startup, err := s.startupRepository.GetOneByID(ctx, input.StartupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate investment id failed: %w", err)
	}

	investment := &domain.Investment{
		ID:             id,
		InvestorID:     investorID,
		StartupID:      startup.ID,
		Amount:         input.Amount,
		Equity:         input.Equity,
		Valuation:      input.Valuation,
		Round:          input.Round,
		Status:         domain.InvestmentActive,
		InvestmentDate: input.InvestmentDate,
	}
	if err := s.investmentRepository.Create(ctx, investment); err != nil {
		return nil, err
	}

	s.notifications.InvestmentCreated(ctx, investment, startup)

	return investment, nil
}

func (s *investmentService) ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.Investment, error) {
	return s.investmentRepository.ListByInvestor(ctx, investorID)
}

func (s *investmentService) ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Investment, error) {
	return s.investmentRepository.ListByStartup(ctx, startupID)
}
