package service

import (
	"context"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"

	"github.com/pkg/errors"
)

// dashboardService builds the role-scoped home payload: each role sees only
// the slice of the portfolio its capabilities cover.
type dashboardService struct {
	userRepository       repository.Users
	startupRepository    repository.Startups
	projectRepository    repository.Projects
	taskRepository       repository.Tasks
	investmentRepository repository.Investments
	fundingRepository    repository.Funding
}

func newDashboardService(
	userRepository repository.Users,
	startupRepository repository.Startups,
	projectRepository repository.Projects,
	taskRepository repository.Tasks,
	investmentRepository repository.Investments,
	fundingRepository repository.Funding,
) *dashboardService {
	return &dashboardService{
		userRepository:       userRepository,
		startupRepository:    startupRepository,
		projectRepository:    projectRepository,
		taskRepository:       taskRepository,
		investmentRepository: investmentRepository,
		fundingRepository:    fundingRepository,
	}
}

func (s *dashboardService) ForUser(ctx context.Context, user *domain.User) (map[string]interface{}, error) {
	switch user.Role {
	case domain.RoleManager:
		return s.managerDashboard(ctx)
	case domain.RoleFounder:
		return s.founderDashboard(ctx, user)
	case domain.RoleTeamMember:
		return s.teamMemberDashboard(ctx, user)
	case domain.RoleInvestor:
		return s.investorDashboard(ctx, user)
	}
	return nil, ErrInvalidRole
}

func (s *dashboardService) managerDashboard(ctx context.Context) (map[string]interface{}, error) {
	startupCount, err := s.startupRepository.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count startups")
	}
	projectCount, err := s.projectRepository.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "count projects")
	}
	pending, err := s.fundingRepository.ListByStatus(ctx, domain.FundingSubmitted)
	if err != nil {
		return nil, errors.Wrap(err, "list submitted applications")
	}
	underReview, err := s.fundingRepository.ListByStatus(ctx, domain.FundingUnderReview)
	if err != nil {
		return nil, errors.Wrap(err, "list applications under review")
	}

	return map[string]interface{}{
		"role":                 domain.RoleManager,
		"total_startups":       startupCount,
		"total_projects":       projectCount,
		"pending_applications": pending,
		"under_review":         underReview,
	}, nil
}

func (s *dashboardService) founderDashboard(ctx context.Context, user *domain.User) (map[string]interface{}, error) {
	startups, err := s.startupRepository.ListByFounder(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list founder startups")
	}

	now := time.Now()
	projects := make([]domain.Project, 0)
	overdue := 0
	totalInvested := 0.0
	for _, startup := range startups {
		startupProjects, err := s.projectRepository.ListByStartup(ctx, startup.ID)
		if err != nil {
			return nil, errors.Wrap(err, "list startup projects")
		}
		for _, project := range startupProjects {
			if project.IsOverdue(now) {
				overdue++
			}
		}
		projects = append(projects, startupProjects...)

		investments, err := s.investmentRepository.ListByStartup(ctx, startup.ID)
		if err != nil {
			return nil, errors.Wrap(err, "list startup investments")
		}
		for _, investment := range investments {
			totalInvested += investment.Amount
		}
	}

	return map[string]interface{}{
		"role":             domain.RoleFounder,
		"startups":         startups,
		"projects":         projects,
		"overdue_projects": overdue,
		"total_raised":     totalInvested,
	}, nil
}

func (s *dashboardService) teamMemberDashboard(ctx context.Context, user *domain.User) (map[string]interface{}, error) {
	tasks, err := s.taskRepository.ListByAssignee(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list assigned tasks")
	}
	startups, err := s.startupRepository.ListByTeamMember(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list member startups")
	}

	open := 0
	completed := 0
	for _, task := range tasks {
		switch task.Status {
		case domain.TaskCompleted:
			completed++
		default:
			open++
		}
	}

	return map[string]interface{}{
		"role":            domain.RoleTeamMember,
		"tasks":           tasks,
		"open_tasks":      open,
		"completed_tasks": completed,
		"startups":        startups,
	}, nil
}

func (s *dashboardService) investorDashboard(ctx context.Context, user *domain.User) (map[string]interface{}, error) {
	investments, err := s.investmentRepository.ListByInvestor(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list investor holdings")
	}

	invested := 0.0
	currentValue := 0.0
	for i := range investments {
		invested += investments[i].Amount
		currentValue += investments[i].CurrentValue()
	}

	roi := 0.0
	if invested > 0 {
		roi = (currentValue - invested) / invested * 100
	}

	return map[string]interface{}{
		"role":           domain.RoleInvestor,
		"investments":    investments,
		"total_invested": invested,
		"current_value":  currentValue,
		"portfolio_roi":  roi,
	}, nil
}
