package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"
	"github.com/venturenest/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// notificationService owns notification rows and the fan-out of domain
// events onto them. Fan-out entry points are best-effort: a failed insert is
// logged and swallowed so it can never abort the write that triggered it.
type notificationService struct {
	notificationRepository repository.Notifications
	userRepository         repository.Users
}

func newNotificationService(
	notificationRepository repository.Notifications,
	userRepository repository.Users,
) *notificationService {
	return &notificationService{
		notificationRepository: notificationRepository,
		userRepository:         userRepository,
	}
}

func (s *notificationService) Create(ctx context.Context, userID uuid.UUID, title, message string, notificationType domain.NotificationType, actionURL string) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate notification id failed: %w", err)
	}

	return s.notificationRepository.Create(ctx, &domain.Notification{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		ActionURL: sql.NullString{String: actionURL, Valid: actionURL != ""},
	})
}

func (s *notificationService) CreateBulk(ctx context.Context, userIDs []uuid.UUID, title, message string, notificationType domain.NotificationType, actionURL string) error {
	notifications := make([]domain.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generate notification id failed: %w", err)
		}
		notifications = append(notifications, domain.Notification{
			ID:        id,
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      notificationType,
			ActionURL: sql.NullString{String: actionURL, Valid: actionURL != ""},
		})
	}

	return s.notificationRepository.CreateBulk(ctx, notifications)
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepository.MarkAllRead(ctx, userID, time.Now())
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notificationRepository.CountUnread(ctx, userID)
}

func (s *notificationService) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.notificationRepository.ListRecent(ctx, userID, limit)
}

// notify is the best-effort single-user path all fan-out events go through.
func (s *notificationService) notify(ctx context.Context, userID uuid.UUID, title, message string, notificationType domain.NotificationType, actionURL string) {
	if err := s.Create(ctx, userID, title, message, notificationType, actionURL); err != nil {
		logger.Warn("notification fan-out failed", zap.String("title", title), zap.Error(err))
	}
}

func (s *notificationService) UserRegistered(ctx context.Context, user *domain.User) {
	s.notify(ctx, user.ID,
		"Welcome to VentureNest!",
		"Your account has been created successfully. Start exploring the platform.",
		domain.NotificationSuccess, "/dashboard/")
}

func (s *notificationService) StartupCreated(ctx context.Context, startup *domain.Startup, founder *domain.User) {
	s.notify(ctx, startup.FounderID,
		"Startup Created",
		fmt.Sprintf("Your startup '%s' has been created successfully.", startup.Name),
		domain.NotificationSuccess, fmt.Sprintf("/founder/startups/%s/", startup.ID))

	managers, err := s.userRepository.ListByRole(ctx, domain.RoleManager)
	if err != nil {
		logger.Warn("list managers for fan-out failed", zap.Error(err))
		return
	}

	founderName := "Unknown Founder"
	if founder != nil {
		founderName = founder.FullName()
	}

	managerIDs := make([]uuid.UUID, 0, len(managers))
	for _, manager := range managers {
		managerIDs = append(managerIDs, manager.ID)
	}
	if err := s.CreateBulk(ctx, managerIDs,
		"New Startup Created",
		fmt.Sprintf("New startup '%s' has been created by %s.", startup.Name, founderName),
		domain.NotificationInfo, fmt.Sprintf("/manager/startups/%s/", startup.ID),
	); err != nil {
		logger.Warn("manager fan-out failed", zap.Error(err))
	}
}

func (s *notificationService) StartupUpdated(ctx context.Context, startup *domain.Startup) {
	s.notify(ctx, startup.FounderID,
		"Startup Updated",
		fmt.Sprintf("Your startup '%s' details have been updated.", startup.Name),
		domain.NotificationInfo, fmt.Sprintf("/founder/startups/%s/", startup.ID))
}

func (s *notificationService) ProjectCreated(ctx context.Context, project *domain.Project, startup *domain.Startup) {
	s.notify(ctx, project.CreatedBy,
		"Project Created Successfully",
		fmt.Sprintf("Your project '%s' has been created successfully.", project.Name),
		domain.NotificationSuccess, fmt.Sprintf("/projects/%s/", project.ID))

	if startup != nil && startup.FounderID != project.CreatedBy {
		s.notify(ctx, startup.FounderID,
			"New Project Created",
			fmt.Sprintf("A new project '%s' has been created for your startup '%s'.", project.Name, startup.Name),
			domain.NotificationInfo, fmt.Sprintf("/founder/projects/%s/", project.ID))
	}
}

func (s *notificationService) ProjectUpdated(ctx context.Context, project *domain.Project, startup *domain.Startup) {
	s.notify(ctx, project.CreatedBy,
		"Project Status Updated",
		fmt.Sprintf("Project '%s' status changed to %s.", project.Name, project.Status),
		domain.NotificationInfo, fmt.Sprintf("/projects/%s/", project.ID))

	if startup != nil && startup.FounderID != project.CreatedBy {
		s.notify(ctx, startup.FounderID,
			"Project Status Updated",
			fmt.Sprintf("Project '%s' status changed to %s.", project.Name, project.Status),
			domain.NotificationInfo, fmt.Sprintf("/founder/projects/%s/", project.ID))
	}
}

// ProjectDeleted uses the pre-deletion snapshot; the row is already gone.
func (s *notificationService) ProjectDeleted(ctx context.Context, snapshot *domain.Project, startup *domain.Startup) {
	s.notify(ctx, snapshot.CreatedBy,
		"Project Deleted",
		fmt.Sprintf("Project '%s' has been deleted.", snapshot.Name),
		domain.NotificationWarning, "/projects/")

	if startup != nil && startup.FounderID != snapshot.CreatedBy {
		s.notify(ctx, startup.FounderID,
			"Project Deleted",
			fmt.Sprintf("Project '%s' has been deleted from your startup.", snapshot.Name),
			domain.NotificationWarning, "/founder/projects/")
	}
}

func (s *notificationService) TaskAssigned(ctx context.Context, task *domain.Task) {
	if task.AssignedTo == nil {
		return
	}
	s.notify(ctx, *task.AssignedTo,
		"New Task Assigned",
		fmt.Sprintf("New task '%s' has been assigned to you.", task.Title),
		domain.NotificationInfo, fmt.Sprintf("/tasks/%s/", task.ID))
}

func (s *notificationService) TaskUpdated(ctx context.Context, task *domain.Task, startup *domain.Startup) {
	if startup == nil {
		return
	}
	if task.AssignedTo != nil && *task.AssignedTo == startup.FounderID {
		return
	}
	s.notify(ctx, startup.FounderID,
		"Task Status Updated",
		fmt.Sprintf("Task '%s' status changed to %s.", task.Title, task.Status),
		domain.NotificationInfo, fmt.Sprintf("/tasks/%s/", task.ID))
}

func (s *notificationService) FundingSubmitted(ctx context.Context, application *domain.FundingApplication, startup *domain.Startup) {
	if startup != nil {
		s.notify(ctx, startup.FounderID,
			"Funding Application Submitted",
			fmt.Sprintf("Your funding application for %s round has been submitted.", application.Round),
			domain.NotificationSuccess, "/founder/funding/rounds/")
	}

	managers, err := s.userRepository.ListByRole(ctx, domain.RoleManager)
	if err != nil {
		logger.Warn("list managers for fan-out failed", zap.Error(err))
		return
	}

	startupName := "Unknown Startup"
	if startup != nil {
		startupName = startup.Name
	}

	managerIDs := make([]uuid.UUID, 0, len(managers))
	for _, manager := range managers {
		managerIDs = append(managerIDs, manager.ID)
	}
	if err := s.CreateBulk(ctx, managerIDs,
		"New Funding Application",
		fmt.Sprintf("New funding application from %s for %s round.", startupName, application.Round),
		domain.NotificationInfo, "/manager/funding/applications/",
	); err != nil {
		logger.Warn("manager fan-out failed", zap.Error(err))
	}
}

// FundingStatusChanged keys the message tone to the new status: info while
// under review, success on approval, error otherwise.
func (s *notificationService) FundingStatusChanged(ctx context.Context, application *domain.FundingApplication, startup *domain.Startup) {
	if startup == nil {
		return
	}

	tone := domain.NotificationError
	switch application.Status {
	case domain.FundingUnderReview:
		tone = domain.NotificationInfo
	case domain.FundingApproved:
		tone = domain.NotificationSuccess
	}

	s.notify(ctx, startup.FounderID,
		"Funding Application Update",
		fmt.Sprintf("Your funding application status changed to %s.", application.Status),
		tone, "/founder/funding/rounds/")
}

func (s *notificationService) InvestmentCreated(ctx context.Context, investment *domain.Investment, startup *domain.Startup) {
	if startup != nil {
		s.notify(ctx, startup.FounderID,
			"New Investment",
			fmt.Sprintf("New investment of $%.2f has been made in your startup.", investment.Amount),
			domain.NotificationSuccess, "/founder/investments/")
	}

	// The investor is a platform user when the row resolves to one.
	if _, err := s.userRepository.GetOneByID(ctx, investment.InvestorID); err == nil {
		startupName := "a startup"
		if startup != nil {
			startupName = startup.Name
		}
		s.notify(ctx, investment.InvestorID,
			"Investment Recorded",
			fmt.Sprintf("Your investment of $%.2f in %s has been recorded.", investment.Amount, startupName),
			domain.NotificationSuccess, "/investor/portfolio/")
	}
}
