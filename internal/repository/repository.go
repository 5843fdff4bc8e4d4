package repository

import (
	"context"
	"time"

	"github.com/venturenest/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users          Users
	RefreshSession RefreshSession
	PasswordResets PasswordResets
	Notifications  Notifications
	Conversations  Conversations
	Messages       Messages
	Startups       Startups
	Projects       Projects
	Tasks          Tasks
	Investments    Investments
	Funding        Funding
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:          newUserRepository(db),
		RefreshSession: newRefreshSessionRepository(db),
		PasswordResets: newPasswordResetRepository(db),
		Notifications:  newNotificationRepository(db),
		Conversations:  newConversationRepository(db),
		Messages:       newMessageRepository(db),
		Startups:       newStartupRepository(db),
		Projects:       newProjectRepository(db),
		Tasks:          newTaskRepository(db),
		Investments:    newInvestmentRepository(db),
		Funding:        newFundingRepository(db),
	}
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailAndToken(ctx context.Context, email, token string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	UpdateVerificationIssue(ctx context.Context, userID uuid.UUID, token string, expiry time.Time) error
	UpdateVerificationCounters(ctx context.Context, userID uuid.UUID, lastSent time.Time, count int, cooldownUntil *time.Time) error
	MarkEmailVerified(ctx context.Context, userID uuid.UUID) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

type RefreshSession interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
}

type PasswordResets interface {
	CreateToken(ctx context.Context, token *domain.PasswordResetToken) error
	GetToken(ctx context.Context, token string) (*domain.PasswordResetToken, error)
	MarkTokenUsed(ctx context.Context, id uuid.UUID, at time.Time) error
	CreateAttempt(ctx context.Context, attempt *domain.PasswordResetAttempt) error
	CountAttemptsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

type Notifications interface {
	Create(ctx context.Context, notification *domain.Notification) error
	CreateBulk(ctx context.Context, notifications []domain.Notification) error
	MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

type Conversations interface {
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Conversation, error)
	// CreateDirect inserts the conversation and both membership rows in one
	// transaction.
	CreateDirect(ctx context.Context, conversation *domain.Conversation, userA, userB uuid.UUID) error
	FindDirectBetween(ctx context.Context, userA, userB uuid.UUID) (*domain.Conversation, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.Conversation, error)
	ListMembers(ctx context.Context, conversationID uuid.UUID) ([]domain.ConversationMember, error)
	IsMember(ctx context.Context, conversationID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, member *domain.ConversationMember) error
	RemoveMember(ctx context.Context, conversationID, userID uuid.UUID) error
	CountMembers(ctx context.Context, conversationID uuid.UUID) (int, error)
	SetActive(ctx context.Context, conversationID uuid.UUID, active bool) error
}

type Messages interface {
	// CreateWithRecipients persists the message and one recipient row per
	// given user atomically.
	CreateWithRecipients(ctx context.Context, message *domain.Message, recipients []uuid.UUID) error
	ListByConversation(ctx context.Context, conversationID uuid.UUID, limit int) ([]domain.Message, error)
	MarkConversationRead(ctx context.Context, conversationID, userID uuid.UUID, at time.Time) error
	CountUnread(ctx context.Context, conversationID, userID uuid.UUID) (int, error)
	ListRecipients(ctx context.Context, messageID uuid.UUID) ([]domain.MessageRecipient, error)
}

type Startups interface {
	Create(ctx context.Context, startup *domain.Startup) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error)
	Update(ctx context.Context, startup *domain.Startup) error
	ListByFounder(ctx context.Context, founderID uuid.UUID) ([]domain.Startup, error)
	ListAll(ctx context.Context) ([]domain.Startup, error)
	Count(ctx context.Context) (int64, error)
	AddTeamMember(ctx context.Context, member *domain.StartupTeamMember) error
	// TeamLinkExists reports whether member belongs to any startup owned by
	// the founder.
	TeamLinkExists(ctx context.Context, founderID, memberID uuid.UUID) (bool, error)
	// ShareStartup reports whether two team members serve on at least one
	// common startup.
	ShareStartup(ctx context.Context, userA, userB uuid.UUID) (bool, error)
	ListByTeamMember(ctx context.Context, userID uuid.UUID) ([]domain.Startup, error)
}

type Projects interface {
	Create(ctx context.Context, project *domain.Project) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Project, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)
	Count(ctx context.Context) (int64, error)
}

type Tasks interface {
	Create(ctx context.Context, task *domain.Task) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error)
}

type Investments interface {
	Create(ctx context.Context, investment *domain.Investment) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Investment, error)
	ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.Investment, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Investment, error)
	// LinkExists reports whether the investor holds an investment in any
	// startup owned by the founder.
	LinkExists(ctx context.Context, investorID, founderID uuid.UUID) (bool, error)
}

type Funding interface {
	Create(ctx context.Context, application *domain.FundingApplication) error
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.FundingApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FundingStatus) error
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.FundingApplication, error)
	ListByStatus(ctx context.Context, status domain.FundingStatus) ([]domain.FundingApplication, error)
}
