package service

import (
	"context"
	"time"

	"github.com/venturenest/backend/internal/config"
	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"
	"github.com/venturenest/backend/pkg/auth"
	"github.com/venturenest/backend/pkg/email"
	"github.com/venturenest/backend/pkg/hash"
	"github.com/venturenest/backend/pkg/otp"

	"github.com/google/uuid"
)

type Services struct {
	Users         Users
	Verification  Verification
	Notifications Notifications
	Messaging     Messaging
	Startups      StartupsService
	Projects      ProjectsService
	Tasks         TasksService
	Investments   InvestmentsService
	Funding       FundingService
	Dashboard     Dashboard
}

// SessionStore is the transient per-account state held outside MySQL:
// sticky verification method and login failure counters.
type SessionStore interface {
	VerificationMethod(ctx context.Context, email string) (string, error)
	SetVerificationMethod(ctx context.Context, email, method string) error
	IsLockedOut(ctx context.Context, email string) (bool, error)
	RecordLoginFailure(ctx context.Context, email string) error
	ClearLoginFailures(ctx context.Context, email string) error
}

type Deps struct {
	Config       *config.Config
	Hasher       hash.PasswordHasher
	TokenManager auth.TokenManager
	OtpGenerator otp.Generator
	EmailSender  email.Sender
	Repos        *repository.Repositories
	Sessions     SessionStore
}

func NewServices(deps Deps) *Services {
	notifications := newNotificationService(deps.Repos.Notifications, deps.Repos.Users)
	verification := newVerificationService(
		deps.Repos.Users,
		deps.Repos.PasswordResets,
		deps.OtpGenerator,
		deps.EmailSender,
		deps.Hasher,
		deps.Sessions,
		deps.Config,
	)

	return &Services{
		Users: newUserService(
			deps.Repos.Users,
			deps.Repos.RefreshSession,
			deps.Hasher,
			deps.TokenManager,
			deps.Sessions,
			notifications,
			verification,
		),
		Verification:  verification,
		Notifications: notifications,
		Messaging: newMessagingService(
			deps.Repos.Conversations,
			deps.Repos.Messages,
			deps.Repos.Users,
			deps.Repos.Startups,
			deps.Repos.Investments,
		),
		Startups:    newStartupService(deps.Repos.Startups, deps.Repos.Users, notifications),
		Projects:    newProjectService(deps.Repos.Projects, deps.Repos.Startups, notifications),
		Tasks:       newTaskService(deps.Repos.Tasks, deps.Repos.Projects, deps.Repos.Startups, notifications),
		Investments: newInvestmentService(deps.Repos.Investments, deps.Repos.Startups, notifications),
		Funding:     newFundingService(deps.Repos.Funding, deps.Repos.Startups, notifications),
		Dashboard: newDashboardService(
			deps.Repos.Users,
			deps.Repos.Startups,
			deps.Repos.Projects,
			deps.Repos.Tasks,
			deps.Repos.Investments,
			deps.Repos.Funding,
		),
	}
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

type SignUpInput struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Role      string
	Password  string
	Phone     string
}

type Users interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password, userAgent, userIP string) (*Tokens, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type Verification interface {
	// RequestEmailVerification issues a code subject to the resend policy
	// and returns the delivery method used.
	RequestEmailVerification(ctx context.Context, userID uuid.UUID, preferredMethod string) (string, error)
	// VerifyEmailToken fails closed: any lookup or expiry problem yields
	// false.
	VerifyEmailToken(ctx context.Context, token, emailAddr string) bool
	// RequestPasswordReset never discloses whether the email is known.
	RequestPasswordReset(ctx context.Context, emailAddr, clientIP string) error
	ValidateResetToken(ctx context.Context, token string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
}

type Notifications interface {
	Create(ctx context.Context, userID uuid.UUID, title, message string, notificationType domain.NotificationType, actionURL string) error
	CreateBulk(ctx context.Context, userIDs []uuid.UUID, title, message string, notificationType domain.NotificationType, actionURL string) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	Recent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)

	// Fan-out entry points, one per domain event. All best-effort: they
	// log failures and never propagate them to the triggering operation.
	UserRegistered(ctx context.Context, user *domain.User)
	StartupCreated(ctx context.Context, startup *domain.Startup, founder *domain.User)
	StartupUpdated(ctx context.Context, startup *domain.Startup)
	ProjectCreated(ctx context.Context, project *domain.Project, startup *domain.Startup)
	ProjectUpdated(ctx context.Context, project *domain.Project, startup *domain.Startup)
	ProjectDeleted(ctx context.Context, snapshot *domain.Project, startup *domain.Startup)
	TaskAssigned(ctx context.Context, task *domain.Task)
	TaskUpdated(ctx context.Context, task *domain.Task, startup *domain.Startup)
	FundingSubmitted(ctx context.Context, application *domain.FundingApplication, startup *domain.Startup)
	FundingStatusChanged(ctx context.Context, application *domain.FundingApplication, startup *domain.Startup)
	InvestmentCreated(ctx context.Context, investment *domain.Investment, startup *domain.Startup)
}

type ConversationSummary struct {
	Conversation domain.Conversation `json:"conversation"`
	UnreadCount  int                 `json:"unread_count"`
}

type Messaging interface {
	CanMessage(ctx context.Context, sender, recipient *domain.User) (bool, error)
	// StartDirectConversation is idempotent; the second return reports
	// whether a new conversation was created.
	StartDirectConversation(ctx context.Context, senderID, recipientID uuid.UUID) (*domain.Conversation, bool, error)
	SendMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string, messageType domain.MessageType, attachment string) (*domain.Message, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]ConversationSummary, error)
	ListMessages(ctx context.Context, conversationID, userID uuid.UUID, limit int) ([]domain.Message, error)
	MessageReceipts(ctx context.Context, conversationID, messageID, userID uuid.UUID) ([]domain.MessageRecipient, error)
	MarkConversationRead(ctx context.Context, conversationID, userID uuid.UUID) error
	LeaveConversation(ctx context.Context, conversationID, userID uuid.UUID) error
}

type CreateStartupInput struct {
	Name           string
	Description    string
	Industry       string
	Stage          domain.StartupStage
	Location       string
	Website        string
	TeamSize       int
	Market         string
	MonthlyRevenue float64
	Valuation      float64
	FoundingDate   time.Time
}

type StartupsService interface {
	Create(ctx context.Context, founderID uuid.UUID, input CreateStartupInput) (*domain.Startup, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Startup, error)
	Update(ctx context.Context, actorID uuid.UUID, startup *domain.Startup) error
	ListByFounder(ctx context.Context, founderID uuid.UUID) ([]domain.Startup, error)
	ListAll(ctx context.Context) ([]domain.Startup, error)
	AddTeamMember(ctx context.Context, actorID, startupID, userID uuid.UUID) error
}

type CreateProjectInput struct {
	StartupID   uuid.UUID
	Name        string
	Description string
	Priority    domain.Priority
	Budget      float64
	StartDate   *time.Time
	DueDate     *time.Time
}

type ProjectsService interface {
	Create(ctx context.Context, creatorID uuid.UUID, input CreateProjectInput) (*domain.Project, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	Update(ctx context.Context, actorID uuid.UUID, project *domain.Project) error
	Delete(ctx context.Context, actorID, projectID uuid.UUID) error
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Project, error)
	ListByCreator(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)
}

type CreateTaskInput struct {
	ProjectID   uuid.UUID
	AssignedTo  *uuid.UUID
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     *time.Time
}

type TasksService interface {
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	ListByAssignee(ctx context.Context, userID uuid.UUID) ([]domain.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]domain.Task, error)
}

type CreateInvestmentInput struct {
	StartupID      uuid.UUID
	Amount         float64
	Equity         float64
	Valuation      float64
	Round          domain.FundingRound
	InvestmentDate time.Time
}

type InvestmentsService interface {
	Create(ctx context.Context, investorID uuid.UUID, input CreateInvestmentInput) (*domain.Investment, error)
	ListByInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.Investment, error)
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.Investment, error)
}

type CreateFundingInput struct {
	StartupID     uuid.UUID
	Round         domain.FundingRound
	Amount        float64
	EquityOffered *float64
	Valuation     *float64
	Pitch         string
	UseOfFunds    string
	Milestones    string
}

type FundingService interface {
	Submit(ctx context.Context, actorID uuid.UUID, input CreateFundingInput) (*domain.FundingApplication, error)
	UpdateStatus(ctx context.Context, actorID, applicationID uuid.UUID, status domain.FundingStatus) error
	ListByStartup(ctx context.Context, startupID uuid.UUID) ([]domain.FundingApplication, error)
	ListByStatus(ctx context.Context, status domain.FundingStatus) ([]domain.FundingApplication, error)
}

type Dashboard interface {
	ForUser(ctx context.Context, user *domain.User) (map[string]interface{}, error)
}
