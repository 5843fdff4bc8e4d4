package service

import (
	"context"
	"testing"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/pkg/hash"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefreshSessionRepo struct {
	sessions []domain.RefreshSession
}

func (f *fakeRefreshSessionRepo) Create(_ context.Context, session *domain.RefreshSession) error {
	f.sessions = append(f.sessions, *session)
	return nil
}

type fakeTokenManager struct{}

func (fakeTokenManager) NewJWT(userID *uuid.UUID, role string) (string, time.Duration, error) {
	return "access-" + userID.String() + "-" + role, 15 * time.Minute, nil
}

func (fakeTokenManager) Parse(string) (string, string, error) { return "", "", nil }

func (fakeTokenManager) NewRefreshToken() (uuid.UUID, time.Duration, error) {
	id, err := uuid.NewV7()
	return id, 240 * time.Hour, err
}

func (fakeTokenManager) ValidateRefreshToken(refreshToken string) (*uuid.UUID, error) {
	id, err := uuid.Parse(refreshToken)
	return &id, err
}

type noopNotifications struct{}

func (noopNotifications) Create(context.Context, uuid.UUID, string, string, domain.NotificationType, string) error {
	return nil
}
func (noopNotifications) CreateBulk(context.Context, []uuid.UUID, string, string, domain.NotificationType, string) error {
	return nil
}
func (noopNotifications) MarkAllRead(context.Context, uuid.UUID) error        { return nil }
func (noopNotifications) UnreadCount(context.Context, uuid.UUID) (int, error) { return 0, nil }
func (noopNotifications) Recent(context.Context, uuid.UUID, int) ([]domain.Notification, error) {
	return nil, nil
}
func (noopNotifications) UserRegistered(context.Context, *domain.User)                      {}
func (noopNotifications) StartupCreated(context.Context, *domain.Startup, *domain.User)     {}
func (noopNotifications) StartupUpdated(context.Context, *domain.Startup)                   {}
func (noopNotifications) ProjectCreated(context.Context, *domain.Project, *domain.Startup)  {}
func (noopNotifications) ProjectUpdated(context.Context, *domain.Project, *domain.Startup)  {}
func (noopNotifications) ProjectDeleted(context.Context, *domain.Project, *domain.Startup)  {}
func (noopNotifications) TaskAssigned(context.Context, *domain.Task)                        {}
func (noopNotifications) TaskUpdated(context.Context, *domain.Task, *domain.Startup)        {}
func (noopNotifications) FundingSubmitted(context.Context, *domain.FundingApplication, *domain.Startup) {
}
func (noopNotifications) FundingStatusChanged(context.Context, *domain.FundingApplication, *domain.Startup) {
}
func (noopNotifications) InvestmentCreated(context.Context, *domain.Investment, *domain.Startup) {}

type noopVerification struct{}

func (noopVerification) RequestEmailVerification(context.Context, uuid.UUID, string) (string, error) {
	return MethodToken, nil
}
func (noopVerification) VerifyEmailToken(context.Context, string, string) bool    { return false }
func (noopVerification) RequestPasswordReset(context.Context, string, string) error { return nil }
func (noopVerification) ValidateResetToken(context.Context, string) error           { return nil }
func (noopVerification) ConfirmPasswordReset(context.Context, string, string) error { return nil }

func testUserService(users *fakeUserRepo, sessions SessionStore) (*userService, *fakeRefreshSessionRepo) {
	refresh := &fakeRefreshSessionRepo{}
	svc := newUserService(
		users,
		refresh,
		hash.NewSHA256Hasher("salt"),
		fakeTokenManager{},
		sessions,
		noopNotifications{},
		noopVerification{},
	)
	return svc, refresh
}

func TestSignUp_NormalizesRole(t *testing.T) {
	var created *domain.User
	users := &fakeUserRepo{
		createFn: func(_ context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}

	svc, _ := testUserService(users, newFakeSessionStore())

	user, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "f@example.com",
		Username: "founder1",
		Role:     "FOUNDER",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleFounder, user.Role)
	require.NotNil(t, created)
	assert.False(t, created.EmailVerified)
	assert.NotEqual(t, "secret-password", created.PasswordHash)
}

func TestSignUp_UnknownRole(t *testing.T) {
	svc, _ := testUserService(&fakeUserRepo{}, newFakeSessionStore())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "x@example.com",
		Username: "x",
		Role:     "superuser",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{
		createFn: func(_ context.Context, _ *domain.User) error {
			return domain.ErrDuplicateEntry
		},
	}
	svc, _ := testUserService(users, newFakeSessionStore())

	_, err := svc.SignUp(context.Background(), SignUpInput{
		Email:    "taken@example.com",
		Username: "taken",
		Role:     "investor",
		Password: "secret-password",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestSignIn_LockoutAfterRepeatedFailures(t *testing.T) {
	hasher := hash.NewSHA256Hasher("salt")
	goodHash, err := hasher.Hash("right-password")
	require.NoError(t, err)

	users := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, emailAddr string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: emailAddr, Role: domain.RoleFounder, PasswordHash: goodHash}, nil
		},
	}
	sessions := newFakeSessionStore()
	svc, _ := testUserService(users, sessions)

	for i := 0; i < 5; i++ {
		_, err := svc.SignIn(context.Background(), "f@example.com", "wrong-password", "ua", "ip")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	// Sixth attempt hits the lockout even with the right password.
	_, err = svc.SignIn(context.Background(), "f@example.com", "right-password", "ua", "ip")
	assert.ErrorIs(t, err, ErrLoginLocked)
}

func TestSignIn_SuccessClearsFailuresAndPersistsSession(t *testing.T) {
	hasher := hash.NewSHA256Hasher("salt")
	goodHash, err := hasher.Hash("right-password")
	require.NoError(t, err)

	userID := uuid.New()
	users := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, emailAddr string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: emailAddr, Role: domain.RoleInvestor, PasswordHash: goodHash}, nil
		},
	}
	sessions := newFakeSessionStore()
	svc, refresh := testUserService(users, sessions)

	_, err = svc.SignIn(context.Background(), "i@example.com", "wrong", "ua", "ip")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tokens, err := svc.SignIn(context.Background(), "i@example.com", "right-password", "ua", "ip")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Contains(t, tokens.AccessToken, "investor", "role travels in the access token")

	assert.Empty(t, sessions.failures, "success clears the failure counter")
	require.Len(t, refresh.sessions, 1)
	assert.Equal(t, userID, refresh.sessions[0].UserID)
}

func TestSignIn_UnknownEmailCountsAsFailure(t *testing.T) {
	sessions := newFakeSessionStore()
	svc, _ := testUserService(&fakeUserRepo{}, sessions)

	_, err := svc.SignIn(context.Background(), "ghost@example.com", "whatever", "ua", "ip")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, sessions.failures["ghost@example.com"])
}
