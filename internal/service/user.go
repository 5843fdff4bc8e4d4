package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"
	"github.com/venturenest/backend/pkg/auth"
	"github.com/venturenest/backend/pkg/hash"
	"github.com/venturenest/backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userService struct {
	userRepository           repository.Users
	refreshSessionRepository repository.RefreshSession
	hasher                   hash.PasswordHasher
	tokenManager             auth.TokenManager
	sessions                 SessionStore
	notifications            Notifications
	verification             Verification
}

func newUserService(
	userRepository repository.Users,
	refreshSessionRepository repository.RefreshSession,
	hasher hash.PasswordHasher,
	tokenManager auth.TokenManager,
	sessions SessionStore,
	notifications Notifications,
	verification Verification,
) *userService {
	return &userService{
		userRepository:           userRepository,
		refreshSessionRepository: refreshSessionRepository,
		hasher:                   hasher,
		tokenManager:             tokenManager,
		sessions:                 sessions,
		notifications:            notifications,
		verification:             verification,
	}
}

// SignUp creates the account unverified, fans out the welcome notification
// and kicks off the first verification email.
func (s *userService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	role, ok := domain.ParseRole(input.Role)
	if !ok {
		return nil, ErrInvalidRole
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        input.Email,
		Username:     input.Username,
		FirstName:    sql.NullString{String: input.FirstName, Valid: input.FirstName != ""},
		LastName:     sql.NullString{String: input.LastName, Valid: input.LastName != ""},
		Role:         role,
		Phone:        sql.NullString{String: input.Phone, Valid: input.Phone != ""},
		PasswordHash: passwordHash,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrUserAlreadyExist
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	s.notifications.UserRegistered(ctx, user)

	if _, err := s.verification.RequestEmailVerification(ctx, user.ID, ""); err != nil {
		logger.Warn("initial verification send failed", zap.String("email", user.Email), zap.Error(err))
	}

	return user, nil
}

// SignIn authenticates against the stored hash with a session-level lockout:
// five straight failures lock the account for five minutes; success clears
// the counters.
func (s *userService) SignIn(ctx context.Context, emailAddr, password, userAgent, userIP string) (*Tokens, error) {
	locked, err := s.sessions.IsLockedOut(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("check lockout failed: %w", err)
	}
	if locked {
		return nil, ErrLoginLocked
	}

	user, err := s.userRepository.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordFailure(ctx, emailAddr)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	if passwordHash != user.PasswordHash {
		s.recordFailure(ctx, emailAddr)
		return nil, ErrInvalidCredentials
	}

	if err := s.sessions.ClearLoginFailures(ctx, emailAddr); err != nil {
		logger.Warn("clear login failures failed", zap.Error(err))
	}

	return s.createSession(ctx, user, userAgent, userIP)
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) recordFailure(ctx context.Context, emailAddr string) {
	if err := s.sessions.RecordLoginFailure(ctx, emailAddr); err != nil {
		logger.Warn("record login failure failed", zap.Error(err))
	}
}

func (s *userService) createSession(ctx context.Context, user *domain.User, userAgent, userIP string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(&user.ID, user.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		UserID:       user.ID,
		RefreshToken: res.RefreshToken,
		UserAgent:    userAgent,
		IP:           userIP,
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}
