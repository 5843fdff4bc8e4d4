package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"github.com/venturenest/backend/internal/config"
	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/repository"
	"github.com/venturenest/backend/pkg/email"
	"github.com/venturenest/backend/pkg/hash"
	"github.com/venturenest/backend/pkg/logger"
	"github.com/venturenest/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MethodLink  = "link"
	MethodToken = "token"

	resetAttemptWindow = 30 * time.Minute
	resetAttemptLimit  = 3
)

type verificationService struct {
	userRepository  repository.Users
	resetRepository repository.PasswordResets
	otpGenerator    otp.Generator
	emailSender     email.Sender
	hasher          hash.PasswordHasher
	sessions        SessionStore
	policy          *ResendPolicy
	config          *config.Config
	now             func() time.Time
}

func newVerificationService(
	userRepository repository.Users,
	resetRepository repository.PasswordResets,
	otpGenerator otp.Generator,
	emailSender email.Sender,
	hasher hash.PasswordHasher,
	sessions SessionStore,
	cfg *config.Config,
) *verificationService {
	return &verificationService{
		userRepository:  userRepository,
		resetRepository: resetRepository,
		otpGenerator:    otpGenerator,
		emailSender:     emailSender,
		hasher:          hasher,
		sessions:        sessions,
		policy:          DefaultResendPolicy(),
		config:          cfg,
		now:             time.Now,
	}
}

// RequestEmailVerification issues a fresh code for an unverified user. The
// resend policy gates issuance; the delivery method sticks to whatever was
// used for this email before unless the caller overrides it.
func (s *verificationService) RequestEmailVerification(ctx context.Context, userID uuid.UUID, preferredMethod string) (string, error) {
	user, err := s.userRepository.GetOneByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("get user failed: %w", err)
	}

	if user.EmailVerified {
		return "", ErrAlreadyVerified
	}

	state := ResendState{
		LastSent:      user.LastVerificationSent,
		RequestCount:  user.VerificationRequests,
		CooldownUntil: user.VerificationCooldownTil,
	}
	if !s.policy.CanResend(state) {
		return "", ErrVerificationRateLimited
	}

	method := preferredMethod
	if method != MethodLink && method != MethodToken {
		method, err = s.sessions.VerificationMethod(ctx, user.Email)
		if err != nil {
			logger.Warn("read verification method failed", zap.Error(err))
		}
	}
	if method != MethodLink && method != MethodToken {
		method = s.randomMethod()
	}

	token := s.otpGenerator.RandomCode(s.config.Auth.VerificationCodeLength)
	expiry := s.now().Add(s.config.Auth.VerificationTokenTTL)

	if err := s.userRepository.UpdateVerificationIssue(ctx, user.ID, token, expiry); err != nil {
		return "", fmt.Errorf("persist verification token failed: %w", err)
	}

	next := s.policy.MarkSent(state)
	if err := s.userRepository.UpdateVerificationCounters(ctx, user.ID, *next.LastSent, next.RequestCount, next.CooldownUntil); err != nil {
		return "", fmt.Errorf("persist verification counters failed: %w", err)
	}

	// Delivery is a side channel: on failure the issued token stays valid
	// and the caller still sees success.
	if err := s.sendVerificationEmail(user, token, method); err != nil {
		logger.Warn("send verification email failed", zap.String("email", user.Email), zap.Error(err))
	}

	if err := s.sessions.SetVerificationMethod(ctx, user.Email, method); err != nil {
		logger.Warn("persist verification method failed", zap.Error(err))
	}

	return method, nil
}

// VerifyEmailToken checks the (email, token) pair and flips the verified
// flag. Any miss, absent expiry, or past expiry fails closed. The token and
// expiry are cleared in the same update that sets the flag, so a verified
// user never carries a token.
func (s *verificationService) VerifyEmailToken(ctx context.Context, token, emailAddr string) bool {
	user, err := s.userRepository.GetByEmailAndToken(ctx, emailAddr, token)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("verify email lookup failed", zap.Error(err))
		}
		return false
	}

	if user.EmailVerificationExpiry == nil {
		return false
	}

	// Compare in UTC so a naive stored timestamp cannot skew the check.
	if s.now().UTC().After(user.EmailVerificationExpiry.UTC()) {
		return false
	}

	if err := s.userRepository.MarkEmailVerified(ctx, user.ID); err != nil {
		logger.Error("mark email verified failed", zap.Error(err))
		return false
	}

	return true
}

// RequestPasswordReset returns the same nil outcome whether or not the email
// matches an account: unknown addresses, rate-limited users, and internal
// failures all look identical from outside, so callers cannot probe for
// registrations even when the storage layer misbehaves.
func (s *verificationService) RequestPasswordReset(ctx context.Context, emailAddr, clientIP string) error {
	user, err := s.userRepository.GetByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Error("password reset user lookup failed", zap.Error(err))
		}
		return nil
	}

	since := s.now().Add(-resetAttemptWindow)
	attempts, err := s.resetRepository.CountAttemptsSince(ctx, user.ID, since)
	if err != nil {
		logger.Error("count reset attempts failed", zap.Error(err))
		return nil
	}
	if attempts >= resetAttemptLimit {
		logger.Warn("password reset rate limited", zap.String("email", emailAddr))
		return nil
	}

	attemptID, err := uuid.NewV7()
	if err != nil {
		logger.Error("generate attempt id failed", zap.Error(err))
		return nil
	}
	if err := s.resetRepository.CreateAttempt(ctx, &domain.PasswordResetAttempt{
		ID:        attemptID,
		UserID:    user.ID,
		IPAddress: clientIP,
	}); err != nil {
		logger.Error("log reset attempt failed", zap.Error(err))
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		logger.Error("generate reset token failed", zap.Error(err))
		return nil
	}

	tokenID, err := uuid.NewV7()
	if err != nil {
		logger.Error("generate token id failed", zap.Error(err))
		return nil
	}
	if err := s.resetRepository.CreateToken(ctx, &domain.PasswordResetToken{
		ID:        tokenID,
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: s.now().Add(s.config.Auth.PasswordResetTokenTTL),
	}); err != nil {
		logger.Error("persist reset token failed", zap.Error(err))
		return nil
	}

	if err := s.sendPasswordResetEmail(user, token); err != nil {
		logger.Warn("send password reset email failed", zap.String("email", user.Email), zap.Error(err))
	}

	return nil
}

// ConfirmPasswordReset consumes the token and sets the new password. A used
// token reports as expired, not as a distinct state.
// ValidateResetToken reports whether a token can still redeem a password
// change. The emailed link lands here so the client can show the new-password
// form only for a live token.
func (s *verificationService) ValidateResetToken(ctx context.Context, token string) error {
	resetToken, err := s.resetRepository.GetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("get reset token failed: %w", err)
	}

	if resetToken.IsExpired(s.now()) {
		return ErrResetTokenExpired
	}

	return nil
}

func (s *verificationService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.resetRepository.GetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("get reset token failed: %w", err)
	}

	if resetToken.IsExpired(s.now()) {
		return ErrResetTokenExpired
	}

	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, resetToken.UserID, passwordHash); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}

	if err := s.resetRepository.MarkTokenUsed(ctx, resetToken.ID, s.now()); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrResetTokenExpired
		}
		return fmt.Errorf("mark reset token used failed: %w", err)
	}

	return nil
}

func (s *verificationService) randomMethod() string {
	n, err := rand.Int(rand.Reader, big.NewInt(2))
	if err != nil || n.Int64() == 0 {
		return MethodToken
	}
	return MethodLink
}

func (s *verificationService) sendVerificationEmail(user *domain.User, token, method string) error {
	if !s.config.Email.Enabled {
		return nil
	}

	input := email.SendEmailInput{
		To:      user.Email,
		Subject: "Verify Your Email - VentureNest",
	}

	if method == MethodLink {
		verifyURL := fmt.Sprintf("%s/api/v1/auth/verify-email?token=%s&email=%s",
			s.config.HttpServer.BaseURL, token, url.QueryEscape(user.Email))
		input.Body = fmt.Sprintf(
			"Hi %s,\n\nPlease verify your email address by clicking the link below:\n\n%s\n\nThis link will expire in %s.\n\nThanks,\nVentureNest Team\n",
			user.FullName(), verifyURL, s.config.Auth.VerificationTokenTTL)
	} else {
		input.Body = fmt.Sprintf(
			"Hi %s,\n\nUse the following token to verify your email: %s\n\nThis token will expire in %s.\n\nThanks,\nVentureNest Team\n",
			user.FullName(), token, s.config.Auth.VerificationTokenTTL)
	}

	return s.emailSender.Send(input)
}

func (s *verificationService) sendPasswordResetEmail(user *domain.User, token string) error {
	if !s.config.Email.Enabled {
		return nil
	}

	resetURL := fmt.Sprintf("%s/api/v1/auth/password-reset/%s", s.config.HttpServer.BaseURL, token)

	return s.emailSender.Send(email.SendEmailInput{
		To:      user.Email,
		Subject: "Reset Your Password - VentureNest",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYou requested to reset your password. Click the link below to set a new password:\n\n%s\n\nThis link will expire in %s.\n\nIf you did not request this, you can ignore this email.\n\nThanks,\nVentureNest Team\n",
			user.FullName(), resetURL, s.config.Auth.PasswordResetTokenTTL),
	})
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
