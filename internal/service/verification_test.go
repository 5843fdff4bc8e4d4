package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/venturenest/backend/internal/config"
	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/pkg/email"
	mock_email "github.com/venturenest/backend/pkg/email/mock"
	"github.com/venturenest/backend/pkg/hash"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.VerificationCodeLength = 6
	cfg.Auth.VerificationTokenTTL = 24 * time.Hour
	cfg.Auth.PasswordResetTokenTTL = time.Hour
	cfg.HttpServer.BaseURL = "http://localhost:8080"
	cfg.Email.Enabled = true
	return cfg
}

func testVerificationService(users *fakeUserRepo, resets *fakeResetRepo, sender *mock_email.EmailSender) (*verificationService, *fakeSessionStore) {
	sessions := newFakeSessionStore()
	svc := newVerificationService(
		users,
		resets,
		&fakeOtpGenerator{code: "123456"},
		sender,
		hash.NewSHA256Hasher("salt"),
		sessions,
		testConfig(),
	)
	return svc, sessions
}

func TestRequestEmailVerification_IssuesTokenAndSticksMethod(t *testing.T) {
	userID := uuid.New()
	var issuedToken string
	var issuedExpiry time.Time

	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "founder@example.com"}, nil
		},
		updateVerifIssueFn: func(_ context.Context, _ uuid.UUID, token string, expiry time.Time) error {
			issuedToken = token
			issuedExpiry = expiry
			return nil
		},
	}

	sender := &mock_email.EmailSender{}
	sender.On("Send", mock.Anything).Return(nil)

	svc, sessions := testVerificationService(users, &fakeResetRepo{}, sender)

	method, err := svc.RequestEmailVerification(context.Background(), userID, MethodToken)
	require.NoError(t, err)
	assert.Equal(t, MethodToken, method)
	assert.Equal(t, "123456", issuedToken)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), issuedExpiry, time.Minute)

	// The chosen method sticks for subsequent sends.
	stored, err := sessions.VerificationMethod(context.Background(), "founder@example.com")
	require.NoError(t, err)
	assert.Equal(t, MethodToken, stored)

	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestRequestEmailVerification_AlreadyVerified(t *testing.T) {
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "done@example.com", EmailVerified: true}, nil
		},
	}

	svc, _ := testVerificationService(users, &fakeResetRepo{}, &mock_email.EmailSender{})

	_, err := svc.RequestEmailVerification(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestRequestEmailVerification_RateLimited(t *testing.T) {
	cooldown := time.Now().Add(30 * time.Minute)
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "hot@example.com", VerificationCooldownTil: &cooldown}, nil
		},
	}

	svc, _ := testVerificationService(users, &fakeResetRepo{}, &mock_email.EmailSender{})

	_, err := svc.RequestEmailVerification(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrVerificationRateLimited)
}

func TestRequestEmailVerification_MailFailureStillSucceeds(t *testing.T) {
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "flaky@example.com"}, nil
		},
	}

	sender := &mock_email.EmailSender{}
	sender.On("Send", mock.Anything).Return(assert.AnError)

	svc, _ := testVerificationService(users, &fakeResetRepo{}, sender)

	_, err := svc.RequestEmailVerification(context.Background(), uuid.New(), MethodLink)
	assert.NoError(t, err, "delivery failure must not fail issuance")
}

func TestVerifyEmailToken_Success(t *testing.T) {
	userID := uuid.New()
	expiry := time.Now().Add(time.Hour)
	verified := false

	users := &fakeUserRepo{
		getByEmailAndTokenFn: func(_ context.Context, emailAddr, token string) (*domain.User, error) {
			if emailAddr == "f@example.com" && token == "123456" {
				return &domain.User{
					ID:                      userID,
					Email:                   emailAddr,
					EmailVerificationToken:  sql.NullString{String: token, Valid: true},
					EmailVerificationExpiry: &expiry,
				}, nil
			}
			return nil, domain.ErrNotFound
		},
		markEmailVerifiedFn: func(_ context.Context, id uuid.UUID) error {
			verified = true
			assert.Equal(t, userID, id)
			return nil
		},
	}

	svc, _ := testVerificationService(users, &fakeResetRepo{}, &mock_email.EmailSender{})

	assert.True(t, svc.VerifyEmailToken(context.Background(), "123456", "f@example.com"))
	assert.True(t, verified)
}

func TestVerifyEmailToken_FailsClosed(t *testing.T) {
	past := time.Now().Add(-time.Minute)

	cases := []struct {
		name  string
		users *fakeUserRepo
	}{
		{
			name:  "wrong token",
			users: &fakeUserRepo{},
		},
		{
			name: "expired token",
			users: &fakeUserRepo{
				getByEmailAndTokenFn: func(_ context.Context, emailAddr, token string) (*domain.User, error) {
					return &domain.User{ID: uuid.New(), Email: emailAddr, EmailVerificationExpiry: &past}, nil
				},
			},
		},
		{
			name: "missing expiry",
			users: &fakeUserRepo{
				getByEmailAndTokenFn: func(_ context.Context, emailAddr, token string) (*domain.User, error) {
					return &domain.User{ID: uuid.New(), Email: emailAddr}, nil
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := testVerificationService(tc.users, &fakeResetRepo{}, &mock_email.EmailSender{})
			assert.False(t, svc.VerifyEmailToken(context.Background(), "123456", "f@example.com"))
		})
	}
}

func TestRequestPasswordReset_UnknownEmailIsSilent(t *testing.T) {
	created := false
	resets := &fakeResetRepo{
		createTokenFn: func(_ context.Context, _ *domain.PasswordResetToken) error {
			created = true
			return nil
		},
	}

	sender := &mock_email.EmailSender{}
	svc, _ := testVerificationService(&fakeUserRepo{}, resets, sender)

	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com", "10.0.0.1")
	assert.NoError(t, err, "unknown emails must not be distinguishable")
	assert.False(t, created)
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestRequestPasswordReset_WindowLimit(t *testing.T) {
	userID := uuid.New()
	created := false

	users := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, emailAddr string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: emailAddr}, nil
		},
	}
	resets := &fakeResetRepo{
		countAttemptsSinceFn: func(_ context.Context, id uuid.UUID, since time.Time) (int, error) {
			assert.Equal(t, userID, id)
			assert.WithinDuration(t, time.Now().Add(-30*time.Minute), since, time.Minute)
			return 3, nil
		},
		createTokenFn: func(_ context.Context, _ *domain.PasswordResetToken) error {
			created = true
			return nil
		},
	}

	svc, _ := testVerificationService(users, resets, &mock_email.EmailSender{})

	err := svc.RequestPasswordReset(context.Background(), "busy@example.com", "10.0.0.1")
	assert.NoError(t, err, "over-limit requests are silently dropped")
	assert.False(t, created)
}

func TestRequestPasswordReset_CreatesAttemptAndToken(t *testing.T) {
	userID := uuid.New()
	var attempt *domain.PasswordResetAttempt
	var token *domain.PasswordResetToken

	users := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, emailAddr string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: emailAddr}, nil
		},
	}
	resets := &fakeResetRepo{
		createAttemptFn: func(_ context.Context, a *domain.PasswordResetAttempt) error {
			attempt = a
			return nil
		},
		createTokenFn: func(_ context.Context, tok *domain.PasswordResetToken) error {
			token = tok
			return nil
		},
	}

	sender := &mock_email.EmailSender{}
	sender.On("Send", mock.Anything).Return(nil)

	svc, _ := testVerificationService(users, resets, sender)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "f@example.com", "10.0.0.9"))

	require.NotNil(t, attempt)
	assert.Equal(t, userID, attempt.UserID)
	assert.Equal(t, "10.0.0.9", attempt.IPAddress)

	require.NotNil(t, token)
	assert.Equal(t, userID, token.UserID)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)
}

func TestRequestPasswordReset_StorageFaultStaysGeneric(t *testing.T) {
	users := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, emailAddr string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: emailAddr}, nil
		},
	}
	resets := &fakeResetRepo{
		countAttemptsSinceFn: func(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
			return 0, assert.AnError
		},
	}

	sender := &mock_email.EmailSender{}
	svc, _ := testVerificationService(users, resets, sender)

	// A repository fault for a known email must look exactly like the
	// unknown-email outcome, or the error itself becomes an existence probe.
	require.NoError(t, svc.RequestPasswordReset(context.Background(), "known@example.com", "10.0.0.9"))
	sender.AssertNotCalled(t, "Send", mock.Anything)
}

func TestResetEmailLinksToPasswordResetRoute(t *testing.T) {
	users := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, emailAddr string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: emailAddr}, nil
		},
	}
	var issued string
	resets := &fakeResetRepo{
		createTokenFn: func(_ context.Context, tok *domain.PasswordResetToken) error {
			issued = tok.Token
			return nil
		},
	}

	var sent email.SendEmailInput
	sender := &mock_email.EmailSender{}
	sender.On("Send", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).(email.SendEmailInput)
	}).Return(nil)

	svc, _ := testVerificationService(users, resets, sender)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "f@example.com", "10.0.0.9"))
	require.NotEmpty(t, issued)
	assert.Contains(t, sent.Body, "/api/v1/auth/password-reset/"+issued,
		"the emailed link must target the registered GET route")
}

func TestVerificationEmailLinksToVerifyRoute(t *testing.T) {
	userID := uuid.New()
	users := &fakeUserRepo{
		getOneByIDFn: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id, Email: "founder@example.com"}, nil
		},
	}

	var sent email.SendEmailInput
	sender := &mock_email.EmailSender{}
	sender.On("Send", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).(email.SendEmailInput)
	}).Return(nil)

	svc, sessions := testVerificationService(users, &fakeResetRepo{}, sender)
	sessions.methods["founder@example.com"] = MethodLink

	_, err := svc.RequestEmailVerification(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Contains(t, sent.Body, "/api/v1/auth/verify-email?token=123456&email=founder%40example.com",
		"the emailed link must target the registered GET route")
}

func TestValidateResetToken(t *testing.T) {
	t.Run("live token passes", func(t *testing.T) {
		resets := &fakeResetRepo{
			getTokenFn: func(_ context.Context, token string) (*domain.PasswordResetToken, error) {
				return &domain.PasswordResetToken{
					ID:        uuid.New(),
					UserID:    uuid.New(),
					Token:     token,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
		}
		svc, _ := testVerificationService(&fakeUserRepo{}, resets, &mock_email.EmailSender{})
		assert.NoError(t, svc.ValidateResetToken(context.Background(), "tok"))
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _ := testVerificationService(&fakeUserRepo{}, &fakeResetRepo{}, &mock_email.EmailSender{})
		assert.ErrorIs(t, svc.ValidateResetToken(context.Background(), "missing"), ErrResetTokenInvalid)
	})

	t.Run("used token reports expired", func(t *testing.T) {
		resets := &fakeResetRepo{
			getTokenFn: func(_ context.Context, token string) (*domain.PasswordResetToken, error) {
				return &domain.PasswordResetToken{
					ID:        uuid.New(),
					UserID:    uuid.New(),
					Token:     token,
					Used:      true,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
		}
		svc, _ := testVerificationService(&fakeUserRepo{}, resets, &mock_email.EmailSender{})
		assert.ErrorIs(t, svc.ValidateResetToken(context.Background(), "used"), ErrResetTokenExpired)
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	userID := uuid.New()

	t.Run("success", func(t *testing.T) {
		var newHash string
		marked := false

		users := &fakeUserRepo{
			updatePasswordFn: func(_ context.Context, id uuid.UUID, passwordHash string) error {
				assert.Equal(t, userID, id)
				newHash = passwordHash
				return nil
			},
		}
		resets := &fakeResetRepo{
			getTokenFn: func(_ context.Context, token string) (*domain.PasswordResetToken, error) {
				return &domain.PasswordResetToken{
					ID:        uuid.New(),
					UserID:    userID,
					Token:     token,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
			markTokenUsedFn: func(_ context.Context, _ uuid.UUID, _ time.Time) error {
				marked = true
				return nil
			},
		}

		svc, _ := testVerificationService(users, resets, &mock_email.EmailSender{})

		require.NoError(t, svc.ConfirmPasswordReset(context.Background(), "tok", "new-password-1"))
		assert.NotEmpty(t, newHash)
		assert.True(t, marked)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _ := testVerificationService(&fakeUserRepo{}, &fakeResetRepo{}, &mock_email.EmailSender{})
		err := svc.ConfirmPasswordReset(context.Background(), "missing", "new-password-1")
		assert.ErrorIs(t, err, ErrResetTokenInvalid)
	})

	t.Run("used token reports expired", func(t *testing.T) {
		resets := &fakeResetRepo{
			getTokenFn: func(_ context.Context, token string) (*domain.PasswordResetToken, error) {
				return &domain.PasswordResetToken{
					ID:        uuid.New(),
					UserID:    userID,
					Token:     token,
					Used:      true,
					ExpiresAt: time.Now().Add(time.Hour),
				}, nil
			},
		}

		svc, _ := testVerificationService(&fakeUserRepo{}, resets, &mock_email.EmailSender{})
		err := svc.ConfirmPasswordReset(context.Background(), "used", "new-password-1")
		assert.ErrorIs(t, err, ErrResetTokenExpired)
	})
}
