package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/venturenest/backend/internal/config"

	"github.com/redis/go-redis/v9"
)

// Store holds request-transient account state in redis: the sticky email
// verification method and login failure counters with lockout.
type Store struct {
	client redis.UniversalClient
	cfg    config.SessionConfig
}

func NewStore(client redis.UniversalClient, cfg config.SessionConfig) *Store {
	return &Store{client: client, cfg: cfg}
}

func methodKey(email string) string  { return "session:verification_method:" + email }
func failKey(email string) string    { return "session:login_failures:" + email }
func lockoutKey(email string) string { return "session:login_lockout:" + email }

// VerificationMethod returns the sticky delivery method ("link" or "token")
// previously chosen for this email, or empty when none was recorded.
func (s *Store) VerificationMethod(ctx context.Context, email string) (string, error) {
	method, err := s.client.Get(ctx, methodKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get verification method: %w", err)
	}
	return method, nil
}

func (s *Store) SetVerificationMethod(ctx context.Context, email, method string) error {
	if err := s.client.Set(ctx, methodKey(email), method, s.cfg.MethodTTL).Err(); err != nil {
		return fmt.Errorf("set verification method: %w", err)
	}
	return nil
}

// IsLockedOut reports whether the account is under a login lockout.
func (s *Store) IsLockedOut(ctx context.Context, email string) (bool, error) {
	_, err := s.client.Get(ctx, lockoutKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get login lockout: %w", err)
	}
	return true, nil
}

// RecordLoginFailure bumps the failure counter; reaching the configured
// maximum trades the counter for a lockout window.
func (s *Store) RecordLoginFailure(ctx context.Context, email string) error {
	failures, err := s.client.Incr(ctx, failKey(email)).Result()
	if err != nil {
		return fmt.Errorf("incr login failures: %w", err)
	}

	// Counter expires with the lockout either way, so a stale counter
	// never outlives its window.
	if err := s.client.Expire(ctx, failKey(email), s.cfg.LoginLockout).Err(); err != nil {
		return fmt.Errorf("expire login failures: %w", err)
	}

	if failures >= int64(s.cfg.LoginMaxAttempts) {
		pipe := s.client.TxPipeline()
		pipe.Set(ctx, lockoutKey(email), time.Now().Add(s.cfg.LoginLockout).Format(time.RFC3339), s.cfg.LoginLockout)
		pipe.Del(ctx, failKey(email))
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("set login lockout: %w", err)
		}
	}

	return nil
}

// ClearLoginFailures resets counters after a successful login.
func (s *Store) ClearLoginFailures(ctx context.Context, email string) error {
	if err := s.client.Del(ctx, failKey(email), lockoutKey(email)).Err(); err != nil {
		return fmt.Errorf("clear login failures: %w", err)
	}
	return nil
}
