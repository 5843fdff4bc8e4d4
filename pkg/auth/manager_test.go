package auth

import (
	"testing"
	"time"

	"github.com/venturenest/backend/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager(t *testing.T, accessTTL time.Duration) *Manager {
	t.Helper()

	m, err := NewManager(config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 240 * time.Hour,
	})
	require.NoError(t, err)

	return m
}

func TestNewManager_RejectsIncompleteConfig(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	assert.Error(t, err, "empty signing key")

	_, err = NewManager(config.JWTConfig{SigningKey: "k", RefreshTokenTTL: time.Hour})
	assert.Error(t, err, "empty access ttl")

	_, err = NewManager(config.JWTConfig{SigningKey: "k", AccessTokenTTL: time.Minute})
	assert.Error(t, err, "empty refresh ttl")
}

func TestJWT_RoundTripCarriesSubjectAndRole(t *testing.T) {
	m := testManager(t, 15*time.Minute)
	userID := uuid.New()

	token, ttl, err := m.NewJWT(&userID, "investor")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)

	subject, role, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), subject)
	assert.Equal(t, "investor", role)
}

func TestJWT_ExpiredTokenRejected(t *testing.T) {
	m := testManager(t, -time.Minute)
	userID := uuid.New()

	token, _, err := m.NewJWT(&userID, "founder")
	require.NoError(t, err)

	_, _, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWT_WrongKeyRejected(t *testing.T) {
	issuer := testManager(t, time.Minute)
	userID := uuid.New()

	token, _, err := issuer.NewJWT(&userID, "manager")
	require.NoError(t, err)

	verifier, err := NewManager(config.JWTConfig{
		SigningKey:      "other-key",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	_, _, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestValidateRefreshToken(t *testing.T) {
	m := testManager(t, time.Minute)

	refresh, ttl, err := m.NewRefreshToken()
	require.NoError(t, err)
	assert.Equal(t, 240*time.Hour, ttl)

	parsed, err := m.ValidateRefreshToken(refresh.String())
	require.NoError(t, err)
	assert.Equal(t, refresh, *parsed)

	_, err = m.ValidateRefreshToken("not-a-uuid")
	assert.Error(t, err)
}
