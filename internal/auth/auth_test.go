package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vacation-shop/go-backend/internal/cfg"
	"github.com/vacation-shop/go-backend/pkg/e"
)

func newTestManager(ttl time.Duration) *TokenManager {
	return NewTokenManager(&cfg.JWTCfg{Secret: "test-secret", TTL: ttl})
}

func TestTokenIssueAndParse(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.Issue(42, "user@example.com", false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.False(t, claims.IsAdmin())
}

func TestTokenCarriesAdminRole(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.Issue(1, "admin@example.com", true)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}

func TestExpiredTokenRejected(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.Issue(1, "user@example.com", false)
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewTokenManager(&cfg.JWTCfg{Secret: "other-secret", TTL: time.Hour})

	token, err := m.Issue(1, "user@example.com", false)
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.ErrorIs(t, err, e.ErrInvalidToken)
}

func TestPasswordScore(t *testing.T) {
	tests := []struct {
		password string
		score    int
	}{
		{"", 0},
		{"short", 0},
		{"longenough", 1},
		{"short1A", 2},
		{"Password1", 3},
		{"12345678", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.score, PasswordScore(tt.password), "password %q", tt.password)
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.ErrorIs(t, ValidatePasswordStrength("weak"), e.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordStrength("12345678"), e.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordStrength("abcdefg1"), e.ErrWeakPassword)
	assert.ErrorIs(t, ValidatePasswordStrength("Short1A"), e.ErrWeakPassword)
	assert.NoError(t, ValidatePasswordStrength("Password1"))
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "Password1"))
	assert.False(t, CheckPassword(hash, "Password2"))
}
