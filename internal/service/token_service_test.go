package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret     = "test-secret-key-at-least-32-chars-long"
	testAccessTTL  = 24 * time.Hour
	testRefreshTTL = 7 * 24 * time.Hour
)

func newTestTokens() TokenService {
	return NewTokenService(testSecret, testAccessTTL, testRefreshTTL)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	tokens := newTestTokens()

	token, err := tokens.GenerateAccessToken("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	tokens := newTestTokens()

	token, err := tokens.GenerateRefreshToken("user-2")
	require.NoError(t, err)

	userID, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-2", userID)
}

func TestValidateToken_Truncated(t *testing.T) {
	tokens := newTestTokens()

	token, err := tokens.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = tokens.ValidateToken(token[:len(token)-1])
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Malformed(t *testing.T) {
	tokens := newTestTokens()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tokens.ValidateToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tokens := newTestTokens()
	other := NewTokenService("another-secret-that-is-not-the-same", testAccessTTL, testRefreshTTL)

	token, err := other.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = tokens.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_Expired(t *testing.T) {
	expired := NewTokenService(testSecret, -time.Second, testRefreshTTL)

	token, err := expired.GenerateAccessToken("user-1")
	require.NoError(t, err)

	// same secret, so only the expiry can reject it
	_, err = newTestTokens().ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateToken_RejectedAtExactExpiry(t *testing.T) {
	// zero lifetime means exp == iat: the token is already at its expiry
	// instant when validated, and expiry is exclusive
	boundary := NewTokenService(testSecret, 0, testRefreshTTL)

	token, err := boundary.GenerateAccessToken("user-1")
	require.NoError(t, err)

	_, err = newTestTokens().ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenTTLs(t *testing.T) {
	tokens := newTestTokens()
	assert.Equal(t, testAccessTTL, tokens.AccessTTL())
	assert.Equal(t, testRefreshTTL, tokens.RefreshTTL())
}
