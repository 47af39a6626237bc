package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTFlow(t *testing.T) {
	tokens, err := NewTokenManager("test-secret-key-12345", time.Hour)
	require.NoError(t, err)

	userID := uuid.New().String()
	email := "test@example.com"

	token, err := tokens.Generate(userID, email, RoleAdmin)
	require.NoError(t, err)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestJWT_Expired(t *testing.T) {
	tokens, err := NewTokenManager("test-secret-key-12345", time.Minute)
	require.NoError(t, err)

	issued := time.Now()
	tokens.now = func() time.Time { return issued }

	token, err := tokens.Generate("user-1", "a@example.com", RoleUser)
	require.NoError(t, err)

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }

	_, err = tokens.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	a, err := NewTokenManager("secret-a", time.Hour)
	require.NoError(t, err)
	b, err := NewTokenManager("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := a.Generate("user-1", "a@example.com", RoleUser)
	require.NoError(t, err)

	_, err = b.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWT_RequiresSecretAndUser(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)

	tokens, err := NewTokenManager("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, tokens.ttl)

	_, err = tokens.Generate("", "a@example.com", RoleUser)
	assert.Error(t, err)
}
