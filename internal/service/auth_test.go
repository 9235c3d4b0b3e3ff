package service

import (
	"testing"

	"github.com/grocerly/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Name)

	loginToken, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	loginClaims, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, loginClaims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register("Other Alice", "alice@example.com", "password456")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupSQLiteDatabase(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewAuthService(db, "different-secret")
	token, err := other.Register("Mallory", "mallory@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
