package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pdf-chatbot-api/internal/auth"
	"pdf-chatbot-api/internal/domain"
	apperrors "pdf-chatbot-api/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(users *mockUserRepo) (*authService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret-at-least-32-chars-long-for-security", time.Hour)
	return NewAuthService(users, tokens, bcrypt.MinCost, NewMockLogger()), tokens
}

func TestAuthService_Register(t *testing.T) {
	users := newMockUserRepo()
	svc, tokens := newTestAuthService(users)

	result, err := svc.Register(context.Background(), "  alice ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Username)
	assert.NotEmpty(t, result.ID)
	assert.NotEmpty(t, result.Token)

	stored := users.users["alice"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))

	userID, err := tokens.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.ID, userID)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	users := newMockUserRepo()
	svc, _ := newTestAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "first")
	require.NoError(t, err)
	require.Equal(t, 1, users.creates)

	_, err = svc.Register(ctx, "alice", "second")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDuplicateUsername))
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	assert.Equal(t, 400, apperrors.GetStatusCode(err))
	assert.Equal(t, 1, users.creates, "no second record may be created")
}

func TestAuthService_RegisterRaceOnUniqueIndex(t *testing.T) {
	users := newMockUserRepo()
	users.createErr = domain.ErrDuplicateUsername
	svc, _ := newTestAuthService(users)

	_, err := svc.Register(context.Background(), "bob", "pw")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDuplicateUsername))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(newMockUserRepo())

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "pw"},
		{"blank username", "   ", "pw"},
		{"empty password", "alice", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestAuthService_RegisterStoreFailure(t *testing.T) {
	users := newMockUserRepo()
	users.lookupErr = errors.New("connection refused")
	svc, _ := newTestAuthService(users)

	_, err := svc.Register(context.Background(), "alice", "pw")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestAuthService_Login(t *testing.T) {
	users := newMockUserRepo()
	svc, _ := newTestAuthService(users)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	result, err := svc.Login(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, result.ID)
	assert.Equal(t, "alice", result.Username)
	assert.NotEmpty(t, result.Token)

	userID, err := svc.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	users := newMockUserRepo()
	svc, _ := newTestAuthService(users)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "s3cret")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "wrong")
	_, unknownUser := svc.Login(ctx, "mallory", "s3cret")

	wp, ok := apperrors.AsAppError(wrongPassword)
	require.True(t, ok)
	uu, ok := apperrors.AsAppError(unknownUser)
	require.True(t, ok)

	assert.Equal(t, apperrors.ErrorTypeInvalidCredentials, wp.Type)
	assert.Equal(t, wp.Type, uu.Type)
	assert.Equal(t, wp.Message, uu.Message)
	assert.Equal(t, wp.StatusCode, uu.StatusCode)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestAuthService(newMockUserRepo())

	_, err := svc.ValidateToken("garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestNewAuthService_ClampsCost(t *testing.T) {
	tokens := auth.NewTokenManager("secret", time.Hour)

	low := NewAuthService(newMockUserRepo(), tokens, 0, NewMockLogger())
	assert.Equal(t, bcrypt.MinCost, low.cost)

	high := NewAuthService(newMockUserRepo(), tokens, 99, NewMockLogger())
	assert.Equal(t, bcrypt.MaxCost, high.cost)
}
