package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/receipt-api/internal/testutil"
	"github.com/sangkips/receipt-api/pkg/apperror"
	"github.com/sangkips/receipt-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService() (*AuthService, *testutil.UserStore, *utils.JWTManager) {
	users := testutil.NewUserStore()
	jwtManager := utils.NewJWTManager("test-secret", 30*time.Minute, time.Hour)
	return NewAuthService(users, jwtManager, zap.NewNop()), users, jwtManager
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, jwtManager := newTestAuthService()
	ctx := context.Background()

	out, err := svc.Register(ctx, &RegisterInput{Name: "Test User", Username: "testuser", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "testuser", out.User.Username)
	assert.NotEqual(t, "secret123", out.User.Password)

	claims, err := jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)

	login, err := svc.Login(ctx, &LoginInput{Username: "testuser", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, login.User.ID)
	assert.NotEmpty(t, login.RefreshToken)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Username: "dupe", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &RegisterInput{Name: "B", Username: "dupe", Password: "pw2"})
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterInput{Name: "A", Username: "alice", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &LoginInput{Username: "nobody", Password: "right"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	out, err := svc.Register(ctx, &RegisterInput{Name: "A", Username: "bob", Password: "pw"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)

	users.Delete(out.User.ID)
	_, err = svc.RefreshToken(ctx, out.RefreshToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestAuthService_GetCurrentUser(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	out, err := svc.Register(ctx, &RegisterInput{Name: "A", Username: "carol", Password: "pw"})
	require.NoError(t, err)

	user, err := svc.GetCurrentUser(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", user.Username)

	_, err = svc.GetCurrentUser(ctx, uuid.New())
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
