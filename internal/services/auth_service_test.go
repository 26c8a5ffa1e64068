package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsoko_backend/internal/config"
	"jobsoko_backend/internal/email"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()

	config.AppConfig = &config.Config{}
	config.AppConfig.JWT.Secret = "test-secret"
	config.AppConfig.JWT.TTL = 60
	config.AppConfig.JWT.RefreshTTL = 60 * 24

	db := newTestDB(t)
	return NewAuthService(repositories.NewUserRepository(db), email.NewNoopProvider())
}

func registerRequest(emailAddr string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Name:     "Test User",
		Email:    emailAddr,
		Password: "Str0ngPass!",
		Role:     models.UserRoleWorker,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, registerRequest("worker@example.test"))
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, "worker@example.test", registered.User.Email)

	loggedIn, err := auth.Login(ctx, &dto.LoginRequest{
		Email:    "worker@example.test",
		Password: "Str0ngPass!",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest("dup@example.test"))
	require.NoError(t, err)

	_, err = auth.Register(ctx, registerRequest("dup@example.test"))
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest("worker@example.test"))
	require.NoError(t, err)

	_, err = auth.Login(ctx, &dto.LoginRequest{
		Email:    "worker@example.test",
		Password: "wrong-password",
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	auth := newAuthFixture(t)
	ctx := context.Background()

	registered, err := auth.Register(ctx, registerRequest("worker@example.test"))
	require.NoError(t, err)

	refreshed, err := auth.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The spent token no longer works.
	_, err = auth.Refresh(ctx, registered.RefreshToken)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}
