package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"jobsoko_backend/internal/auth"
	"jobsoko_backend/internal/config"
	"jobsoko_backend/internal/email"
	"jobsoko_backend/internal/logger"
	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	VerifyEmail(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authServiceImpl struct {
	users  repositories.UserRepository
	emails email.Provider
}

func NewAuthService(users repositories.UserRepository, emails email.Provider) AuthService {
	return &authServiceImpl{users: users, emails: emails}
}

func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewValidationError("auth", err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hash,
		Phone:             req.Phone,
		Role:              req.Role,
		Status:            models.UserStatusActive,
		VerificationToken: randomToken(),
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.NewConflictError("auth", "email already registered")
		}
		return nil, apperrors.InternalError(err)
	}

	// Verification mail failure must not fail registration.
	if err := s.emails.SendVerification(user.Email, user.VerificationToken); err != nil {
		logger.CtxWarn(ctx, "failed to send verification email", "error", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	if user.Status == models.UserStatusBlocked {
		return nil, apperrors.NewForbiddenError("auth", "account is blocked")
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.users.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(refreshToken)
		return nil, apperrors.NewUnauthorizedError("refresh token expired")
	}

	user, err := s.users.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid refresh token")
	}

	// Rotate: the presented token is spent.
	if err := s.users.DeleteRefreshToken(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := s.users.DeleteRefreshToken(refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authServiceImpl) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByVerificationToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("auth", "verification token not found")
		}
		return apperrors.InternalError(err)
	}
	if err := s.users.VerifyUser(user.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.users.FindByEmail(emailAddr)
	if err != nil {
		// Do not reveal whether the address exists.
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	user.ResetToken = randomToken()
	exp := time.Now().Add(1 * time.Hour)
	user.ResetTokenExp = &exp
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.emails.SendPasswordReset(user.Email, user.ResetToken); err != nil {
		logger.CtxWarn(ctx, "failed to send password reset email", "error", err)
	}
	return nil
}

func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.users.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewNotFoundError("auth", "reset token not found")
		}
		return apperrors.InternalError(err)
	}
	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.NewValidationError("auth", "reset token expired")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError("auth", err.Error())
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.users.Update(user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	access, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     randomToken(),
		ExpiresAt: time.Now().Add(time.Duration(config.GetConfig().JWT.RefreshTTL) * time.Minute),
	}
	if err := s.users.CreateRefreshToken(refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		User:         dto.NewUserResponse(user),
	}, nil
}

func randomToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
