package services

import (
	"context"
	"errors"

	"jobsoko_backend/internal/models"
	"jobsoko_backend/internal/repositories"
	"jobsoko_backend/internal/services/dto"
	"jobsoko_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	GetPublicProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type userServiceImpl struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userServiceImpl{users: users}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userServiceImpl) GetPublicProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	resp.Email = ""
	resp.Phone = ""
	return resp, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.findUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.users.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	if _, err := s.findUser(userID); err != nil {
		return err
	}
	if err := s.users.DeleteUserRefreshTokens(userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.users.Delete(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userServiceImpl) findUser(userID string) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "user not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
