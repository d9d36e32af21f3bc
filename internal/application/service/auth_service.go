package service

import (
	"context"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	"github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"github.com/bizbooks/bizbooks-api/pkg/apperror"
	"github.com/bizbooks/bizbooks-api/pkg/utils"
	"github.com/google/uuid"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo     repository.UserRepository
	tokenManager *utils.TokenManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokenManager *utils.TokenManager) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User  *entity.User
	Token string
}

// Login authenticates a user and returns a signed session token for the
// auth cookie.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:  user,
		Token: token,
	}, nil
}

// ChangePasswordInput represents the password change input
type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
}

// ChangePassword verifies the current password and stores a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	if len(input.NewPassword) < 6 {
		return apperror.NewBadRequestError("New password must be at least 6 characters long")
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return apperror.NewBadRequestError("Invalid user ID")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewBadRequestError("Failed to update password. Please check your current password.")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.PasswordHash) {
		return apperror.NewBadRequestError("Failed to update password. Please check your current password.")
	}

	hash, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	return s.userRepo.UpdatePassword(ctx, userID, hash)
}

// GetCurrentUser returns the user for the given session id.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}
