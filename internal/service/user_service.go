package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/models/response"
	"letly-be-svc/internal/repository"
	"letly-be-svc/pkg/logger"
)

// RegisterInput carries the fields of a new account
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// UserService interface defines account service methods
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*response.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*response.AuthResponse, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
}

// userService implements UserService interface
type userService struct {
	userRepo   repository.UserRepository
	jwtManager *auth.JWTManager
	logger     *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, jwtManager *auth.JWTManager, logger *logger.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Register creates an account and signs a session token for it
func (s *userService) Register(ctx context.Context, input RegisterInput) (*response.AuthResponse, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidInput("name is required")
	}
	email := models.NormalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, invalidInput("email %q is not valid", input.Email)
	}
	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, invalidInput("%v", err)
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, auth.ErrEmailExists
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
		Phone:    strings.TrimSpace(input.Phone),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, auth.ErrEmailExists
		}
		s.logger.WithError(err).WithField("email", email).Error("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered successfully")

	return &response.AuthResponse{Token: token, User: user}, nil
}

// Login checks credentials and signs a session token
func (s *userService) Login(ctx context.Context, email, password string) (*response.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := auth.CheckPassword(user.Password, password); err != nil {
		s.logger.WithField("user_id", user.ID).Warn("Login with wrong password")
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, err
	}

	s.logger.WithField("user_id", user.ID).Info("User logged in successfully")
	return &response.AuthResponse{Token: token, User: user}, nil
}

// GetProfile returns the account behind a session
func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user", userID)
	}
	return user, nil
}
