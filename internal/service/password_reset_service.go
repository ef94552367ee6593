package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/models"
	"letly-be-svc/internal/notifier"
	"letly-be-svc/internal/repository"
	"letly-be-svc/pkg/logger"
)

// ResetTokenTTL is how long a password reset link stays valid
const ResetTokenTTL = time.Hour

// ErrInvalidResetToken is returned for unknown, used or expired reset tokens
var ErrInvalidResetToken = errors.New("invalid or expired reset token")

// PasswordResetService interface defines the forgot-password flow
type PasswordResetService interface {
	Request(ctx context.Context, email string) error
	Verify(ctx context.Context, email, token string) error
	Reset(ctx context.Context, email, token, newPassword string) error
}

// passwordResetService implements PasswordResetService interface
type passwordResetService struct {
	userRepo    repository.UserRepository
	resetRepo   repository.PasswordResetRepository
	notifier    notifier.Notifier
	frontendURL string
	logger      *logger.Logger
	now         func() time.Time
}

// NewPasswordResetService creates a new password reset service. Links in the
// reset mail point at frontendURL.
func NewPasswordResetService(
	userRepo repository.UserRepository,
	resetRepo repository.PasswordResetRepository,
	notifier notifier.Notifier,
	frontendURL string,
	logger *logger.Logger,
) PasswordResetService {
	return &passwordResetService{
		userRepo:    userRepo,
		resetRepo:   resetRepo,
		notifier:    notifier,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		logger:      logger,
		now:         time.Now,
	}
}

// Request mails a reset link when the email belongs to an account. It succeeds
// either way so callers cannot probe for registered addresses.
func (s *passwordResetService) Request(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WithField("email", email).Info("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	record := &models.PasswordResetToken{
		Email:     email,
		TokenHash: hashResetToken(token),
		ExpiresAt: s.now().Add(ResetTokenTTL),
	}
	if err := s.resetRepo.Replace(ctx, record); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to store reset token")
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s&email=%s", s.frontendURL, token, url.QueryEscape(email))
	s.notifier.PasswordReset(user, link)

	s.logger.WithField("user_id", user.ID).Info("Password reset link issued")
	return nil
}

// Verify checks a token without consuming it
func (s *passwordResetService) Verify(ctx context.Context, email, token string) error {
	_, err := s.usable(ctx, email, token)
	return err
}

// Reset consumes the token and stores the new password
func (s *passwordResetService) Reset(ctx context.Context, email, token, newPassword string) error {
	record, err := s.usable(ctx, email, token)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(ctx, record.Email)
	if err != nil {
		return lookupErr(err, "user", record.Email)
	}

	consumed, err := s.resetRepo.MarkUsed(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !consumed {
		return ErrInvalidResetToken
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Error("Failed to update password")
		return lookupErr(err, "user", user.ID)
	}

	s.logger.WithField("user_id", user.ID).Info("Password reset successfully")
	return nil
}

func (s *passwordResetService) usable(ctx context.Context, email, token string) (*models.PasswordResetToken, error) {
	if token == "" {
		return nil, ErrInvalidResetToken
	}
	record, err := s.resetRepo.FindUsable(ctx, models.NormalizeEmail(email), hashResetToken(token), s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidResetToken
		}
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	return record, nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
