package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"letly-be-svc/internal/models"
)

// PasswordResetRepository defines the interface for reset token data operations
type PasswordResetRepository interface {
	Replace(ctx context.Context, token *models.PasswordResetToken) error
	FindUsable(ctx context.Context, email, tokenHash string, now time.Time) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id uint) (bool, error)
}

// passwordResetRepository implements PasswordResetRepository
type passwordResetRepository struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new instance of PasswordResetRepository
func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{
		db: db,
	}
}

// Replace drops earlier tokens for the same email and stores token
func (r *passwordResetRepository) Replace(ctx context.Context, token *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", token.Email).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// FindUsable returns the unused, unexpired token matching email and hash
func (r *passwordResetRepository) FindUsable(ctx context.Context, email, tokenHash string, now time.Time) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := r.db.WithContext(ctx).
		Where("email = ? AND token_hash = ? AND used = ? AND expires_at > ?", email, tokenHash, false, now).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// MarkUsed consumes a token. It reports false when it was already consumed.
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.PasswordResetToken{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	return result.RowsAffected == 1, result.Error
}
