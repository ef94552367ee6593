package repository

import (
	"context"

	"gorm.io/gorm"

	"letly-be-svc/internal/models"
)

// LogSchedulerRepository defines the interface for log scheduler data operations
type LogSchedulerRepository interface {
	CreateLogScheduler(ctx context.Context, log *models.LogSchedullers) error
	ListByDocumentID(ctx context.Context, documentID string) ([]*models.LogSchedullers, error)
}

// logSchedulerRepository implements LogSchedulerRepository
type logSchedulerRepository struct {
	db *gorm.DB
}

// NewLogSchedulerRepository creates a new instance of LogSchedulerRepository
func NewLogSchedulerRepository(db *gorm.DB) LogSchedulerRepository {
	return &logSchedulerRepository{
		db: db,
	}
}

// CreateLogScheduler creates a new log scheduler record
func (r *logSchedulerRepository) CreateLogScheduler(ctx context.Context, log *models.LogSchedullers) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// ListByDocumentID returns every state change of one run in insertion order
func (r *logSchedulerRepository) ListByDocumentID(ctx context.Context, documentID string) ([]*models.LogSchedullers, error) {
	var logs []*models.LogSchedullers
	err := r.db.WithContext(ctx).Where("document_id = ?", documentID).Order("id ASC").Find(&logs).Error
	return logs, err
}
