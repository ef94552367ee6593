package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"letly-be-svc/internal/models"
	"letly-be-svc/internal/repository"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
)

// OverdueSweepCode identifies the sweep in log_schedullers
const OverdueSweepCode = "OVERDUE_BILL_SWEEP"

// OverdueScheduler periodically moves pending bills past their due date to overdue
type OverdueScheduler struct {
	billService      service.BillService
	logSchedulerRepo repository.LogSchedulerRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
	timeout          time.Duration
}

// NewOverdueScheduler creates a new overdue scheduler
func NewOverdueScheduler(billService service.BillService, logSchedulerRepo repository.LogSchedulerRepository, logger *logger.Logger, cronExpression string) *OverdueScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &OverdueScheduler{
		billService:      billService,
		logSchedulerRepo: logSchedulerRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
		timeout:          5 * time.Minute,
	}
}

// Start schedules the sweep and starts the cron runner
func (s *OverdueScheduler) Start() error {
	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling overdue sweep")
	_, err := s.cron.AddFunc(s.cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		_, _ = s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule overdue sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Overdue scheduler started successfully")
	return nil
}

// Stop waits for a running sweep and stops the scheduler
func (s *OverdueScheduler) Stop() {
	s.logger.Info("Stopping overdue scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Overdue scheduler stopped successfully")
}

// RunOnce performs one sweep and records START, RUNNING and SUCCESS or FAILED
// rows under one document id, which it returns.
func (s *OverdueScheduler) RunOnce(ctx context.Context) (string, error) {
	docID := uuid.New().String()

	s.logScheduler(ctx, docID, "Starting overdue bill sweep", models.SchedulerStart)
	s.logScheduler(ctx, docID, fmt.Sprintf("Marking pending bills due before %s as overdue", time.Now().Format(time.RFC3339)), models.SchedulerRunning)

	marked, err := s.billService.SweepOverdue(ctx)
	if err != nil {
		s.logScheduler(ctx, docID, fmt.Sprintf("Failed to sweep overdue bills: %v", err), models.SchedulerFailed)
		s.logger.WithError(err).Error("Overdue sweep failed")
		return docID, err
	}

	s.logScheduler(ctx, docID, fmt.Sprintf("Marked %d bills as overdue", marked), models.SchedulerSuccess)
	return docID, nil
}

// logScheduler creates a new log entry in the database
func (s *OverdueScheduler) logScheduler(ctx context.Context, documentID, message, status string) {
	code := OverdueSweepCode
	now := time.Now()
	logEntry := &models.LogSchedullers{
		DocumentID:       &documentID,
		SchedullerCode:   &code,
		Message:          &message,
		StatusScheduller: &status,
		CreatedAt:        &now,
		UpdatedAt:        &now,
	}

	if err := s.logSchedulerRepo.CreateLogScheduler(ctx, logEntry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
		return
	}
	s.logger.WithField("status", status).WithField("document_id", documentID).Debug("Scheduler log entry created")
}
