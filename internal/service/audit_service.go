package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/pkg/jobs"
)

const auditJobType = "audit_log"

// AuditSink persists audit entries.
type AuditSink interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// LogAuditSink writes audit entries to the structured log. Used when the store has no audit table.
type LogAuditSink struct {
	logger *zap.Logger
}

// NewLogAuditSink constructs a LogAuditSink.
func NewLogAuditSink(logger *zap.Logger) *LogAuditSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogAuditSink{logger: logger}
}

// CreateAuditLog logs the entry.
func (s *LogAuditSink) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	fields := []zap.Field{
		zap.String("action", log.Action),
		zap.String("resource", log.Resource),
		zap.ByteString("values", log.NewValues),
	}
	if log.Actor != nil {
		fields = append(fields, zap.String("actor", *log.Actor))
	}
	if log.ResourceID != nil {
		fields = append(fields, zap.String("resource_id", *log.ResourceID))
	}
	s.logger.Info("audit", fields...)
	return nil
}

// AuditService records audit entries asynchronously on a worker queue.
type AuditService struct {
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditService builds the queue that drains entries into sink.
func NewAuditService(sink AuditSink, cfg jobs.QueueConfig) *AuditService {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
		cfg.Logger = logger
	}
	handler := func(ctx context.Context, job jobs.Job) error {
		entry, ok := job.Payload.(*models.AuditLog)
		if !ok {
			return fmt.Errorf("unexpected audit payload %T", job.Payload)
		}
		return sink.CreateAuditLog(ctx, entry)
	}
	return &AuditService{queue: jobs.NewQueue("audit", handler, cfg), logger: logger}
}

// Start launches the workers.
func (s *AuditService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop flushes pending entries and stops the workers.
func (s *AuditService) Stop() {
	s.queue.Stop()
}

// Record enqueues an audit entry. Failures are logged and never surface to the caller.
func (s *AuditService) Record(actor *models.Principal, action, resource, resourceID string, values []byte) {
	if s == nil {
		return
	}
	entry := &models.AuditLog{
		ID:        uuid.NewString(),
		Action:    action,
		Resource:  resource,
		NewValues: values,
	}
	if actor != nil {
		username := actor.Username
		entry.Actor = &username
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}
	if err := s.queue.Enqueue(jobs.Job{ID: entry.ID, Type: auditJobType, Payload: entry}); err != nil {
		s.logger.Warn("audit entry dropped", zap.String("action", action), zap.Error(err))
	}
}
