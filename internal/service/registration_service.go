package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

// Registration actions used for metrics and audit entries.
const (
	ActionSignup   = "signup"
	ActionWithdraw = "withdraw"
)

type studentEmail struct {
	Email string `validate:"required,contains=@,max=254"`
}

// RegistrationService signs students up for activities and withdraws them.
type RegistrationService struct {
	store     ActivityStore
	cache     *CacheService
	metrics   *MetricsService
	audit     *AuditService
	validator *validator.Validate
	logger    *zap.Logger
}

// RegistrationServiceParams groups constructor dependencies. Only Store is required.
type RegistrationServiceParams struct {
	Store     ActivityStore
	Cache     *CacheService
	Metrics   *MetricsService
	Audit     *AuditService
	Validator *validator.Validate
	Logger    *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(params RegistrationServiceParams) *RegistrationService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{
		store:     params.Store,
		cache:     params.Cache,
		metrics:   params.Metrics,
		audit:     params.Audit,
		validator: validate,
		logger:    logger,
	}
}

// Signup adds email to the roster of activity.
func (s *RegistrationService) Signup(ctx context.Context, activity, email string, actor *models.Principal) (*models.Activity, error) {
	return s.mutate(ctx, ActionSignup, models.AuditActionSignup, activity, email, actor, s.store.AddParticipant)
}

// Withdraw removes email from the roster of activity.
func (s *RegistrationService) Withdraw(ctx context.Context, activity, email string, actor *models.Principal) (*models.Activity, error) {
	return s.mutate(ctx, ActionWithdraw, models.AuditActionWithdraw, activity, email, actor, s.store.RemoveParticipant)
}

type rosterMutation func(ctx context.Context, name, email string) (*models.Activity, error)

func (s *RegistrationService) mutate(ctx context.Context, action, auditAction, activity, email string, actor *models.Principal, apply rosterMutation) (*models.Activity, error) {
	normalized, err := s.normalizeEmail(email)
	if err != nil {
		s.metrics.RecordRegistration(action, resultCode(err))
		return nil, err
	}

	updated, err := apply(ctx, activity, normalized)
	if err != nil {
		mapped := mapStoreError(err, activity)
		s.metrics.RecordRegistration(action, resultCode(mapped))
		if appErrors.Is(mapped, appErrors.ErrStoreUnavailable) {
			s.logger.Error("roster update failed", zap.String("action", action), zap.String("activity", activity), zap.Error(err))
		}
		return nil, mapped
	}

	s.metrics.RecordRegistration(action, resultCode(nil))
	s.metrics.SetRosterSize(updated.Name, len(updated.Participants))
	if _, err := s.cache.BumpGeneration(ctx); err != nil {
		s.logger.Warn("catalog cache not invalidated", zap.String("activity", activity), zap.Error(err))
	}
	s.recordAudit(auditAction, updated.Name, normalized, actor)

	s.logger.Info("roster updated",
		zap.String("action", action),
		zap.String("activity", updated.Name),
		zap.Int("participants", len(updated.Participants)),
	)
	return updated, nil
}

func (s *RegistrationService) normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := s.validator.Struct(studentEmail{Email: email}); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInvalidEmail.Code, appErrors.ErrInvalidEmail.Status, appErrors.ErrInvalidEmail.Message)
	}
	return email, nil
}

func (s *RegistrationService) recordAudit(action, activity, email string, actor *models.Principal) {
	if s.audit == nil {
		return
	}
	values, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		s.logger.Warn("audit payload encoding failed", zap.Error(err))
		return
	}
	s.audit.Record(actor, action, "activity", activity, values)
}
