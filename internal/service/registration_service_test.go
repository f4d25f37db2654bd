package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/repository"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
	"github.com/noah-isme/mergington-activities-api/pkg/jobs"
)

type brokenStore struct {
	ActivityStore
}

func (brokenStore) AddParticipant(context.Context, string, string) (*models.Activity, error) {
	return nil, fmt.Errorf("insert: %w: %w", repository.ErrStoreUnavailable, errors.New("connection reset"))
}

type recordingSink struct {
	mu      sync.Mutex
	entries []*models.AuditLog
}

func (s *recordingSink) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, log)
	return nil
}

func emptyChessClub(t *testing.T, capacity int) ActivityStore {
	store := repository.NewMemoryActivityStore()
	_, err := store.Seed(context.Background(), []models.Activity{{
		Name:            "Chess Club",
		Category:        models.CategoryAcademic,
		MaxParticipants: capacity,
		ScheduleDetails: models.Schedule{Days: []models.Weekday{models.Monday}, StartTime: "15:15", EndTime: "16:45"},
	}})
	require.NoError(t, err)
	return store
}

func TestRegistrationServiceChessClubScenario(t *testing.T) {
	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, 12)})
	ctx := context.Background()

	activity, err := svc.Signup(ctx, "Chess Club", "a@x.com", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, activity.Participants)

	_, err = svc.Signup(ctx, "Chess Club", "a@x.com", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyRegistered))

	activity, err = svc.Withdraw(ctx, "Chess Club", "a@x.com", nil)
	require.NoError(t, err)
	assert.Empty(t, activity.Participants)

	_, err = svc.Withdraw(ctx, "Chess Club", "a@x.com", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotRegistered))

	activity, err = svc.Signup(ctx, "Chess Club", "a@x.com", nil)
	require.NoError(t, err)
	assert.Len(t, activity.Participants, 1)
}

func TestRegistrationServiceNormalizesEmail(t *testing.T) {
	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, 12)})
	ctx := context.Background()

	activity, err := svc.Signup(ctx, "Chess Club", "  Emma@Mergington.EDU ", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"emma@mergington.edu"}, activity.Participants)

	_, err = svc.Signup(ctx, "Chess Club", "emma@mergington.edu", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrAlreadyRegistered))
}

func TestRegistrationServiceRejectsInvalidEmail(t *testing.T) {
	store := &countingStore{ActivityStore: emptyChessClub(t, 12)}
	svc := NewRegistrationService(RegistrationServiceParams{Store: store})
	ctx := context.Background()

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := svc.Signup(ctx, "Unknown Club", email, nil)
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidEmail), "email %q", email)
		_, err = svc.Withdraw(ctx, "Chess Club", email, nil)
		assert.True(t, appErrors.Is(err, appErrors.ErrInvalidEmail), "email %q", email)
	}
}

func TestRegistrationServiceUnknownActivity(t *testing.T) {
	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, 12)})

	_, err := svc.Signup(context.Background(), "Knitting Circle", "a@x.com", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrActivityNotFound))
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestRegistrationServiceCapacity(t *testing.T) {
	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, 2)})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Chess Club", "a@x.com", nil)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Chess Club", "b@x.com", nil)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Chess Club", "c@x.com", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrCapacityExceeded))

	_, err = svc.Withdraw(ctx, "Chess Club", "a@x.com", nil)
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "Chess Club", "c@x.com", nil)
	require.NoError(t, err)
}

func TestRegistrationServiceConcurrentSignups(t *testing.T) {
	const capacity, attempts = 7, 40
	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, capacity)})
	ctx := context.Background()

	var mu sync.Mutex
	outcomes := map[string]int{}
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Signup(ctx, "Chess Club", fmt.Sprintf("s%d@mergington.edu", i), nil)
			mu.Lock()
			outcomes[resultCode(err)]++
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, capacity, outcomes["ok"])
	assert.Equal(t, attempts-capacity, outcomes[appErrors.ErrCapacityExceeded.Code])
}

func TestRegistrationServiceLastSeatRace(t *testing.T) {
	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, 1)})
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, email := range []string{"first@x.com", "second@x.com"} {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			_, err := svc.Signup(ctx, "Chess Club", email, nil)
			errs <- err
		}(email)
	}
	wg.Wait()
	close(errs)

	var ok, full int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case appErrors.Is(err, appErrors.ErrCapacityExceeded):
			full++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)
}

func TestRegistrationServiceStoreUnavailable(t *testing.T) {
	svc := NewRegistrationService(RegistrationServiceParams{Store: brokenStore{ActivityStore: emptyChessClub(t, 1)}})

	_, err := svc.Signup(context.Background(), "Chess Club", "a@x.com", nil)
	assert.True(t, appErrors.Is(err, appErrors.ErrStoreUnavailable))
	assert.Equal(t, 503, appErrors.FromError(err).Status)
}

func TestRegistrationServiceRecordsAudit(t *testing.T) {
	sink := &recordingSink{}
	audit := NewAuditService(sink, jobs.QueueConfig{Workers: 1, BufferSize: 8, Logger: zap.NewNop()})
	audit.Start(context.Background())

	svc := NewRegistrationService(RegistrationServiceParams{Store: emptyChessClub(t, 5), Audit: audit, Metrics: NewMetricsService()})
	teacher := &models.Principal{Username: "mchen", DisplayName: "Mr. Chen", Role: models.RoleTeacher}
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Chess Club", "a@x.com", teacher)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "Chess Club", "a@x.com", teacher)
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, "Chess Club", "a@x.com", teacher)
	require.Error(t, err)
	audit.Stop()

	require.Len(t, sink.entries, 2)
	assert.Equal(t, models.AuditActionSignup, sink.entries[0].Action)
	assert.Equal(t, models.AuditActionWithdraw, sink.entries[1].Action)
	assert.Equal(t, "mchen", *sink.entries[0].Actor)
	assert.Equal(t, "Chess Club", *sink.entries[0].ResourceID)
	assert.JSONEq(t, `{"email":"a@x.com"}`, string(sink.entries[0].NewValues))
}
