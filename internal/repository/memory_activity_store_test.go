package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/seed"
)

func newSeededMemoryStore(t *testing.T) *MemoryActivityStore {
	store := NewMemoryActivityStore()
	added, err := store.Seed(context.Background(), seed.Activities())
	require.NoError(t, err)
	require.Equal(t, len(seed.Activities()), added)
	return store
}

func TestMemoryActivityStoreSeedIsIdempotent(t *testing.T) {
	store := newSeededMemoryStore(t)

	added, err := store.Seed(context.Background(), seed.Activities())
	require.NoError(t, err)
	assert.Zero(t, added)

	list, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, len(seed.Activities()))
	assert.Equal(t, "Chess Club", list[0].Name)
}

func TestMemoryActivityStoreChessClubScenario(t *testing.T) {
	store := newSeededMemoryStore(t)
	ctx := context.Background()

	activity, err := store.AddParticipant(ctx, "Chess Club", "newstudent@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "newstudent@mergington.edu"}, activity.Participants)

	_, err = store.AddParticipant(ctx, "Chess Club", "NewStudent@mergington.edu")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	activity, err = store.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")
	require.NoError(t, err)
	assert.Equal(t, []string{"daniel@mergington.edu", "newstudent@mergington.edu"}, activity.Participants)

	_, err = store.RemoveParticipant(ctx, "Chess Club", "michael@mergington.edu")
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestMemoryActivityStoreUnknownActivity(t *testing.T) {
	store := newSeededMemoryStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "Underwater Basket Weaving")
	assert.ErrorIs(t, err, ErrActivityNotFound)
	_, err = store.AddParticipant(ctx, "Underwater Basket Weaving", "a@mergington.edu")
	assert.ErrorIs(t, err, ErrActivityNotFound)
	_, err = store.RemoveParticipant(ctx, "Underwater Basket Weaving", "a@mergington.edu")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestMemoryActivityStoreReturnsCopies(t *testing.T) {
	store := newSeededMemoryStore(t)
	ctx := context.Background()

	activity, err := store.Get(ctx, "Chess Club")
	require.NoError(t, err)
	activity.Participants[0] = "tampered@mergington.edu"
	activity.AddParticipant("extra@mergington.edu")

	fresh, err := store.Get(ctx, "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, fresh.Participants)
}

func TestMemoryActivityStoreConcurrentSignupsRespectCapacity(t *testing.T) {
	store := NewMemoryActivityStore()
	ctx := context.Background()
	_, err := store.Seed(ctx, []models.Activity{{
		Name:            "Tiny Club",
		MaxParticipants: 5,
		ScheduleDetails: models.Schedule{Days: []models.Weekday{models.Monday}, StartTime: "15:00", EndTime: "16:00"},
	}})
	require.NoError(t, err)

	const attempts = 50
	var succeeded, full int64
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.AddParticipant(ctx, "Tiny Club", fmt.Sprintf("student%d@mergington.edu", i))
			switch err {
			case nil:
				atomic.AddInt64(&succeeded, 1)
			case ErrCapacityExceeded:
				atomic.AddInt64(&full, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(5), succeeded)
	assert.Equal(t, int64(attempts-5), full)

	activity, err := store.Get(ctx, "Tiny Club")
	require.NoError(t, err)
	assert.Len(t, activity.Participants, 5)
}

func TestMemoryActivityStoreConcurrentDuplicateSignup(t *testing.T) {
	store := newSeededMemoryStore(t)
	ctx := context.Background()

	var succeeded int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.AddParticipant(ctx, "Programming Class", "racer@mergington.edu"); err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), succeeded)
	activity, err := store.Get(ctx, "Programming Class")
	require.NoError(t, err)
	count := 0
	for _, p := range activity.Participants {
		if p == "racer@mergington.edu" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMemoryTeacherStore(t *testing.T) {
	store := NewMemoryTeacherStore()
	ctx := context.Background()

	added, err := store.Seed(ctx, []models.Teacher{{Username: "mchen", DisplayName: "Mr. Chen", PasswordHash: "h", Role: models.RoleTeacher}})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	teacher, err := store.FindByUsername(ctx, "mchen")
	require.NoError(t, err)
	assert.Equal(t, "Mr. Chen", teacher.DisplayName)

	_, err = store.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrTeacherNotFound)
}
