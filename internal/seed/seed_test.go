package seed

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mergington-activities-api/internal/models"
)

type fakeHasher struct{ err error }

func (f fakeHasher) Hash(password string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "hashed:" + password, nil
}

func TestActivitiesAreValid(t *testing.T) {
	activities := Activities()
	require.Len(t, activities, 13)

	seen := map[string]bool{}
	for _, a := range activities {
		assert.False(t, seen[a.Name], "duplicate %s", a.Name)
		seen[a.Name] = true
		assert.Contains(t, models.Categories, a.Category, a.Name)
		assert.Positive(t, a.MaxParticipants, a.Name)
		assert.LessOrEqual(t, len(a.Participants), a.MaxParticipants, a.Name)
		assert.NotEmpty(t, a.ScheduleDetails.Days, a.Name)
		_, err := a.ScheduleDetails.StartMinutes()
		assert.NoError(t, err, a.Name)
	}
}

func TestActivitiesReturnsCopies(t *testing.T) {
	first := Activities()
	first[0].Participants = append(first[0].Participants, "new@mergington.edu")

	assert.Len(t, Activities()[0].Participants, 2)
}

func TestTeachersHashesPasswords(t *testing.T) {
	teachers, err := Teachers(fakeHasher{})
	require.NoError(t, err)
	require.Len(t, teachers, 3)
	assert.Equal(t, "hashed:chess456", teachers[1].PasswordHash)
	assert.Equal(t, models.RoleAdmin, teachers[2].Role)

	_, err = Teachers(fakeHasher{err: errors.New("no entropy")})
	assert.Error(t, err)
}
