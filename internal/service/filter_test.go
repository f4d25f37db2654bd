package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/seed"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

func names(activities []models.Activity) []string {
	out := make([]string, len(activities))
	for i, a := range activities {
		out[i] = a.Name
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func TestFilterActivities(t *testing.T) {
	catalog := seed.Activities()

	cases := []struct {
		name   string
		filter models.ActivityFilter
		want   []string
	}{
		{
			name:   "no filter keeps catalog order",
			filter: models.ActivityFilter{},
			want:   names(catalog),
		},
		{
			name:   "category and day intersect",
			filter: models.ActivityFilter{Category: ptr(models.CategorySports), Day: ptr(models.Friday)},
			want:   []string{"Morning Fitness", "Basketball Team"},
		},
		{
			name:   "sports on monday",
			filter: models.ActivityFilter{Category: ptr(models.CategorySports), Day: ptr(models.Monday)},
			want:   []string{"Morning Fitness"},
		},
		{
			name:   "morning",
			filter: models.ActivityFilter{TimeOfDay: models.TimeOfDayMorning},
			want:   []string{"Programming Class", "Morning Fitness", "Math Club", "Weekend Robotics Workshop"},
		},
		{
			name:   "evening",
			filter: models.ActivityFilter{TimeOfDay: models.TimeOfDayEvening},
			want:   []string{"Manga Maniacs"},
		},
		{
			name:   "afternoon weekend",
			filter: models.ActivityFilter{TimeOfDay: models.TimeOfDayAfternoon, Day: ptr(models.Saturday)},
			want:   []string{"Science Olympiad"},
		},
		{
			name:   "search is case insensitive over name and description",
			filter: models.ActivityFilter{Search: "  TOURNAMENT "},
			want:   []string{"Chess Club", "Basketball Team", "Sunday Chess Tournament"},
		},
		{
			name:   "search folds mixed case",
			filter: models.ActivityFilter{Search: "cHeSs"},
			want:   []string{"Chess Club", "Sunday Chess Tournament"},
		},
		{
			name:   "no match",
			filter: models.ActivityFilter{Category: ptr(models.CategoryCommunity)},
			want:   []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, names(FilterActivities(catalog, tc.filter)))
		})
	}
}

func TestFilterActivitiesSkipsUnparseableStartForTimeBuckets(t *testing.T) {
	broken := []models.Activity{{Name: "Broken", ScheduleDetails: models.Schedule{StartTime: "soon"}}}
	assert.Empty(t, FilterActivities(broken, models.ActivityFilter{TimeOfDay: models.TimeOfDayMorning}))
	assert.Len(t, FilterActivities(broken, models.ActivityFilter{TimeOfDay: models.TimeOfDayAny}), 1)
}

func TestDistinctDays(t *testing.T) {
	assert.Equal(t, models.Weekdays, DistinctDays(seed.Activities()))

	subset := []models.Activity{
		{ScheduleDetails: models.Schedule{Days: []models.Weekday{models.Saturday, models.Tuesday}}},
		{ScheduleDetails: models.Schedule{Days: []models.Weekday{models.Tuesday}}},
	}
	assert.Equal(t, []models.Weekday{models.Tuesday, models.Saturday}, DistinctDays(subset))
	assert.Empty(t, DistinctDays(nil))
}

func TestParseHelpers(t *testing.T) {
	category, err := ParseCategory("sports")
	require.NoError(t, err)
	assert.Equal(t, models.CategorySports, *category)

	category, err = ParseCategory("")
	require.NoError(t, err)
	assert.Nil(t, category)

	_, err = ParseCategory("Cooking")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	day, err := ParseWeekday("MONDAY")
	require.NoError(t, err)
	assert.Equal(t, models.Monday, *day)

	_, err = ParseWeekday("Funday")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	tod, err := ParseTimeOfDay("")
	require.NoError(t, err)
	assert.Equal(t, models.TimeOfDayAny, tod)

	tod, err = ParseTimeOfDay("Evening")
	require.NoError(t, err)
	assert.Equal(t, models.TimeOfDayEvening, tod)

	_, err = ParseTimeOfDay("midnight")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
