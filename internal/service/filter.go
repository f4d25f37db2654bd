package service

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

const (
	noonMinutes    = 12 * 60
	eveningMinutes = 17 * 60
)

// FilterActivities returns the activities matching every set criterion, in catalog order.
func FilterActivities(activities []models.Activity, filter models.ActivityFilter) []models.Activity {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter.Search))

	out := make([]models.Activity, 0, len(activities))
	for _, a := range activities {
		if filter.Category != nil && a.Category != *filter.Category {
			continue
		}
		if filter.Day != nil && !a.ScheduleDetails.HasDay(*filter.Day) {
			continue
		}
		if !matchesTimeOfDay(a.ScheduleDetails, filter.TimeOfDay) {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(a.Name+" "+a.Description), needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func matchesTimeOfDay(schedule models.Schedule, tod models.TimeOfDay) bool {
	if tod == "" || tod == models.TimeOfDayAny {
		return true
	}
	start, err := schedule.StartMinutes()
	if err != nil {
		return false
	}
	switch tod {
	case models.TimeOfDayMorning:
		return start < noonMinutes
	case models.TimeOfDayAfternoon:
		return start >= noonMinutes && start < eveningMinutes
	case models.TimeOfDayEvening:
		return start >= eveningMinutes
	default:
		return false
	}
}

// DistinctDays lists every weekday on which at least one activity meets, Monday first.
func DistinctDays(activities []models.Activity) []models.Weekday {
	seen := make(map[models.Weekday]struct{})
	for _, a := range activities {
		for _, d := range a.ScheduleDetails.Days {
			seen[d] = struct{}{}
		}
	}
	days := make([]models.Weekday, 0, len(seen))
	for _, d := range models.Weekdays {
		if _, ok := seen[d]; ok {
			days = append(days, d)
		}
	}
	return days
}

// ParseCategory resolves a query value to a category. Empty input means no filter.
func ParseCategory(raw string) (*models.Category, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	idx := slices.IndexFunc(models.Categories, func(c models.Category) bool {
		return strings.EqualFold(string(c), raw)
	})
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown category "+raw)
	}
	c := models.Categories[idx]
	return &c, nil
}

// ParseWeekday resolves a query value to a weekday. Empty input means no filter.
func ParseWeekday(raw string) (*models.Weekday, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	idx := slices.IndexFunc(models.Weekdays, func(d models.Weekday) bool {
		return strings.EqualFold(string(d), raw)
	})
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown day "+raw)
	}
	d := models.Weekdays[idx]
	return &d, nil
}

// ParseTimeOfDay resolves a query value to a time-of-day bucket. Empty input means any.
func ParseTimeOfDay(raw string) (models.TimeOfDay, error) {
	switch tod := models.TimeOfDay(strings.ToLower(strings.TrimSpace(raw))); tod {
	case "", models.TimeOfDayAny:
		return models.TimeOfDayAny, nil
	case models.TimeOfDayMorning, models.TimeOfDayAfternoon, models.TimeOfDayEvening:
		return tod, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown timeOfDay "+raw)
	}
}
