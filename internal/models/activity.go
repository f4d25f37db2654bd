package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Category classifies an activity in the catalog.
type Category string

// Supported activity categories.
const (
	CategorySports     Category = "Sports"
	CategoryArts       Category = "Arts"
	CategoryAcademic   Category = "Academic"
	CategoryTechnology Category = "Technology"
	CategoryCommunity  Category = "Community"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySports, CategoryArts, CategoryAcademic, CategoryTechnology, CategoryCommunity}

// Weekday is a day of the week spelled out in English, e.g. "Monday".
type Weekday string

// Days of the week.
const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in calendar order starting on Monday.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the position of d in Weekdays, or -1 when d is not a weekday.
func (d Weekday) Index() int {
	return slices.Index(Weekdays, d)
}

// TimeOfDay buckets activities by their start time.
type TimeOfDay string

// Time-of-day buckets. Morning starts before noon, afternoon before 17:00, evening after.
const (
	TimeOfDayAny       TimeOfDay = "any"
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
)

// ClockLayout is the 24h layout used for schedule start and end times.
const ClockLayout = "15:04"

// Schedule holds the machine readable meeting times of an activity.
type Schedule struct {
	Days      []Weekday `json:"days"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
}

// StartMinutes returns the start time as minutes past midnight.
func (s Schedule) StartMinutes() (int, error) {
	t, err := time.Parse(ClockLayout, s.StartTime)
	if err != nil {
		return 0, fmt.Errorf("parse start time %q: %w", s.StartTime, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// HasDay reports whether the activity meets on d.
func (s Schedule) HasDay(d Weekday) bool {
	return slices.Contains(s.Days, d)
}

// Activity is an extracurricular offering together with its roster.
type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	ScheduleDetails Schedule `json:"scheduleDetails"`
	Category        Category `json:"category"`
	MaxParticipants int      `json:"maxParticipants"`
	Participants    []string `json:"participants"`
}

// Clone returns a deep copy so callers never share roster slices with a store.
func (a Activity) Clone() Activity {
	clone := a
	clone.ScheduleDetails.Days = slices.Clone(a.ScheduleDetails.Days)
	clone.Participants = slices.Clone(a.Participants)
	if clone.Participants == nil {
		clone.Participants = []string{}
	}
	return clone
}

// HasParticipant reports whether email is on the roster. Emails compare case-insensitively.
func (a Activity) HasParticipant(email string) bool {
	return a.participantIndex(email) >= 0
}

// IsFull reports whether the roster has reached capacity.
func (a Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// SpotsLeft returns the number of free places.
func (a Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}

// AddParticipant appends email; callers must have checked capacity and duplicates.
func (a *Activity) AddParticipant(email string) {
	a.Participants = append(a.Participants, email)
}

// RemoveParticipant drops email from the roster and reports whether it was present.
func (a *Activity) RemoveParticipant(email string) bool {
	idx := a.participantIndex(email)
	if idx < 0 {
		return false
	}
	a.Participants = slices.Delete(a.Participants, idx, idx+1)
	return true
}

func (a Activity) participantIndex(email string) int {
	return slices.IndexFunc(a.Participants, func(p string) bool {
		return strings.EqualFold(p, email)
	})
}

// ActivityFilter narrows catalog listings. Nil or zero fields do not filter.
type ActivityFilter struct {
	Category  *Category
	Day       *Weekday
	TimeOfDay TimeOfDay
	Search    string
}

// CacheKey renders the filter deterministically for use in cache keys.
func (f ActivityFilter) CacheKey() string {
	category, day := "", ""
	if f.Category != nil {
		category = string(*f.Category)
	}
	if f.Day != nil {
		day = string(*f.Day)
	}
	tod := f.TimeOfDay
	if tod == "" {
		tod = TimeOfDayAny
	}
	return fmt.Sprintf("c=%s|d=%s|t=%s|q=%s", category, day, tod, strings.ToLower(strings.TrimSpace(f.Search)))
}
