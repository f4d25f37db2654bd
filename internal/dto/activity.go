package dto

import "github.com/noah-isme/mergington-activities-api/internal/models"

// ActivityView is the public representation of an activity.
type ActivityView struct {
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Schedule         string          `json:"schedule"`
	ScheduleDetails  models.Schedule `json:"scheduleDetails"`
	Category         models.Category `json:"category"`
	MaxParticipants  int             `json:"maxParticipants"`
	ParticipantCount int             `json:"participantCount"`
	SpotsLeft        int             `json:"spotsLeft"`
	Participants     []string        `json:"participants"`
}

// NewActivityView builds the view for a.
func NewActivityView(a models.Activity) ActivityView {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Name:             a.Name,
		Description:      a.Description,
		Schedule:         a.Schedule,
		ScheduleDetails:  a.ScheduleDetails,
		Category:         a.Category,
		MaxParticipants:  a.MaxParticipants,
		ParticipantCount: len(participants),
		SpotsLeft:        a.SpotsLeft(),
		Participants:     participants,
	}
}

// NewActivityViews maps a slice of activities, never returning nil.
func NewActivityViews(activities []models.Activity) []ActivityView {
	views := make([]ActivityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, NewActivityView(a))
	}
	return views
}

// RosterChangeRequest carries the student email for signup and withdraw.
// The email may also be passed as the "email" query parameter.
type RosterChangeRequest struct {
	Email string `json:"email"`
}

// RosterChangeResponse confirms a signup or withdrawal.
type RosterChangeResponse struct {
	Message  string       `json:"message"`
	Activity ActivityView `json:"activity"`
}

// ListActivitiesQuery holds the raw catalog filters from the query string.
type ListActivitiesQuery struct {
	Category  string `form:"category"`
	Day       string `form:"day"`
	TimeOfDay string `form:"timeOfDay"`
	Search    string `form:"q"`
}
