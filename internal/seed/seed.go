// Package seed holds the initial Mergington High catalog and staff accounts.
package seed

import (
	"fmt"

	"github.com/noah-isme/mergington-activities-api/internal/models"
)

type hasher interface {
	Hash(password string) (string, error)
}

type account struct {
	username    string
	displayName string
	password    string
	role        models.TeacherRole
}

var accounts = []account{
	{username: "mrodriguez", displayName: "Ms. Rodriguez", password: "art123", role: models.RoleTeacher},
	{username: "mchen", displayName: "Mr. Chen", password: "chess456", role: models.RoleTeacher},
	{username: "principal", displayName: "Principal Martinez", password: "admin789", role: models.RoleAdmin},
}

// Teachers returns the seed staff accounts with freshly hashed passwords.
func Teachers(h hasher) ([]models.Teacher, error) {
	teachers := make([]models.Teacher, 0, len(accounts))
	for _, a := range accounts {
		hash, err := h.Hash(a.password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", a.username, err)
		}
		teachers = append(teachers, models.Teacher{
			Username:     a.username,
			DisplayName:  a.displayName,
			PasswordHash: hash,
			Role:         a.role,
		})
	}
	return teachers, nil
}

// Activities returns a fresh copy of the seed catalog in display order.
func Activities() []models.Activity {
	out := make([]models.Activity, len(catalog))
	for i, a := range catalog {
		out[i] = a.Clone()
	}
	return out
}

func days(d ...models.Weekday) []models.Weekday { return d }

var catalog = []models.Activity{
	{
		Name:            "Chess Club",
		Description:     "Learn strategies and compete in chess tournaments",
		Schedule:        "Mondays and Fridays, 3:15 PM - 4:45 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Monday, models.Friday), StartTime: "15:15", EndTime: "16:45"},
		Category:        models.CategoryAcademic,
		MaxParticipants: 12,
		Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
	},
	{
		Name:            "Programming Class",
		Description:     "Learn programming fundamentals and build software projects",
		Schedule:        "Tuesdays and Thursdays, 7:00 AM - 8:00 AM",
		ScheduleDetails: models.Schedule{Days: days(models.Tuesday, models.Thursday), StartTime: "07:00", EndTime: "08:00"},
		Category:        models.CategoryTechnology,
		MaxParticipants: 20,
		Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
	},
	{
		Name:            "Morning Fitness",
		Description:     "Early morning physical training and exercises",
		Schedule:        "Mondays, Wednesdays, Fridays, 6:30 AM - 7:45 AM",
		ScheduleDetails: models.Schedule{Days: days(models.Monday, models.Wednesday, models.Friday), StartTime: "06:30", EndTime: "07:45"},
		Category:        models.CategorySports,
		MaxParticipants: 30,
		Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
	},
	{
		Name:            "Soccer Team",
		Description:     "Join the school soccer team and compete in matches",
		Schedule:        "Tuesdays and Thursdays, 3:30 PM - 5:30 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Tuesday, models.Thursday), StartTime: "15:30", EndTime: "17:30"},
		Category:        models.CategorySports,
		MaxParticipants: 22,
		Participants:    []string{"liam@mergington.edu", "noah@mergington.edu"},
	},
	{
		Name:            "Basketball Team",
		Description:     "Practice and compete in basketball tournaments",
		Schedule:        "Wednesdays and Fridays, 3:15 PM - 5:00 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Wednesday, models.Friday), StartTime: "15:15", EndTime: "17:00"},
		Category:        models.CategorySports,
		MaxParticipants: 15,
		Participants:    []string{"ava@mergington.edu", "mia@mergington.edu"},
	},
	{
		Name:            "Art Club",
		Description:     "Explore various art techniques and create masterpieces",
		Schedule:        "Thursdays, 3:15 PM - 5:00 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Thursday), StartTime: "15:15", EndTime: "17:00"},
		Category:        models.CategoryArts,
		MaxParticipants: 15,
		Participants:    []string{"amelia@mergington.edu", "harper@mergington.edu"},
	},
	{
		Name:            "Drama Club",
		Description:     "Act, direct, and produce plays and performances",
		Schedule:        "Mondays and Wednesdays, 3:30 PM - 5:30 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Monday, models.Wednesday), StartTime: "15:30", EndTime: "17:30"},
		Category:        models.CategoryArts,
		MaxParticipants: 20,
		Participants:    []string{"ella@mergington.edu", "scarlett@mergington.edu"},
	},
	{
		Name:            "Math Club",
		Description:     "Solve challenging problems and prepare for math competitions",
		Schedule:        "Tuesdays, 7:15 AM - 8:00 AM",
		ScheduleDetails: models.Schedule{Days: days(models.Tuesday), StartTime: "07:15", EndTime: "08:00"},
		Category:        models.CategoryAcademic,
		MaxParticipants: 10,
		Participants:    []string{"james@mergington.edu", "benjamin@mergington.edu"},
	},
	{
		Name:            "Debate Team",
		Description:     "Develop public speaking and argumentation skills",
		Schedule:        "Fridays, 3:30 PM - 5:30 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Friday), StartTime: "15:30", EndTime: "17:30"},
		Category:        models.CategoryAcademic,
		MaxParticipants: 12,
		Participants:    []string{"charlotte@mergington.edu", "amelia@mergington.edu"},
	},
	{
		Name:            "Weekend Robotics Workshop",
		Description:     "Build and program robots in our state-of-the-art workshop",
		Schedule:        "Saturdays, 10:00 AM - 2:00 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Saturday), StartTime: "10:00", EndTime: "14:00"},
		Category:        models.CategoryTechnology,
		MaxParticipants: 15,
		Participants:    []string{"ethan@mergington.edu", "oliver@mergington.edu"},
	},
	{
		Name:            "Science Olympiad",
		Description:     "Weekend science competition preparation for regional and state events",
		Schedule:        "Saturdays, 1:00 PM - 4:00 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Saturday), StartTime: "13:00", EndTime: "16:00"},
		Category:        models.CategoryAcademic,
		MaxParticipants: 18,
		Participants:    []string{"isabella@mergington.edu", "lucas@mergington.edu"},
	},
	{
		Name:            "Sunday Chess Tournament",
		Description:     "Weekly tournament for serious chess players with rankings",
		Schedule:        "Sundays, 2:00 PM - 5:00 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Sunday), StartTime: "14:00", EndTime: "17:00"},
		Category:        models.CategoryAcademic,
		MaxParticipants: 16,
		Participants:    []string{"william@mergington.edu", "jacob@mergington.edu"},
	},
	{
		Name:            "Manga Maniacs",
		Description:     "Explore the fantastic stories of the most interesting characters from Japanese Manga (graphic novels).",
		Schedule:        "Tuesdays, 7:00 PM - 8:00 PM",
		ScheduleDetails: models.Schedule{Days: days(models.Tuesday), StartTime: "19:00", EndTime: "20:00"},
		Category:        models.CategoryArts,
		MaxParticipants: 15,
		Participants:    []string{},
	},
}
