package models

// TeacherRole distinguishes regular teachers from administrators.
type TeacherRole string

const (
	RoleTeacher TeacherRole = "teacher"
	RoleAdmin   TeacherRole = "admin"
)

// Teacher is a staff account allowed to manage rosters.
type Teacher struct {
	Username     string      `db:"username" json:"username"`
	DisplayName  string      `db:"display_name" json:"displayName"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Role         TeacherRole `db:"role" json:"role"`
}

// Principal is the authenticated teacher identity attached to a request.
type Principal struct {
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Role        TeacherRole `json:"role"`
}

// Principal returns the public identity of the teacher.
func (t Teacher) Principal() *Principal {
	return &Principal{Username: t.Username, DisplayName: t.DisplayName, Role: t.Role}
}
