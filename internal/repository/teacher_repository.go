package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mergington-activities-api/internal/models"
)

// TeacherRepository reads staff accounts from the teachers table.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs the repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByUsername returns the teacher identified by username.
func (r *TeacherRepository) FindByUsername(ctx context.Context, username string) (*models.Teacher, error) {
	query := r.db.Rebind(`SELECT username, display_name, password_hash, role FROM teachers WHERE username = ?`)
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeacherNotFound
		}
		return nil, unavailable("find teacher", err)
	}
	return &teacher, nil
}

// Seed inserts teachers that are not yet present.
func (r *TeacherRepository) Seed(ctx context.Context, teachers []models.Teacher) (int, error) {
	query := r.db.Rebind(`INSERT INTO teachers (username, display_name, password_hash, role)
        VALUES (?, ?, ?, ?) ON CONFLICT (username) DO NOTHING`)
	added := 0
	for _, t := range teachers {
		res, err := r.db.ExecContext(ctx, query, t.Username, t.DisplayName, t.PasswordHash, string(t.Role))
		if err != nil {
			return added, unavailable("seed teacher "+t.Username, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, nil
}
