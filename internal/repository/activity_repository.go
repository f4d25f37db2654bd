package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/pkg/lock"
)

const activityColumns = `name, description, category, schedule, days, start_time, end_time, max_participants`

type activityRow struct {
	Name            string `db:"name"`
	Description     string `db:"description"`
	Category        string `db:"category"`
	Schedule        string `db:"schedule"`
	Days            string `db:"days"`
	StartTime       string `db:"start_time"`
	EndTime         string `db:"end_time"`
	MaxParticipants int    `db:"max_participants"`
}

type participantRow struct {
	ActivityName string `db:"activity_name"`
	Email        string `db:"email"`
}

func (r activityRow) toModel(participants []string) models.Activity {
	var days []models.Weekday
	for _, d := range strings.Split(r.Days, ",") {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, models.Weekday(d))
		}
	}
	if participants == nil {
		participants = []string{}
	}
	return models.Activity{
		Name:        r.Name,
		Description: r.Description,
		Schedule:    r.Schedule,
		ScheduleDetails: models.Schedule{
			Days:      days,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
		},
		Category:        models.Category(r.Category),
		MaxParticipants: r.MaxParticipants,
		Participants:    participants,
	}
}

func joinDays(days []models.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

// ActivityRepository persists the catalog in PostgreSQL or SQLite.
type ActivityRepository struct {
	db    *sqlx.DB
	locks *lock.KeyedLocker
	now   func() time.Time
}

// NewActivityRepository constructs the repository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db, locks: lock.NewKeyedLocker(), now: time.Now}
}

func (r *ActivityRepository) isPostgres() bool {
	return r.db.DriverName() == "postgres"
}

// Seed inserts activities that are not yet present, preserving their order.
func (r *ActivityRepository) Seed(ctx context.Context, activities []models.Activity) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, unavailable("seed activities", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var next int
	if err := tx.GetContext(ctx, &next, `SELECT COALESCE(MAX(position), -1) + 1 FROM activities`); err != nil {
		return 0, unavailable("seed activities", err)
	}

	insertActivity := tx.Rebind(`INSERT INTO activities (` + activityColumns + `, position)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT (name) DO NOTHING`)
	insertParticipant := tx.Rebind(`INSERT INTO activity_participants (activity_name, email, joined_at) VALUES (?, ?, ?)`)

	added := 0
	for _, a := range activities {
		res, err := tx.ExecContext(ctx, insertActivity,
			a.Name, a.Description, string(a.Category), a.Schedule, joinDays(a.ScheduleDetails.Days),
			a.ScheduleDetails.StartTime, a.ScheduleDetails.EndTime, a.MaxParticipants, next)
		if err != nil {
			return 0, unavailable("seed activity "+a.Name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			continue
		}
		next++
		added++
		joinedAt := r.now().UTC()
		for i, email := range a.Participants {
			// distinct timestamps keep the seed roster order stable
			if _, err := tx.ExecContext(ctx, insertParticipant, a.Name, email, joinedAt.Add(time.Duration(i)*time.Microsecond)); err != nil {
				return 0, unavailable("seed participants for "+a.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, unavailable("seed activities", err)
	}
	return added, nil
}

// Get returns the named activity with its roster.
func (r *ActivityRepository) Get(ctx context.Context, name string) (*models.Activity, error) {
	activity, err := r.load(ctx, r.db, name, false)
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// List returns every activity in catalog order from a single snapshot.
func (r *ActivityRepository) List(ctx context.Context) ([]models.Activity, error) {
	var opts *sql.TxOptions
	if r.isPostgres() {
		opts = &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead}
	}
	tx, err := r.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, unavailable("list activities", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var rows []activityRow
	if err := tx.SelectContext(ctx, &rows, `SELECT `+activityColumns+` FROM activities ORDER BY position`); err != nil {
		return nil, unavailable("list activities", err)
	}

	var participants []participantRow
	if err := tx.SelectContext(ctx, &participants, `SELECT activity_name, email FROM activity_participants ORDER BY joined_at, email`); err != nil {
		return nil, unavailable("list participants", err)
	}

	rosters := make(map[string][]string, len(rows))
	for _, p := range participants {
		rosters[p.ActivityName] = append(rosters[p.ActivityName], p.Email)
	}

	activities := make([]models.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, row.toModel(rosters[row.Name]))
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("list activities", err)
	}
	return activities, nil
}

// AddParticipant registers email in one transaction with the activity row locked.
func (r *ActivityRepository) AddParticipant(ctx context.Context, name, email string) (*models.Activity, error) {
	var out *models.Activity
	err := r.locks.WithLock(name, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return unavailable("begin signup", err)
		}
		defer tx.Rollback() //nolint:errcheck

		activity, err := r.load(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if activity.HasParticipant(email) {
			return ErrAlreadyRegistered
		}
		if activity.IsFull() {
			return ErrCapacityExceeded
		}

		query := tx.Rebind(`INSERT INTO activity_participants (activity_name, email, joined_at) VALUES (?, ?, ?)`)
		if _, err := tx.ExecContext(ctx, query, name, email, r.now().UTC()); err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyRegistered
			}
			return unavailable("insert participant", err)
		}
		if err := tx.Commit(); err != nil {
			return unavailable("commit signup", err)
		}

		activity.AddParticipant(email)
		out = activity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveParticipant drops email from the roster in one transaction.
func (r *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) (*models.Activity, error) {
	var out *models.Activity
	err := r.locks.WithLock(name, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return unavailable("begin withdraw", err)
		}
		defer tx.Rollback() //nolint:errcheck

		activity, err := r.load(ctx, tx, name, true)
		if err != nil {
			return err
		}
		if !activity.HasParticipant(email) {
			return ErrNotRegistered
		}

		query := tx.Rebind(`DELETE FROM activity_participants WHERE activity_name = ? AND email = ?`)
		if _, err := tx.ExecContext(ctx, query, name, email); err != nil {
			return unavailable("delete participant", err)
		}
		if err := tx.Commit(); err != nil {
			return unavailable("commit withdraw", err)
		}

		activity.RemoveParticipant(email)
		out = activity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ping checks database connectivity.
func (r *ActivityRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

type queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

func (r *ActivityRepository) load(ctx context.Context, q queryer, name string, forUpdate bool) (*models.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE name = ?`
	if forUpdate && r.isPostgres() {
		query += ` FOR UPDATE`
	}
	var row activityRow
	if err := q.GetContext(ctx, &row, q.Rebind(query), name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActivityNotFound
		}
		return nil, unavailable("load activity", err)
	}

	var emails []string
	if err := q.SelectContext(ctx, &emails, q.Rebind(`SELECT email FROM activity_participants WHERE activity_name = ? ORDER BY joined_at, email`), name); err != nil {
		return nil, unavailable("load participants", err)
	}

	activity := row.toModel(emails)
	return &activity, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
