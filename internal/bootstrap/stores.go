// Package bootstrap opens the configured backends and seeds them. It is shared by the
// HTTP server and the admin CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/repository"
	"github.com/noah-isme/mergington-activities-api/internal/seed"
	"github.com/noah-isme/mergington-activities-api/internal/service"
	"github.com/noah-isme/mergington-activities-api/pkg/config"
	"github.com/noah-isme/mergington-activities-api/pkg/database"
)

// ActivityStore is a service.ActivityStore that can also be seeded.
type ActivityStore interface {
	service.ActivityStore
	Seed(ctx context.Context, activities []models.Activity) (int, error)
}

// TeacherStore looks up and seeds teacher accounts.
type TeacherStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Teacher, error)
	Seed(ctx context.Context, teachers []models.Teacher) (int, error)
}

// Hasher produces password hashes for seeded accounts.
type Hasher interface {
	Hash(password string) (string, error)
}

// Stores holds the opened backends for one STORE_DRIVER.
type Stores struct {
	Driver     string
	Activities ActivityStore
	Teachers   TeacherStore
	// Audit is nil for drivers without an audit table.
	Audit service.AuditSink

	closers []func() error
}

// Close releases every opened connection.
func (s *Stores) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStores connects to the backend selected by cfg.Store.Driver and applies the SQL schema when needed.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	stores := &Stores{Driver: cfg.Store.Driver}

	switch cfg.Store.Driver {
	case config.StoreMemory, "":
		stores.Driver = config.StoreMemory
		stores.Activities = repository.NewMemoryActivityStore()
		stores.Teachers = repository.NewMemoryTeacherStore()
	case config.StorePostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := openSQL(ctx, stores, db); err != nil {
			return nil, err
		}
	case config.StoreSQLite:
		db, err := database.NewSQLite(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := openSQL(ctx, stores, db); err != nil {
			return nil, err
		}
	case config.StoreMongo:
		client, db, err := database.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		openMongo(stores, client, db)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	logger.Info("activity store ready", zap.String("driver", stores.Driver))
	return stores, nil
}

func openSQL(ctx context.Context, stores *Stores, db *sqlx.DB) error {
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	stores.Activities = repository.NewActivityRepository(db)
	stores.Teachers = repository.NewTeacherRepository(db)
	stores.Audit = repository.NewAuditRepository(db)
	stores.closers = append(stores.closers, db.Close)
	return nil
}

func openMongo(stores *Stores, client *mongo.Client, db *mongo.Database) {
	stores.Activities = repository.NewMongoActivityStore(db)
	stores.Teachers = repository.NewMongoTeacherStore(db)
	stores.closers = append(stores.closers, func() error {
		return client.Disconnect(context.Background())
	})
}

// SeedResult counts the records inserted by Seed.
type SeedResult struct {
	Activities int
	Teachers   int
}

// Seed loads the initial catalog and staff accounts. Records that already exist are kept as they are.
func Seed(ctx context.Context, stores *Stores, hasher Hasher) (SeedResult, error) {
	var result SeedResult
	n, err := stores.Activities.Seed(ctx, seed.Activities())
	if err != nil {
		return result, fmt.Errorf("seed activities: %w", err)
	}
	result.Activities = n

	teachers, err := seed.Teachers(hasher)
	if err != nil {
		return result, err
	}
	n, err = stores.Teachers.Seed(ctx, teachers)
	if err != nil {
		return result, fmt.Errorf("seed teachers: %w", err)
	}
	result.Teachers = n
	return result, nil
}
