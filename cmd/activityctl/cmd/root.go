package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/bootstrap"
	"github.com/noah-isme/mergington-activities-api/pkg/config"
	"github.com/noah-isme/mergington-activities-api/pkg/logger"
	"github.com/noah-isme/mergington-activities-api/pkg/password"
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

// NewRootCmd builds the activityctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "activityctl",
		Short: "Administer the Mergington High activities store",
		Long: `activityctl runs maintenance tasks against the store selected by
STORE_DRIVER, using the same .env and environment settings as the API server.`,
		SilenceUsage: true,
	}
	root.AddCommand(newSeedCmd(), newHashPasswordCmd(), newRosterCmd())
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// session is an opened store plus the settings it came from.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	stores *bootstrap.Stores
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	stores, err := bootstrap.OpenStores(ctx, cfg, logr)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logr, stores: stores}, nil
}

func (s *session) seed(ctx context.Context) (bootstrap.SeedResult, error) {
	return bootstrap.Seed(ctx, s.stores, password.NewArgon2(password.DefaultParams))
}

func (s *session) close() {
	if err := s.stores.Close(); err != nil {
		s.logger.Warn("close stores", zap.Error(err))
	}
	_ = s.logger.Sync()
}
