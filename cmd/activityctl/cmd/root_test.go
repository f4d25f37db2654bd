package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mergington-activities-api/pkg/config"
	"github.com/noah-isme/mergington-activities-api/pkg/password"
)

func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	previous := loadConfig
	loadConfig = func() (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = previous })
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func testConfig(driver string, seed bool) *config.Config {
	return &config.Config{
		Env:   config.EnvDevelopment,
		Store: config.StoreConfig{Driver: driver, SeedOnStart: seed},
		Log:   config.LogConfig{Level: "error"},
	}
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "", "hash-password", "chess456")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.True(t, password.NewArgon2(password.DefaultParams).Verify("chess456", hash))

	out, err = run(t, "art123\n", "hash-password")
	require.NoError(t, err)
	assert.True(t, password.NewArgon2(password.DefaultParams).Verify("art123", strings.TrimSpace(out)))

	_, err = run(t, "", "hash-password")
	assert.Error(t, err)
}

func TestSeedSQLiteIsIdempotent(t *testing.T) {
	cfg := testConfig(config.StoreSQLite, false)
	cfg.SQLite.Path = filepath.Join(t.TempDir(), "activities.db")
	useConfig(t, cfg)

	out, err := run(t, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 13 activities and 3 teachers into sqlite store")

	out, err = run(t, "", "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 0 activities and 0 teachers")
}

func TestRosterCSV(t *testing.T) {
	useConfig(t, testConfig(config.StoreMemory, true))

	out, err := run(t, "", "roster", "Chess Club")
	require.NoError(t, err)
	assert.Equal(t, "#,Email\n1,michael@mergington.edu\n2,daniel@mergington.edu\n", out)
}

func TestRosterErrors(t *testing.T) {
	useConfig(t, testConfig(config.StoreMemory, true))

	_, err := run(t, "", "roster", "Chess Club", "--format", "xlsx")
	assert.Error(t, err)

	_, err = run(t, "", "roster", "Underwater Basket Weaving")
	assert.Error(t, err)
}
