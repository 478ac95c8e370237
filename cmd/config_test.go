package cmd_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ordering/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := cmd.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.LockTimeout)
	assert.Equal(t, 72*time.Hour, cfg.DelayedShipmentThreshold)
	assert.Equal(t, "0 0 * * * *", cfg.DelayedShipmentSchedule)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=fromfile\nLOCK_TIMEOUT=750ms\n"), 0o600))
	t.Setenv("DB_NAME", "fromenv")
	t.Setenv("LOCK_TIMEOUT", "")
	require.NoError(t, os.Unsetenv("LOCK_TIMEOUT"))

	cfg, err := cmd.LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "fromenv", cfg.DBName)
	assert.Equal(t, 750*time.Millisecond, cfg.LockTimeout)
	assert.Contains(t, cfg.DSN(), "dbname=fromenv")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("DELAYED_SHIPMENT_THRESHOLD", "three days")

	_, err := cmd.LoadConfig("")

	require.Error(t, err)
}
