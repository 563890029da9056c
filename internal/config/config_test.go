package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"STORAGE_MODE", "DATABASE_URL", "HUB_TOKEN", "HUB_REPO_ID", "HUB_BASE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, DefaultHubBase, cfg.HubBaseURL)
}

func TestLoad_SettingsFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "mode = \"local\"\nbatch_size = 25\npage_size = 10\ndata_dir = \"" + dir + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, dir, cfg.DataDir)
}

func TestLoad_MalformedSettingsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("mode = [not toml"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("mode = \"remote\"\n"), 0600))

	t.Setenv("STORAGE_MODE", "LOCAL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, cfg.Mode)
}

func TestLoad_TrimsDatabaseURLQuoting(t *testing.T) {
	clearEnv(t)

	t.Setenv("DATABASE_URL", ` "postgres://u:p@host/db" `)

	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@host/db", cfg.DatabaseURL)
}

func TestValidate_LocalModeNeedsNoCredentials(t *testing.T) {
	cfg := &Config{Mode: ModeLocal}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RemoteModeMissingCredentials(t *testing.T) {
	cfg := &Config{Mode: ModeRemote, DatabaseURL: "postgres://x"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "HUB_TOKEN")
	assert.Contains(t, err.Error(), "HUB_REPO_ID")
	assert.NotContains(t, err.Error(), "DATABASE_URL")
	assert.True(t, IsMissingCredentials(err))
}

func TestValidate_RemoteModeComplete(t *testing.T) {
	cfg := &Config{
		Mode:        ModeRemote,
		DatabaseURL: "postgres://u:p@host/db",
		HubToken:    "hf_test",
		HubRepoID:   "owner/decisions",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownMode(t *testing.T) {
	cfg := &Config{Mode: "hybrid"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
