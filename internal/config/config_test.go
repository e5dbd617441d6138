package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tasks/internal/config"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"TASKS_DATA_DIR", "TASKS_STORE", "TASKS_DEFAULT_PROJECT", "TASKS_THEME", "TASKS_LOG_LEVEL", "TASKS_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	return home
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := setupHome(t)

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".tasks"), cfg.DataDir)
	assert.Equal(t, config.StoreJSON, cfg.Store)
	assert.Equal(t, "My Tasks", cfg.DefaultProject)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_DefaultPathIsXDG(t *testing.T) {
	home := setupHome(t)

	path, err := config.DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "tasks", "config.toml"), path)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`store = "sqlite"`), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
}

func TestLoad_File(t *testing.T) {
	home := setupHome(t)
	path := writeConfig(t, `
data-dir = "~/notes/tasks"
store = "SQLite"
default-project = "Inbox"
theme = "neon"
log-level = "debug"
log-format = "json"
log-timestamp = true
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "notes", "tasks"), cfg.DataDir)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, "Inbox", cfg.DefaultProject)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.LogTimestamp)
	assert.Equal(t, filepath.Join(home, "notes", "tasks", "tasks.db"), cfg.SQLitePath())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setupHome(t)
	path := writeConfig(t, `store = "sqlite"`)
	t.Setenv("TASKS_STORE", "memory")
	t.Setenv("TASKS_DATA_DIR", "/tmp/elsewhere")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, "/tmp/elsewhere", cfg.DataDir)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad toml", `store = `, "parse config file"},
		{"unknown key", `colour = "red"`, "unknown keys: colour"},
		{"bad store", `store = "redis"`, "invalid store"},
		{"bad theme", `theme = "pink"`, "invalid theme"},
		{"empty default project", `default-project = "  "`, "default-project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupHome(t)
			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApply_FlagsWinOverEnv(t *testing.T) {
	home := setupHome(t)
	t.Setenv("TASKS_STORE", "sqlite")

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.Equal(t, config.StoreSQLite, cfg.Store)

	require.NoError(t, cfg.Apply(config.Overrides{Store: "MEMORY", DataDir: "~/elsewhere"}))
	assert.Equal(t, config.StoreMemory, cfg.Store)
	assert.Equal(t, filepath.Join(home, "elsewhere"), cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)

	assert.Error(t, cfg.Apply(config.Overrides{Store: "postgres"}))
}
