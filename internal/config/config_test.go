package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup root at fresh temp dirs and clears the env.
func isolate(t *testing.T) (userDir, workDir string) {
	t.Helper()
	userDir = t.TempDir()
	workDir = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", userDir)
	for _, k := range []string{"TASK_CLI_FILE", "TASK_CLI_THEME", "TASK_CLI_LOG_LEVEL", "TASK_CLI_ID_STRATEGY"} {
		t.Setenv(k, "")
	}
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")
	return userDir, workDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	_, work := isolate(t)

	cfg, err := Load(Options{WorkDir: work})

	require.NoError(t, err)
	assert.Equal(t, "tasks.json", cfg.File)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "length", cfg.IDStrategy)
	assert.Equal(t, "auto", cfg.Color)
	assert.True(t, cfg.Validate)
	assert.Empty(t, cfg.Sources)
}

func TestLoadPrecedence(t *testing.T) {
	user, work := isolate(t)
	userFile := filepath.Join(user, "task-cli", "config.toml")
	projectFile := filepath.Join(work, ".task-cli.toml")
	writeFile(t, userFile, "file = \"user.json\"\ntheme = \"neon\"\nlog_level = \"info\"\n")
	writeFile(t, projectFile, "file = \"project.json\"\nvalidate = false\n")

	t.Run("files", func(t *testing.T) {
		cfg, err := Load(Options{WorkDir: work})
		require.NoError(t, err)
		assert.Equal(t, "project.json", cfg.File)
		assert.Equal(t, "neon", cfg.Theme)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.False(t, cfg.Validate)
		assert.Equal(t, []string{userFile, projectFile}, cfg.Sources)
	})

	t.Run("env over files", func(t *testing.T) {
		t.Setenv("TASK_CLI_FILE", "env.json")
		t.Setenv("TASK_CLI_ID_STRATEGY", "max")
		t.Setenv("NO_COLOR", "1")
		cfg, err := Load(Options{WorkDir: work})
		require.NoError(t, err)
		assert.Equal(t, "env.json", cfg.File)
		assert.Equal(t, "max", cfg.IDStrategy)
		assert.Equal(t, "never", cfg.Color)
	})

	t.Run("flags over env", func(t *testing.T) {
		t.Setenv("TASK_CLI_FILE", "env.json")
		cfg, err := Load(Options{WorkDir: work, File: "flag.json", Theme: "mono", LogLevel: "debug", NoColor: true})
		require.NoError(t, err)
		assert.Equal(t, "flag.json", cfg.File)
		assert.Equal(t, "mono", cfg.Theme)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "never", cfg.Color)
	})
}

func TestLoadExplicitConfigReplacesLookup(t *testing.T) {
	user, work := isolate(t)
	writeFile(t, filepath.Join(user, "task-cli", "config.toml"), "theme = \"neon\"\n")
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, "file = \"custom.json\"\n")

	cfg, err := Load(Options{WorkDir: work, ConfigPath: explicit})

	require.NoError(t, err)
	assert.Equal(t, "custom.json", cfg.File)
	assert.Equal(t, "classic", cfg.Theme)
	assert.Equal(t, []string{explicit}, cfg.Sources)
}

func TestLoadErrors(t *testing.T) {
	_, work := isolate(t)

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(Options{WorkDir: work, ConfigPath: filepath.Join(work, "nope.toml")})
		assert.Error(t, err)
	})

	t.Run("bad toml", func(t *testing.T) {
		writeFile(t, filepath.Join(work, ".task-cli.toml"), "file = \n")
		defer os.Remove(filepath.Join(work, ".task-cli.toml"))
		_, err := Load(Options{WorkDir: work})
		assert.ErrorContains(t, err, ".task-cli.toml")
	})

	t.Run("unknown values", func(t *testing.T) {
		_, err := Load(Options{WorkDir: work, Theme: "rainbow", LogLevel: "loud"})
		require.Error(t, err)
		assert.ErrorContains(t, err, `theme "rainbow"`)
		assert.ErrorContains(t, err, `log_level "loud"`)
	})

	t.Run("unknown id strategy", func(t *testing.T) {
		t.Setenv("TASK_CLI_ID_STRATEGY", "uuid")
		_, err := Load(Options{WorkDir: work})
		assert.ErrorContains(t, err, `id_strategy "uuid"`)
	})
}

func TestCheck(t *testing.T) {
	require.NoError(t, Defaults().Check())

	cfg := Defaults()
	cfg.IDStrategy = "random"
	err := cfg.Check()
	require.Error(t, err)
	assert.ErrorContains(t, err, `id_strategy "random"`)

	cfg = Defaults()
	cfg.Color = "sometimes"
	cfg.File = "  "
	err = cfg.Check()
	assert.ErrorContains(t, err, `color "sometimes"`)
	assert.ErrorContains(t, err, "file: must not be empty")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("TASK_DIR", "/data")

	assert.Equal(t, filepath.Join(home, "tasks.json"), expandPath("~/tasks.json"))
	assert.Equal(t, "/data/tasks.json", expandPath("$TASK_DIR/tasks.json"))
	assert.Equal(t, "tasks.json", expandPath("tasks.json"))
	assert.Equal(t, "", expandPath(""))
}
