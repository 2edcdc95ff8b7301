package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"NHL_API_BASE_URL", "NHL_ASSETS_BASE_URL", "NHL_SEASON_START", "NHL_SEASON_END",
	"NHL_SCHEDULE_FILE", "NHL_LOGO_DIR", "NHL_PAGE_DELAY", "NHL_PROBE_TIMEOUT",
	"LOG_LEVEL", "NHL_METRICS_FILE",
}

// clearEnv unsets every config variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api-web.nhle.com", cfg.APIBaseURL)
	assert.Equal(t, "https://assets.nhle.com", cfg.AssetsBaseURL)
	assert.Equal(t, "2025-10-07", cfg.SeasonStart)
	assert.Equal(t, "2026-04-16", cfg.SeasonEnd)
	assert.Equal(t, "nhl-schedule-2025-2026.csv", cfg.ScheduleFile)
	assert.Equal(t, "public/team-icons", cfg.LogoDir)
	assert.Equal(t, 500*time.Millisecond, cfg.PageDelay)
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsFile)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NHL_SEASON_START", "2024-10-04")
	t.Setenv("NHL_PAGE_DELAY", "2s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "2024-10-04", cfg.SeasonStart)
	assert.Equal(t, 2*time.Second, cfg.PageDelay)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("NHL_LOGO_DIR", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	content := "NHL_SEASON_END=2026-04-30\nNHL_LOGO_DIR=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-30", cfg.SeasonEnd)
	assert.Equal(t, "from-env", cfg.LogoDir, "process environment wins over .env")
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparsable duration", "NHL_PAGE_DELAY", "soon"},
		{"negative delay", "NHL_PAGE_DELAY", "-1s"},
		{"zero timeout", "NHL_PROBE_TIMEOUT", "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestUsageListsVariables(t *testing.T) {
	usage := Usage()
	assert.Contains(t, usage, "NHL_API_BASE_URL")
	assert.Contains(t, usage, "NHL_PROBE_TIMEOUT")
}
