package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/nhl-season/internal/schedule"
)

var fixedNow = time.Date(2025, 10, 20, 9, 0, 0, 0, time.UTC)

const sampleCSV = "date,home_team,away_team,time_utc,arena\n" +
	"2025-10-07,Boston Bruins,Montréal Canadiens,2025-10-07T23:00:00Z,TD Garden\n" +
	"2025-10-09,St. Louis Blues,Boston Bruins,2025-10-10T00:00:00Z,Enterprise Center\n" +
	"2025-10-14,Montréal Canadiens,St. Louis Blues,2025-10-14T23:00:00Z,Bell Centre\n"

// execute runs the root command with a .env path that does not exist so the
// working directory never leaks configuration into the test.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return executeContext(t, context.Background(), args...)
}

func executeContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	a := &app{stdout: &stdout, stderr: &stderr, now: func() time.Time { return fixedNow }}
	cmd := newRootCmd(a)
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func writeSchedule(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestScheduleCommand(t *testing.T) {
	page := schedule.WeekResponse{
		GameWeek: []schedule.GameDay{{
			Date: "2025-10-07",
			Games: []schedule.Game{{
				StartTimeUTC: "2025-10-07T23:00:00Z",
				Venue:        schedule.LocalizedString{Default: "TD Garden"},
				HomeTeam: schedule.TeamRef{
					PlaceName:  schedule.LocalizedString{Default: "Boston"},
					CommonName: schedule.LocalizedString{Default: "Bruins"},
				},
				AwayTeam: schedule.TeamRef{
					PlaceName:  schedule.LocalizedString{Default: "Montréal"},
					CommonName: schedule.LocalizedString{Default: "Canadiens"},
				},
			}},
		}},
	}
	var requested []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = append(requested, r.URL.Path)
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "data", "season.csv")
	metricsFile := filepath.Join(t.TempDir(), "nhl.prom")

	stdout, stderr, err := execute(t, "schedule",
		"--start", "2025-10-07", "--end", "2025-10-13",
		"--api-base", srv.URL, "--delay", "0", "-o", out,
		"--metrics-file", metricsFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"/v1/schedule/2025-10-07"}, requested)
	assert.Contains(t, stdout, "Download complete! 1 games saved to")
	assert.Contains(t, stderr, `"message":"Downloading NHL season schedule"`)
	assert.NotContains(t, stdout, `"level"`)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "date,home_team,away_team,time_utc,arena\n"+
		"2025-10-07,Boston Bruins,Montréal Canadiens,2025-10-07T23:00:00Z,TD Garden\n", string(data))

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "nhl_season_games_total 1")
}

func TestScheduleCommand_ServerErrorFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "season.csv")
	_, _, err := execute(t, "schedule", "--api-base", srv.URL, "--delay", "0", "-o", out)
	require.Error(t, err)
	assert.ErrorIs(t, err, schedule.ErrUnexpectedStatus)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no CSV should be written on failure")
}

func TestLogosCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/logos/nhl/svg/BOS_light.svg":
			w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"></svg>`))
		case "/logos/nhl/MTL.png":
			w.Write([]byte("\x89PNG"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "icons")
	stdout, _, err := execute(t, "logos",
		"--schedule-file", writeSchedule(t),
		"--assets-base", srv.URL, "-o", dir, "--manifest")
	require.NoError(t, err, "failed teams must not fail the command")

	assert.FileExists(t, filepath.Join(dir, "Boston_Bruins.svg"))
	assert.FileExists(t, filepath.Join(dir, "Montreal_Canadiens.png"))
	assert.FileExists(t, filepath.Join(dir, "manifest.json"))
	assert.NoFileExists(t, filepath.Join(dir, "St._Louis_Blues.svg"))

	assert.Contains(t, stdout, "Successfully downloaded: 2/3 logos")
	assert.Contains(t, stdout, "Failed teams:\n  - St. Louis Blues")
	assert.Contains(t, stdout, "Logos saved to: ")
}

func TestLogosCommand_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	dir := t.TempDir()
	stdout, _, err := execute(t, "--format", "json", "logos",
		"--schedule-file", writeSchedule(t),
		"--assets-base", srv.URL, "-o", dir)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "manifest.json"), "manifest is opt-in")

	var result LogosResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, "schedule", result.Source)
	assert.Equal(t, 3, result.Total)
	assert.Empty(t, result.Saved)
	assert.Equal(t, []string{"Boston Bruins", "Montréal Canadiens", "St. Louis Blues"}, result.Failed)
	assert.Empty(t, result.Manifest)
}

func TestLogosCommand_InterruptedFailsWithoutManifest(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<svg viewBox="0 0 1 1"></svg>`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := filepath.Join(t.TempDir(), "icons")
	stdout, _, err := executeContext(t, ctx, "logos",
		"--schedule-file", writeSchedule(t),
		"--assets-base", srv.URL, "-o", dir, "--manifest")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "interrupted after 0 of 3 teams")

	assert.Zero(t, hits)
	assert.NotContains(t, stdout, "Failed teams:")
	assert.NoFileExists(t, filepath.Join(dir, "manifest.json"))
}

func TestWeeksCommand(t *testing.T) {
	stdout, _, err := execute(t, "weeks", "--schedule-file", writeSchedule(t))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Week of 2025-10-06 to 2025-10-12")
	assert.Contains(t, stdout, "Week of 2025-10-13 to 2025-10-19")
	assert.Contains(t, stdout, "Total: 2 weeks")
	assert.Contains(t, stdout, "Tue vs MTL, Thu @ STL")
	assert.Less(t, strings.Index(stdout, "Boston Bruins"), strings.Index(stdout, "Montréal Canadiens"),
		"Boston plays twice in the first week and comes first")
}

func TestWeeksCommand_SingleWeekJSON(t *testing.T) {
	stdout, _, err := execute(t, "--format", "json", "weeks",
		"--schedule-file", writeSchedule(t), "--week", "2025-10-16")
	require.NoError(t, err)

	var weeks []schedule.Week
	require.NoError(t, json.Unmarshal([]byte(stdout), &weeks))
	require.Len(t, weeks, 1)
	assert.Equal(t, "2025-10-13", weeks[0].WeekStart)
	require.Len(t, weeks[0].Teams, 2)
	require.Len(t, weeks[0].Teams[0].Days, 1)
	assert.Equal(t, 1, weeks[0].Teams[0].Days[0].Weekday)
}

func TestWeeksCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "weeks", "--schedule-file", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, _, err = execute(t, "weeks", "--schedule-file", writeSchedule(t), "--week", "2026-01-05")
	assert.ErrorIs(t, err, schedule.ErrWeekNotFound)
}

func TestCalendarCommand(t *testing.T) {
	csvPath := writeSchedule(t)

	stdout, _, err := execute(t, "calendar", "--schedule-file", csvPath, "--team", "Boston Bruins")
	require.NoError(t, err)

	icsPath := filepath.Join(filepath.Dir(csvPath), "Boston_Bruins.ics")
	data, err := os.ReadFile(icsPath)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "BEGIN:VEVENT"))
	assert.Contains(t, string(data), "SUMMARY:Montréal Canadiens @ Boston Bruins")
	assert.Contains(t, stdout, "Calendar exported! 2 events for Boston Bruins")
}

func TestCalendarCommand_AllTeamsDefaultPath(t *testing.T) {
	csvPath := writeSchedule(t)

	_, _, err := execute(t, "calendar", "--schedule-file", csvPath)
	require.NoError(t, err)

	data, err := os.ReadFile(strings.TrimSuffix(csvPath, ".csv") + ".ics")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "BEGIN:VEVENT"))
}

func TestCalendarCommand_UnknownTeam(t *testing.T) {
	_, _, err := execute(t, "calendar", "--schedule-file", writeSchedule(t), "--team", "Quebec Nordiques")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `team "Quebec Nordiques" not found`)
}

func TestRootFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad format", []string{"--format", "xml", "weeks"}, "invalid format"},
		{"bad log level", []string{"--log-level", "loud", "weeks"}, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEnvCommand(t *testing.T) {
	stdout, _, err := execute(t, "env")
	require.NoError(t, err)
	for _, name := range []string{"NHL_API_BASE_URL", "NHL_SEASON_START", "NHL_LOGO_DIR", "LOG_LEVEL"} {
		assert.Contains(t, stdout, name)
	}
}

func TestDefaultCalendarPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "Montreal_Canadiens.ics"),
		defaultCalendarPath(filepath.Join("data", "season.csv"), "Montréal Canadiens"))
	assert.Equal(t, filepath.Join("data", "season.ics"),
		defaultCalendarPath(filepath.Join("data", "season.csv"), ""))
}
