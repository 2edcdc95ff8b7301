package logo

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/nhl-season/internal/schedule"
	"github.com/pfrederiksen/nhl-season/internal/storage"
	"github.com/pfrederiksen/nhl-season/internal/team"
)

// TeamSource says where EnumerateTeams found its names.
type TeamSource string

const (
	SourceSchedule TeamSource = "schedule"
	SourceTable    TeamSource = "table"
)

// EnumerateTeams returns the sorted unique teams of the schedule CSV at
// path. When the file does not exist it falls back to the static code table
// in its fixed order.
func EnumerateTeams(path string) ([]string, TeamSource, error) {
	exists, err := storage.Exists(path)
	if err != nil {
		return nil, "", fmt.Errorf("checking schedule file: %w", err)
	}
	if !exists {
		return team.Names(), SourceTable, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening schedule file: %w", err)
	}
	defer f.Close()

	rows, err := schedule.ReadCSV(f)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return schedule.TeamNames(rows), SourceSchedule, nil
}
