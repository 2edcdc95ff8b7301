package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nhl-season/internal/schedule"
)

type weeksOptions struct {
	scheduleFile string
	week         string
}

func newWeeksCmd(a *app) *cobra.Command {
	opts := &weeksOptions{}
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Group the schedule into Monday–Sunday weeks with per-team game counts",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		return runWeeks(cmd, a, opts)
	})

	cmd.Flags().StringVar(&opts.scheduleFile, "schedule-file", "", "Schedule CSV (default from NHL_SCHEDULE_FILE)")
	cmd.Flags().StringVar(&opts.week, "week", "", "Only show the week containing this date (YYYY-MM-DD)")

	return cmd
}

func runWeeks(cmd *cobra.Command, a *app, opts *weeksOptions) error {
	path := pick(cmd.Flags().Changed("schedule-file"), opts.scheduleFile, a.cfg.ScheduleFile)
	rows, err := loadSchedule(path)
	if err != nil {
		return err
	}

	weeks := schedule.GroupByWeek(rows)
	if opts.week != "" {
		w, err := schedule.FindWeek(weeks, opts.week)
		if err != nil {
			return err
		}
		weeks = []schedule.Week{w}
	}

	return WriteWeeks(a.stdout, weeks, a.output, a.verbose)
}

// loadSchedule reads a schedule CSV written by the schedule command.
func loadSchedule(path string) ([]schedule.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schedule file %s not found (run 'nhl-season schedule' first)", path)
		}
		return nil, fmt.Errorf("opening schedule file: %w", err)
	}
	defer f.Close()

	rows, err := schedule.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rows, nil
}
