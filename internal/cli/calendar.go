package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nhl-season/internal/calendar"
	"github.com/pfrederiksen/nhl-season/internal/schedule"
	"github.com/pfrederiksen/nhl-season/internal/storage"
	"github.com/pfrederiksen/nhl-season/internal/team"
)

type calendarOptions struct {
	scheduleFile string
	team         string
	output       string
	duration     time.Duration
}

func newCalendarCmd(a *app) *cobra.Command {
	opts := &calendarOptions{}
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Export the schedule as an iCalendar (.ics) file",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		return runCalendar(cmd, a, opts)
	})

	cmd.Flags().StringVar(&opts.scheduleFile, "schedule-file", "", "Schedule CSV (default from NHL_SCHEDULE_FILE)")
	cmd.Flags().StringVar(&opts.team, "team", "", "Only export games of this team, e.g. \"Boston Bruins\"")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output .ics path (default derived from the schedule file or team)")
	cmd.Flags().DurationVar(&opts.duration, "duration", calendar.DefaultDuration, "Assumed length of each game")

	return cmd
}

func runCalendar(cmd *cobra.Command, a *app, opts *calendarOptions) error {
	path := pick(cmd.Flags().Changed("schedule-file"), opts.scheduleFile, a.cfg.ScheduleFile)
	rows, err := loadSchedule(path)
	if err != nil {
		return err
	}

	name := "NHL Schedule"
	if opts.team != "" {
		if !containsTeam(schedule.TeamNames(rows), opts.team) {
			return fmt.Errorf("team %q not found in %s", opts.team, path)
		}
		name = opts.team
	}

	output := opts.output
	if output == "" {
		output = defaultCalendarPath(path, opts.team)
	}

	var buf bytes.Buffer
	count, err := calendar.Generate(rows, &buf, calendar.Options{
		Team:     opts.team,
		Duration: opts.duration,
		Name:     name,
		Now:      a.now,
	})
	if err != nil {
		return err
	}

	dir, file := filepath.Split(output)
	store, err := storage.New(dir)
	if err != nil {
		return err
	}
	saved, err := store.WriteFile(file, buf.Bytes())
	if err != nil {
		return fmt.Errorf("saving calendar: %w", err)
	}

	return WriteCalendar(a.stdout, &CalendarResult{Team: opts.team, Events: count, Output: saved}, a.output)
}

func containsTeam(teams []string, name string) bool {
	for _, t := range teams {
		if t == name {
			return true
		}
	}
	return false
}

func defaultCalendarPath(schedulePath, teamName string) string {
	if teamName != "" {
		return filepath.Join(filepath.Dir(schedulePath), team.SanitizeName(teamName)+".ics")
	}
	return strings.TrimSuffix(schedulePath, filepath.Ext(schedulePath)) + ".ics"
}
