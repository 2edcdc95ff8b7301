package cli

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nhl-season/internal/logger"
	"github.com/pfrederiksen/nhl-season/internal/schedule"
	"github.com/pfrederiksen/nhl-season/internal/storage"
)

type scheduleOptions struct {
	start   string
	end     string
	output  string
	apiBase string
	delay   time.Duration
}

func newScheduleCmd(a *app) *cobra.Command {
	opts := &scheduleOptions{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Download the season schedule to a CSV file",
		Long: `Walks the weekly schedule endpoint from the season start date, following each
response's nextStartDate until it is missing or past the end date, and writes
every game to a CSV file with the header date,home_team,away_team,time_utc,arena.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		return runSchedule(cmd, a, opts)
	})

	cmd.Flags().StringVar(&opts.start, "start", "", "First date of the window, YYYY-MM-DD (default from NHL_SEASON_START)")
	cmd.Flags().StringVar(&opts.end, "end", "", "Last date of the window, YYYY-MM-DD (default from NHL_SEASON_END)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "CSV output path (default from NHL_SCHEDULE_FILE)")
	cmd.Flags().StringVar(&opts.apiBase, "api-base", "", "Schedule API base URL (default from NHL_API_BASE_URL)")
	cmd.Flags().DurationVar(&opts.delay, "delay", 0, "Pause between page requests (default from NHL_PAGE_DELAY)")

	return cmd
}

func runSchedule(cmd *cobra.Command, a *app, opts *scheduleOptions) error {
	flags := cmd.Flags()
	start := pick(flags.Changed("start"), opts.start, a.cfg.SeasonStart)
	end := pick(flags.Changed("end"), opts.end, a.cfg.SeasonEnd)
	output := pick(flags.Changed("output"), opts.output, a.cfg.ScheduleFile)
	apiBase := pick(flags.Changed("api-base"), opts.apiBase, a.cfg.APIBaseURL)
	delay := a.cfg.PageDelay
	if flags.Changed("delay") {
		delay = opts.delay
	}

	a.log.Info("Downloading NHL season schedule", logger.Fields{"start": start, "end": end})

	fetcher := schedule.NewFetcher(schedule.Config{
		BaseURL: apiBase,
		Delay:   delay,
		Logger:  a.log,
		Metrics: a.metrics,
	})
	rows, err := fetcher.Fetch(cmd.Context(), start, end)
	if err != nil {
		return fmt.Errorf("fetching schedule: %w", err)
	}

	var buf bytes.Buffer
	if err := schedule.WriteCSV(&buf, rows); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}

	dir, name := filepath.Split(output)
	store, err := storage.New(dir)
	if err != nil {
		return err
	}
	path, err := store.WriteFile(name, buf.Bytes())
	if err != nil {
		return fmt.Errorf("saving schedule: %w", err)
	}

	return WriteSchedule(a.stdout, &ScheduleResult{
		Start:  start,
		End:    end,
		Games:  len(rows),
		Teams:  len(schedule.TeamNames(rows)),
		Output: path,
	}, a.output)
}

// pick returns flagValue when the flag was set, otherwise fallback.
func pick(changed bool, flagValue, fallback string) string {
	if changed {
		return flagValue
	}
	return fallback
}
