package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nhl-season/internal/logger"
	"github.com/pfrederiksen/nhl-season/internal/logo"
	"github.com/pfrederiksen/nhl-season/internal/storage"
)

type logosOptions struct {
	scheduleFile string
	outputDir    string
	assetsBase   string
	timeout      time.Duration
	manifest     bool
}

func newLogosCmd(a *app) *cobra.Command {
	opts := &logosOptions{}
	cmd := &cobra.Command{
		Use:   "logos",
		Short: "Download team logos for every team in the schedule",
		Long: `Reads the unique teams from the schedule CSV (or the built-in list of 33 teams
when the file is missing), and for each one tries the vector logo variants
before the raster ones, saving the first that downloads. Failed teams are
listed at the end; they do not stop the run.`,
		Args: cobra.NoArgs,
	}
	cmd.RunE = a.run(func(cmd *cobra.Command, args []string) error {
		return runLogos(cmd, a, opts)
	})

	cmd.Flags().StringVar(&opts.scheduleFile, "schedule-file", "", "Schedule CSV to read teams from (default from NHL_SCHEDULE_FILE)")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "Directory for logo files (default from NHL_LOGO_DIR)")
	cmd.Flags().StringVar(&opts.assetsBase, "assets-base", "", "Logo assets base URL (default from NHL_ASSETS_BASE_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Timeout per candidate URL (default from NHL_PROBE_TIMEOUT)")
	cmd.Flags().BoolVar(&opts.manifest, "manifest", false, "Also write manifest.json describing the saved logos")

	return cmd
}

func runLogos(cmd *cobra.Command, a *app, opts *logosOptions) error {
	flags := cmd.Flags()
	scheduleFile := pick(flags.Changed("schedule-file"), opts.scheduleFile, a.cfg.ScheduleFile)
	outputDir := pick(flags.Changed("output-dir"), opts.outputDir, a.cfg.LogoDir)
	assetsBase := pick(flags.Changed("assets-base"), opts.assetsBase, a.cfg.AssetsBaseURL)
	timeout := a.cfg.ProbeTimeout
	if flags.Changed("timeout") {
		timeout = opts.timeout
	}

	store, err := storage.New(outputDir)
	if err != nil {
		return err
	}
	absDir, err := filepath.Abs(store.Dir())
	if err != nil {
		absDir = store.Dir()
	}

	teams, source, err := logo.EnumerateTeams(scheduleFile)
	if err != nil {
		return err
	}
	if source == logo.SourceSchedule {
		a.log.Info("Found teams in schedule file", logger.Fields{"count": len(teams), "path": scheduleFile})
	} else {
		a.log.Info("Schedule file not found, using known teams", logger.Fields{"count": len(teams), "path": scheduleFile})
	}

	prober := logo.NewProber(logo.ProberConfig{
		BaseURL: assetsBase,
		Timeout: timeout,
		Logger:  a.log,
		Metrics: a.metrics,
	})
	downloader := logo.NewDownloader(prober, store, a.log, a.metrics)
	summary := downloader.DownloadAll(cmd.Context(), teams)
	if summary.Interrupted != nil {
		return fmt.Errorf("logo download interrupted after %d of %d teams: %w",
			len(summary.Saved)+len(summary.Failed), summary.Total, summary.Interrupted)
	}

	result := &LogosResult{
		Source:    string(source),
		OutputDir: absDir,
		Total:     summary.Total,
		Saved:     summary.Saved,
		Failed:    summary.Failed,
	}
	if opts.manifest {
		path, err := logo.WriteManifest(store, summary, a.now())
		if err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}
		result.Manifest = path
	}
	if summary.Err != nil {
		a.log.Warn("Some logos could not be downloaded", logger.Fields{"failed": len(summary.Failed), "errors": summary.Err.Error()})
	}

	return WriteLogos(a.stdout, result, a.output, a.verbose)
}
