package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/nhl-season/internal/config"
	"github.com/pfrederiksen/nhl-season/internal/logger"
	"github.com/pfrederiksen/nhl-season/internal/metrics"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version is reported by --version.
var Version = "dev"

// app carries state shared by every subcommand for one invocation.
type app struct {
	envFile     string
	logLevel    string
	format      string
	metricsFile string
	verbose     bool

	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Recorder
	output  OutputFormat

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{stdout: os.Stdout, stderr: os.Stderr, now: time.Now})
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nhl-season",
		Short: "Download the NHL season schedule and team logos",
		Long: `A CLI tool that downloads the NHL regular-season schedule from the public
NHL web API into a CSV file, fetches team logos referenced by that file, and
derives weekly reports and calendar exports from it.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "Optional .env file with NHL_* settings")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from LOG_LEVEL)")
	flags.StringVar(&a.format, "format", "text", "Output format: text or json")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file after the run")
	flags.BoolVar(&a.verbose, "verbose", false, "Enable debug logging (same as --log-level debug)")

	cmd.AddCommand(
		newScheduleCmd(a),
		newLogosCmd(a),
		newWeeksCmd(a),
		newCalendarCmd(a),
		newEnvCmd(a),
	)
	return cmd
}

// setup loads configuration and builds the logger and metrics recorder.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	format := OutputFormat(strings.ToLower(a.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", a.format)
	}
	a.output = format

	rawLevel := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		rawLevel = a.logLevel
	}
	level, err := logger.ParseLevel(rawLevel)
	if err != nil {
		return err
	}
	if a.verbose {
		level = logger.LevelDebug
	}
	a.log = logger.New(level, a.stderr)
	logger.SetDefault(a.log)

	if !cmd.Flags().Changed("metrics-file") {
		a.metricsFile = cfg.MetricsFile
	}
	a.metrics = metrics.NewRecorder()
	return nil
}

// run wraps a subcommand so metrics are flushed whether or not it fails.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if flushErr := a.metrics.WriteTextfile(a.metricsFile); flushErr != nil {
			a.log.Error("Writing metrics file failed", logger.Fields{"path": a.metricsFile}, flushErr)
			if err == nil {
				err = fmt.Errorf("writing metrics file: %w", flushErr)
			}
		}
		return err
	}
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
