// Package cli implements the command-line interface for nhl-season.
//
// The cli package provides the Cobra-based CLI with one subcommand per
// pipeline: downloading the season schedule, downloading team logos, grouping
// the schedule into weeks and exporting it as an iCalendar file. It loads
// configuration, sets up logging and metrics, and formats results as text or
// JSON.
package cli
