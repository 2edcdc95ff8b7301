package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfrederiksen/nhl-season/internal/logo"
	"github.com/pfrederiksen/nhl-season/internal/schedule"
	"github.com/pfrederiksen/nhl-season/internal/team"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// ScheduleResult is the outcome of the schedule command.
type ScheduleResult struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Games  int    `json:"games"`
	Teams  int    `json:"teams"`
	Output string `json:"output"`
}

// LogosResult is the outcome of the logos command.
type LogosResult struct {
	Source    string      `json:"source"`
	OutputDir string      `json:"output_dir"`
	Total     int         `json:"total"`
	Saved     []logo.File `json:"saved"`
	Failed    []string    `json:"failed"`
	Manifest  string      `json:"manifest,omitempty"`
}

// CalendarResult is the outcome of the calendar command.
type CalendarResult struct {
	Team   string `json:"team,omitempty"`
	Events int    `json:"events"`
	Output string `json:"output"`
}

// styles renders headings for w. Colors are dropped when w is not a terminal.
type styles struct {
	title lipgloss.Style
	ok    lipgloss.Style
	bad   lipgloss.Style
	faint lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title: r.NewStyle().Bold(true),
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("1")),
		faint: r.NewStyle().Faint(true),
	}
}

// WriteSchedule writes the schedule summary in the specified format
func WriteSchedule(w io.Writer, result *ScheduleResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		s := newStyles(w)
		fmt.Fprintf(w, "%s %d games saved to %s\n", s.ok.Render("Download complete!"), result.Games, result.Output)
		fmt.Fprintln(w, s.faint.Render(fmt.Sprintf("%s to %s, %d teams", result.Start, result.End, result.Teams)))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteLogos writes the logo download summary in the specified format
func WriteLogos(w io.Writer, result *LogosResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeLogosText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeLogosText(w io.Writer, result *LogosResult, verbose bool) error {
	s := newStyles(w)
	rule := strings.Repeat("=", 50)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, s.title.Render("Download complete!"))
	fmt.Fprintf(w, "Successfully downloaded: %s\n",
		s.ok.Render(fmt.Sprintf("%d/%d logos", len(result.Saved), result.Total)))

	if verbose {
		for _, f := range result.Saved {
			line := fmt.Sprintf("  %s -> %s (%s, %d bytes)", f.Team, f.Name, f.Format, f.Bytes)
			if f.ViewBox != "" {
				line += " viewBox " + f.ViewBox
			}
			fmt.Fprintln(w, line)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Fprintf(w, "\n%s\n", s.bad.Render("Failed teams:"))
		for _, name := range result.Failed {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	fmt.Fprintf(w, "\nLogos saved to: %s\n", result.OutputDir)
	if result.Manifest != "" {
		fmt.Fprintln(w, s.faint.Render("Manifest: "+result.Manifest))
	}
	return nil
}

// WriteWeeks writes grouped weeks in the specified format
func WriteWeeks(w io.Writer, weeks []schedule.Week, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		if weeks == nil {
			weeks = []schedule.Week{}
		}
		return writeJSON(w, weeks)
	case FormatText:
		return writeWeeksText(w, weeks, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeWeeksText(w io.Writer, weeks []schedule.Week, verbose bool) error {
	if len(weeks) == 0 {
		fmt.Fprintln(w, "No games found.")
		return nil
	}

	s := newStyles(w)
	for i, week := range weeks {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, s.title.Render(fmt.Sprintf("Week of %s to %s", week.WeekStart, week.WeekEnd)))
		for _, tw := range week.Teams {
			fmt.Fprintf(w, "  %-28s %d  %s\n", tw.Team, tw.GameCount, daySummary(tw.Days))
			if verbose {
				for _, day := range tw.Days {
					for _, m := range day.Games {
						fmt.Fprintln(w, s.faint.Render(fmt.Sprintf("      %s %s  %s  %s", day.WeekdayName(), day.Date, versus(m), m.TimeUTC)))
					}
				}
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d weeks\n", len(weeks))
	return nil
}

// daySummary renders a team's week as e.g. "Thu vs TOR, Sat @ MTL".
func daySummary(days []schedule.TeamDay) string {
	parts := make([]string, 0, len(days))
	for _, day := range days {
		for _, m := range day.Games {
			prefix := "@"
			if m.Home {
				prefix = "vs"
			}
			parts = append(parts, fmt.Sprintf("%s %s %s", day.WeekdayName(), prefix, team.ResolveCode(m.Opponent)))
		}
	}
	return strings.Join(parts, ", ")
}

func versus(m schedule.Matchup) string {
	if m.Home {
		return "vs " + m.Opponent
	}
	return "@ " + m.Opponent
}

// WriteCalendar writes the calendar export summary in the specified format
func WriteCalendar(w io.Writer, result *CalendarResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		s := newStyles(w)
		label := "all teams"
		if result.Team != "" {
			label = result.Team
		}
		fmt.Fprintf(w, "%s %d events for %s saved to %s\n",
			s.ok.Render("Calendar exported!"), result.Events, label, result.Output)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
