package schedule

import (
	"fmt"
	"strings"
)

// DateLayout is the calendar date format used by the API and the CSV file.
const DateLayout = "2006-01-02"

// Row is one game in the flattened schedule.
type Row struct {
	Date     string `json:"date"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	TimeUTC  string `json:"time_utc"`
	Arena    string `json:"arena"`
}

// WeekResponse is the body of GET /v1/schedule/{date}.
type WeekResponse struct {
	NextStartDate string    `json:"nextStartDate,omitempty"`
	GameWeek      []GameDay `json:"gameWeek,omitempty"`
}

// GameDay is one entry of gameWeek.
type GameDay struct {
	Date  string `json:"date"`
	Games []Game `json:"games"`
}

// Game holds the subset of game fields the tool uses.
type Game struct {
	ID           int64           `json:"id,omitempty"`
	StartTimeUTC string          `json:"startTimeUTC"`
	Venue        LocalizedString `json:"venue"`
	HomeTeam     TeamRef         `json:"homeTeam"`
	AwayTeam     TeamRef         `json:"awayTeam"`
}

// TeamRef identifies a team inside a game.
type TeamRef struct {
	Abbrev     string          `json:"abbrev,omitempty"`
	PlaceName  LocalizedString `json:"placeName"`
	CommonName LocalizedString `json:"commonName"`
}

// LocalizedString is the API's {"default": "..."} wrapper.
type LocalizedString struct {
	Default string `json:"default"`
}

// DisplayName joins place and common name, e.g. "St. Louis" + "Blues".
func (t TeamRef) DisplayName() string {
	return t.PlaceName.Default + " " + t.CommonName.Default
}

func (t TeamRef) complete() bool {
	return strings.TrimSpace(t.PlaceName.Default) != "" && strings.TrimSpace(t.CommonName.Default) != ""
}

// Rows flattens every game of the week in day order.
func (w *WeekResponse) Rows() ([]Row, error) {
	rows := make([]Row, 0)
	for _, day := range w.GameWeek {
		for i, g := range day.Games {
			row, err := g.row(day.Date)
			if err != nil {
				return nil, fmt.Errorf("day %q game %d: %w", day.Date, i, err)
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (g Game) row(date string) (Row, error) {
	switch {
	case date == "":
		return Row{}, fmt.Errorf("%w: missing day date", ErrMalformedGame)
	case !g.HomeTeam.complete():
		return Row{}, fmt.Errorf("%w: incomplete homeTeam name", ErrMalformedGame)
	case !g.AwayTeam.complete():
		return Row{}, fmt.Errorf("%w: incomplete awayTeam name", ErrMalformedGame)
	case g.StartTimeUTC == "":
		return Row{}, fmt.Errorf("%w: missing startTimeUTC", ErrMalformedGame)
	case g.Venue.Default == "":
		return Row{}, fmt.Errorf("%w: missing venue", ErrMalformedGame)
	}

	return Row{
		Date:     date,
		HomeTeam: g.HomeTeam.DisplayName(),
		AwayTeam: g.AwayTeam.DisplayName(),
		TimeUTC:  g.StartTimeUTC,
		Arena:    g.Venue.Default,
	}, nil
}
