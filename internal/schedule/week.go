package schedule

import (
	"fmt"
	"sort"
	"time"
)

// Week groups the games of one Monday–Sunday span.
type Week struct {
	WeekStart string     `json:"weekStart"`
	WeekEnd   string     `json:"weekEnd"`
	Teams     []TeamWeek `json:"teams"`
}

// TeamWeek lists every game a team plays in a week.
type TeamWeek struct {
	Team      string    `json:"team"`
	GameCount int       `json:"gameCount"`
	Games     []Row     `json:"games"`
	Days      []TeamDay `json:"days"`
}

// TeamDay holds a team's games on one day of the week, seen from its side.
type TeamDay struct {
	// Weekday is 0 for Monday through 6 for Sunday.
	Weekday int       `json:"weekday"`
	Date    string    `json:"date"`
	Games   []Matchup `json:"games"`
}

// Matchup is one game from a single team's point of view.
type Matchup struct {
	Opponent string `json:"opponent"`
	Home     bool   `json:"home"`
	TimeUTC  string `json:"timeUtc"`
	Arena    string `json:"arena"`
}

// WeekdayName returns the short English name of d, e.g. "Mon".
func (d TeamDay) WeekdayName() string {
	return time.Weekday((d.Weekday + 1) % 7).String()[:3]
}

// WeekStart returns the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, time.UTC)
}

// GroupByWeek buckets rows by the Monday of their date. Weeks are ascending;
// within a week teams with more games come first, ties by name. Rows with an
// unparsable date are skipped.
func GroupByWeek(rows []Row) []Week {
	type bucket struct {
		order []string
		games map[string][]Row
	}
	buckets := make(map[string]*bucket)

	for _, r := range rows {
		d, err := ParseDate(r.Date)
		if err != nil {
			continue
		}
		key := WeekStart(d).Format(DateLayout)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{games: make(map[string][]Row)}
			buckets[key] = b
		}
		for _, name := range []string{r.HomeTeam, r.AwayTeam} {
			if _, seen := b.games[name]; !seen {
				b.order = append(b.order, name)
			}
			b.games[name] = append(b.games[name], r)
		}
	}

	weeks := make([]Week, 0, len(buckets))
	for key, b := range buckets {
		start, _ := ParseDate(key)
		teams := make([]TeamWeek, 0, len(b.order))
		for _, name := range b.order {
			games := b.games[name]
			teams = append(teams, TeamWeek{
				Team:      name,
				GameCount: len(games),
				Games:     games,
				Days:      teamDays(name, start, games),
			})
		}
		sort.SliceStable(teams, func(i, j int) bool {
			if teams[i].GameCount != teams[j].GameCount {
				return teams[i].GameCount > teams[j].GameCount
			}
			return teams[i].Team < teams[j].Team
		})
		weeks = append(weeks, Week{
			WeekStart: key,
			WeekEnd:   start.AddDate(0, 0, 6).Format(DateLayout),
			Teams:     teams,
		})
	}

	sort.Slice(weeks, func(i, j int) bool {
		return weeks[i].WeekStart < weeks[j].WeekStart
	})
	return weeks
}

// teamDays splits one team's games by day. Days are in calendar order and
// games keep their schedule order within a day.
func teamDays(name string, monday time.Time, games []Row) []TeamDay {
	days := make([]TeamDay, 0, len(games))
	index := make(map[string]int)
	for _, g := range games {
		m := Matchup{Opponent: g.AwayTeam, Home: true, TimeUTC: g.TimeUTC, Arena: g.Arena}
		if g.HomeTeam != name {
			m.Opponent, m.Home = g.HomeTeam, false
		}

		i, ok := index[g.Date]
		if !ok {
			d, _ := ParseDate(g.Date)
			days = append(days, TeamDay{
				Weekday: int(d.Sub(monday).Hours() / 24),
				Date:    g.Date,
			})
			i = len(days) - 1
			index[g.Date] = i
		}
		days[i].Games = append(days[i].Games, m)
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})
	return days
}

// FindWeek returns the week starting on start. Any date inside the week is
// accepted and normalized to its Monday.
func FindWeek(weeks []Week, start string) (Week, error) {
	d, err := ParseDate(start)
	if err != nil {
		return Week{}, err
	}
	key := WeekStart(d).Format(DateLayout)
	for _, w := range weeks {
		if w.WeekStart == key {
			return w, nil
		}
	}
	return Week{}, fmt.Errorf("%w: %s", ErrWeekNotFound, key)
}
