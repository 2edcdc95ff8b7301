package calendar

import (
	"fmt"
	"io"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/pfrederiksen/nhl-season/internal/schedule"
)

const (
	ProductID       = "-//nhl-season//nhl-season//EN"
	DefaultDuration = 3 * time.Hour
)

// uidNamespace scopes the name-based UUIDs used as event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://api-web.nhle.com/v1/schedule"))

// Options tune the generated calendar.
type Options struct {
	// Team keeps only games where this team plays. Empty keeps all.
	Team string
	// Duration is the assumed length of a game. Zero means DefaultDuration.
	Duration time.Duration
	// Name is written as X-WR-CALNAME when set.
	Name string
	// Now stamps DTSTAMP; defaults to time.Now.
	Now func() time.Time
}

// GameUID returns a stable UID for a game, identical across exports.
func GameUID(r schedule.Row) string {
	key := r.Date + "|" + r.HomeTeam + "|" + r.AwayTeam
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@nhl-season"
}

// Generate writes an iCalendar document with one event per game and returns
// how many events it contains. Rows whose time_utc does not parse as RFC 3339
// are skipped.
func Generate(rows []schedule.Row, w io.Writer, opts Options) (int, error) {
	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	stamp := now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetXWRCalName(opts.Name)
	}

	count := 0
	for _, r := range rows {
		if opts.Team != "" && r.HomeTeam != opts.Team && r.AwayTeam != opts.Team {
			continue
		}
		start, err := time.Parse(time.RFC3339, r.TimeUTC)
		if err != nil {
			continue
		}

		event := cal.AddEvent(GameUID(r))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start.UTC())
		event.SetEndAt(start.UTC().Add(duration))
		event.SetSummary(fmt.Sprintf("%s @ %s", r.AwayTeam, r.HomeTeam))
		event.SetLocation(r.Arena)
		event.SetDescription(fmt.Sprintf("%s at %s\nArena: %s", r.AwayTeam, r.HomeTeam, r.Arena))
		event.SetStatus(ics.ObjectStatusConfirmed)
		count++
	}

	if err := cal.SerializeTo(w); err != nil {
		return 0, fmt.Errorf("serializing calendar: %w", err)
	}
	return count, nil
}
