package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/nhl-season/internal/logger"
	"github.com/pfrederiksen/nhl-season/internal/metrics"
)

const (
	DefaultBaseURL = "https://api-web.nhle.com"
	UserAgent      = "nhl-season/1.0 (github.com/pfrederiksen/nhl-season)"
	Timeout        = 30 * time.Second
	DefaultDelay   = 500 * time.Millisecond

	metricsEndpoint = "schedule"
)

// Config controls how a Fetcher reaches the schedule endpoint.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// Delay is the pause between page requests. Zero disables it.
	Delay   time.Duration
	Logger  *logger.Logger
	Metrics *metrics.Recorder
}

// Fetcher walks the weekly schedule endpoint.
type Fetcher struct {
	client  *http.Client
	baseURL string
	delay   time.Duration
	log     *logger.Logger
	metrics *metrics.Recorder
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewFetcher creates a Fetcher, filling unset fields with defaults.
func NewFetcher(cfg Config) *Fetcher {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	delay := cfg.Delay
	if delay < 0 {
		delay = 0
	}

	return &Fetcher{
		client:  client,
		baseURL: base,
		delay:   delay,
		log:     log.With(logger.Fields{"pipeline": "schedule"}),
		metrics: cfg.Metrics,
		sleep:   sleepContext,
	}
}

// Fetch returns every game from start through end (inclusive, YYYY-MM-DD)
// in discovery order. Any request or decoding failure aborts the walk.
func (f *Fetcher) Fetch(ctx context.Context, start, end string) ([]Row, error) {
	cursor, err := ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	last, err := ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	rows := make([]Row, 0)
	for page := 1; !cursor.After(last); page++ {
		date := cursor.Format(DateLayout)
		f.log.Info("Fetching schedule week", logger.Fields{"date": date, "page": page})

		week, err := f.FetchWeek(ctx, date)
		if err != nil {
			return nil, err
		}

		weekRows, err := week.Rows()
		if err != nil {
			return nil, fmt.Errorf("week %s: %w", date, err)
		}
		rows = append(rows, weekRows...)
		f.metrics.AddGames(len(weekRows))
		f.log.Debug("Parsed schedule week", logger.Fields{"date": date, "games": len(weekRows)})

		next, reason, err := advance(cursor, last, week.NextStartDate)
		if err != nil {
			return nil, fmt.Errorf("week %s: %w", date, err)
		}
		if reason != "" {
			fields := logger.Fields{"date": date, "next_start_date": week.NextStartDate, "reason": reason}
			if reason == stopNoProgress {
				f.log.Warn("Stopping schedule walk", fields)
			} else {
				f.log.Debug("Stopping schedule walk", fields)
			}
			break
		}

		cursor = next
		if f.delay > 0 {
			if err := f.sleep(ctx, f.delay); err != nil {
				return nil, err
			}
		}
	}

	f.log.Info("Schedule download complete", logger.Fields{"games": len(rows)})
	return rows, nil
}

const (
	stopNoNext     = "no next start date"
	stopPastEnd    = "next start date after end date"
	stopNoProgress = "next start date does not advance"
)

// advance decides where the walk goes after cursor. A non-empty reason means
// the walk is over.
func advance(cursor, last time.Time, rawNext string) (time.Time, string, error) {
	if rawNext == "" {
		return time.Time{}, stopNoNext, nil
	}
	next, err := ParseDate(rawNext)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("nextStartDate: %w", err)
	}
	if next.After(last) {
		return time.Time{}, stopPastEnd, nil
	}
	if !next.After(cursor) {
		return time.Time{}, stopNoProgress, nil
	}
	return next, "", nil
}

// FetchWeek performs a single request for the week containing date.
func (f *Fetcher) FetchWeek(ctx context.Context, date string) (*WeekResponse, error) {
	started := time.Now()
	week, err := f.fetchWeek(ctx, date)
	f.metrics.RecordRequest(metricsEndpoint, time.Since(started), err)
	return week, err
}

func (f *Fetcher) fetchWeek(ctx context.Context, date string) (*WeekResponse, error) {
	url := fmt.Sprintf("%s/v1/schedule/%s", f.baseURL, date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule for %s: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d fetching schedule for %s: %s",
			ErrUnexpectedStatus, resp.StatusCode, date, strings.TrimSpace(string(body)))
	}

	var week WeekResponse
	if err := json.NewDecoder(resp.Body).Decode(&week); err != nil {
		return nil, fmt.Errorf("decoding schedule for %s: %w", date, err)
	}
	return &week, nil
}

// ParseDate parses a YYYY-MM-DD calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
