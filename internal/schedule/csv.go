package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Header is the fixed CSV column order.
var Header = []string{"date", "home_team", "away_team", "time_utc", "arena"}

// WriteCSV writes the header followed by one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Date, r.HomeTeam, r.AwayTeam, r.TimeUTC, r.Arena}); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a schedule file. Columns are matched by header name, so
// extra columns and a different order are accepted.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		index[name] = i
	}
	for _, col := range Header {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	get := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]Row, 0)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		rows = append(rows, Row{
			Date:     get(record, "date"),
			HomeTeam: get(record, "home_team"),
			AwayTeam: get(record, "away_team"),
			TimeUTC:  get(record, "time_utc"),
			Arena:    get(record, "arena"),
		})
	}
	return rows, nil
}

// TeamNames returns the unique home and away teams in lexical order.
func TeamNames(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[r.HomeTeam] = struct{}{}
		seen[r.AwayTeam] = struct{}{}
	}
	delete(seen, "")

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
