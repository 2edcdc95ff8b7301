package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-10-06", "2025-10-06"}, // Monday
		{"2025-10-07", "2025-10-06"},
		{"2025-10-12", "2025-10-06"}, // Sunday
		{"2025-10-13", "2025-10-13"},
		{"2026-01-01", "2025-12-29"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := time.Parse(DateLayout, tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, WeekStart(d).Format(DateLayout))
		})
	}
}

func TestGroupByWeek(t *testing.T) {
	rows := []Row{
		{Date: "2025-10-14", HomeTeam: "Boston Bruins", AwayTeam: "Seattle Kraken"},
		{Date: "2025-10-07", HomeTeam: "Toronto Maple Leafs", AwayTeam: "Montréal Canadiens"},
		{Date: "2025-10-09", HomeTeam: "Boston Bruins", AwayTeam: "Toronto Maple Leafs"},
		{Date: "2025-10-11", HomeTeam: "Montréal Canadiens", AwayTeam: "Boston Bruins"},
		{Date: "2025-10-12", HomeTeam: "Toronto Maple Leafs", AwayTeam: "Anaheim Ducks"},
		{Date: "not-a-date", HomeTeam: "X", AwayTeam: "Y"},
	}

	weeks := GroupByWeek(rows)
	require.Len(t, weeks, 2)

	first := weeks[0]
	assert.Equal(t, "2025-10-06", first.WeekStart)
	assert.Equal(t, "2025-10-12", first.WeekEnd)

	var order []string
	var counts []int
	for _, tw := range first.Teams {
		order = append(order, tw.Team)
		counts = append(counts, tw.GameCount)
	}
	assert.Equal(t, []string{"Toronto Maple Leafs", "Boston Bruins", "Montréal Canadiens", "Anaheim Ducks"}, order)
	assert.Equal(t, []int{3, 2, 2, 1}, counts)
	assert.Equal(t, "2025-10-07", first.Teams[0].Games[0].Date)

	boston := first.Teams[1]
	assert.Equal(t, []TeamDay{
		{Weekday: 3, Date: "2025-10-09", Games: []Matchup{{Opponent: "Toronto Maple Leafs", Home: true}}},
		{Weekday: 5, Date: "2025-10-11", Games: []Matchup{{Opponent: "Montréal Canadiens", Home: false}}},
	}, boston.Days)

	second := weeks[1]
	assert.Equal(t, "2025-10-13", second.WeekStart)
	require.Len(t, second.Teams, 2)
	assert.Equal(t, "Boston Bruins", second.Teams[0].Team)
}

func TestFindWeek(t *testing.T) {
	weeks := GroupByWeek([]Row{
		{Date: "2025-10-07", HomeTeam: "Boston Bruins", AwayTeam: "Seattle Kraken"},
	})

	w, err := FindWeek(weeks, "2025-10-06")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-06", w.WeekStart)

	w, err = FindWeek(weeks, "2025-10-09")
	require.NoError(t, err)
	assert.Equal(t, "2025-10-06", w.WeekStart)

	_, err = FindWeek(weeks, "2025-11-03")
	assert.ErrorIs(t, err, ErrWeekNotFound)

	_, err = FindWeek(weeks, "Monday")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGroupByWeek_DaysFollowCalendarOrder(t *testing.T) {
	rows := []Row{
		{Date: "2025-10-12", HomeTeam: "Seattle Kraken", AwayTeam: "Boston Bruins", TimeUTC: "2025-10-13T02:00:00Z", Arena: "Climate Pledge Arena"},
		{Date: "2025-10-06", HomeTeam: "Boston Bruins", AwayTeam: "Dallas Stars", TimeUTC: "2025-10-06T23:00:00Z", Arena: "TD Garden"},
	}

	weeks := GroupByWeek(rows)
	require.Len(t, weeks, 1)
	require.Equal(t, "Boston Bruins", weeks[0].Teams[0].Team)

	days := weeks[0].Teams[0].Days
	require.Len(t, days, 2)
	assert.Equal(t, 0, days[0].Weekday)
	assert.Equal(t, "Mon", days[0].WeekdayName())
	assert.Equal(t, Matchup{Opponent: "Dallas Stars", Home: true, TimeUTC: "2025-10-06T23:00:00Z", Arena: "TD Garden"}, days[0].Games[0])
	assert.Equal(t, 6, days[1].Weekday)
	assert.Equal(t, "Sun", days[1].WeekdayName())
	assert.False(t, days[1].Games[0].Home)
	assert.Equal(t, "Seattle Kraken", days[1].Games[0].Opponent)
}
