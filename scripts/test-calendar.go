package main

import (
	"fmt"
	"os"

	"github.com/pfrederiksen/nhl-season/internal/calendar"
	"github.com/pfrederiksen/nhl-season/internal/schedule"
)

func main() {
	// Create a sample game
	rows := []schedule.Row{{
		Date:     "2025-10-07",
		HomeTeam: "Boston Bruins",
		AwayTeam: "Montréal Canadiens",
		TimeUTC:  "2025-10-07T23:00:00Z",
		Arena:    "TD Garden",
	}}

	filename := "test-nhl-game.ics"
	f, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	n, err := calendar.Generate(rows, f, calendar.Options{Name: "NHL test"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating calendar: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Created %s with %d event(s)\n", filename, n)
	fmt.Printf("UID: %s\n", calendar.GameUID(rows[0]))
	fmt.Println("Open it in your calendar app to check the import.")
}
