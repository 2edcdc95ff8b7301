// Package team maps NHL team names to their three-letter codes and to the
// file names used for downloaded logos.
package team

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Team is one entry of the code table.
type Team struct {
	Name string
	Code string
}

// table is ordered; callers that fall back to the static list rely on it.
var table = []Team{
	{"Anaheim Ducks", "ANA"},
	{"Arizona Coyotes", "ARI"},
	{"Boston Bruins", "BOS"},
	{"Buffalo Sabres", "BUF"},
	{"Calgary Flames", "CGY"},
	{"Carolina Hurricanes", "CAR"},
	{"Chicago Blackhawks", "CHI"},
	{"Colorado Avalanche", "COL"},
	{"Columbus Blue Jackets", "CBJ"},
	{"Dallas Stars", "DAL"},
	{"Detroit Red Wings", "DET"},
	{"Edmonton Oilers", "EDM"},
	{"Florida Panthers", "FLA"},
	{"Los Angeles Kings", "LAK"},
	{"Minnesota Wild", "MIN"},
	{"Montréal Canadiens", "MTL"},
	{"Nashville Predators", "NSH"},
	{"New Jersey Devils", "NJD"},
	{"New York Islanders", "NYI"},
	{"New York Rangers", "NYR"},
	{"Ottawa Senators", "OTT"},
	{"Philadelphia Flyers", "PHI"},
	{"Pittsburgh Penguins", "PIT"},
	{"San Jose Sharks", "SJS"},
	{"Seattle Kraken", "SEA"},
	{"St. Louis Blues", "STL"},
	{"Tampa Bay Lightning", "TBL"},
	{"Toronto Maple Leafs", "TOR"},
	{"Utah Mammoth", "UTA"}, // formerly Arizona Coyotes
	{"Vancouver Canucks", "VAN"},
	{"Vegas Golden Knights", "VGK"},
	{"Washington Capitals", "WSH"},
	{"Winnipeg Jets", "WPG"},
}

var codes = func() map[string]string {
	m := make(map[string]string, len(table))
	for _, t := range table {
		m[t.Name] = t.Code
	}
	return m
}()

// All returns a copy of the code table in its fixed order.
func All() []Team {
	out := make([]Team, len(table))
	copy(out, table)
	return out
}

// Names returns the table's team names in their fixed order.
func Names() []string {
	names := make([]string, len(table))
	for i, t := range table {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the table code for name, if present.
func Lookup(name string) (string, bool) {
	code, ok := codes[name]
	return code, ok
}

// ResolveCode returns the table code for name. Unknown names fall back to
// the upper-cased last word truncated to three characters.
func ResolveCode(name string) string {
	if code, ok := codes[name]; ok {
		return code
	}
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	last := []rune(strings.ToUpper(words[len(words)-1]))
	if len(last) > 3 {
		last = last[:3]
	}
	return string(last)
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeName turns a team name into a file name stem: spaces become
// underscores, accents and apostrophes are dropped, periods are kept.
func SanitizeName(name string) string {
	plain, _, err := transform.String(stripMarks, name)
	if err != nil {
		plain = name
	}
	plain = strings.NewReplacer("'", "", "’", "").Replace(plain)
	return strings.ReplaceAll(plain, " ", "_")
}
