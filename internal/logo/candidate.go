package logo

import (
	"fmt"
	"net/url"
	"strings"
)

// Format is the image format of a candidate.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Variant is the shading variant of a vector logo.
type Variant string

const (
	VariantPlain Variant = ""
	VariantLight Variant = "light"
	VariantDark  Variant = "dark"
)

// Candidate is one (format, variant, letter case) combination.
type Candidate struct {
	Format  Format
	Variant Variant
	Lower   bool
}

// DefaultCandidates returns the probe order used for every team.
func DefaultCandidates() []Candidate {
	return []Candidate{
		{FormatSVG, VariantLight, false},
		{FormatSVG, VariantDark, false},
		{FormatSVG, VariantPlain, false},
		{FormatSVG, VariantLight, true},
		{FormatSVG, VariantDark, true},
		{FormatSVG, VariantPlain, true},
		{FormatPNG, VariantPlain, false},
		{FormatPNG, VariantPlain, true},
	}
}

// URL builds the asset URL for code under base.
//
//	{base}/logos/nhl/svg/{CODE}[_light|_dark].svg
//	{base}/logos/nhl/{CODE}.png
func (c Candidate) URL(base, code string) string {
	base = strings.TrimRight(base, "/")
	if c.Lower {
		code = strings.ToLower(code)
	} else {
		code = strings.ToUpper(code)
	}
	code = url.PathEscape(code)

	if c.Format == FormatPNG {
		return fmt.Sprintf("%s/logos/nhl/%s.png", base, code)
	}
	suffix := ""
	if c.Variant != VariantPlain {
		suffix = "_" + string(c.Variant)
	}
	return fmt.Sprintf("%s/logos/nhl/svg/%s%s.svg", base, code, suffix)
}

func (c Candidate) String() string {
	letterCase := "upper"
	if c.Lower {
		letterCase = "lower"
	}
	variant := string(c.Variant)
	if variant == "" {
		variant = "plain"
	}
	return fmt.Sprintf("%s/%s/%s", c.Format, variant, letterCase)
}
