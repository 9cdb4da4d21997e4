package command

import (
	"sort"
	"strings"
)

// recognizedPlatforms is the closed set of console names accepted after the command word.
var recognizedPlatforms = map[string]struct{}{
	"game-boy":        {},
	"gameboy-advance": {},
	"game-cube":       {},
	"nintendo-64":     {},
	"pc":              {},
	"playstation":     {},
	"playstation-2":   {},
	"playstation-3":   {},
	"playstation-4":   {},
	"playstation-5":   {},
	"switch":          {},
	"xbox":            {},
	"xbox-360":        {},
	"xbox-one":        {},
	"xbox-series-x":   {},
}

// Platforms returns the recognized console names in sorted order.
func Platforms() []string {
	out := make([]string, 0, len(recognizedPlatforms))
	for p := range recognizedPlatforms {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// SanitizePlatform trims raw and reports whether it is a recognized console name.
// Matching is exact and case-sensitive.
func SanitizePlatform(raw string) (string, bool) {
	p := strings.TrimSpace(raw)
	if _, ok := recognizedPlatforms[p]; !ok {
		return "", false
	}
	return p, true
}
