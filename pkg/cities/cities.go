// pkg/cities/cities.go
package cities

import "strings"

// KnownCities is the fixed allowlist surfaced to clients as quick-select
// options. Free-text locations are still accepted by the search endpoints;
// this list only feeds the UI.
var KnownCities = []string{
	"Milan",
	"Turin",
	"Brescia",
	"Rome",
	"Bologna",
	"Florence",
	"Venice",
	"Verona",
	"Genoa",
	"Naples",
	"Bergamo",
	"Padua",
}

// IsKnown reports whether city is on the allowlist, case-insensitively.
func IsKnown(city string) bool {
	for _, c := range KnownCities {
		if strings.EqualFold(c, city) {
			return true
		}
	}
	return false
}
