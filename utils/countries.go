// utils/countries.go
package utils

import "strings"

// NormalizeCountryName trims surrounding whitespace from a country/region
// query parameter. Lookups are exact-match against the dataset's labels
// (e.g. "Korea, South", "US", "Cruise Ship"), so no case folding or
// aliasing is applied here.
func NormalizeCountryName(name string) string {
	return strings.TrimSpace(name)
}
