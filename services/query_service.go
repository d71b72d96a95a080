// services/query_service.go
package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/gewnthar/covidstats/models"
)

// Query functions over a loaded confirmed-cases table. The table is passed
// in explicitly rather than read from package state, so tests can run
// against small fixture tables and the functions stay pure: same table,
// same arguments, same answer.

// FormatDateKey renders (day, month, year) as the dataset's column key:
// unpadded "M/D/YY", e.g. (7, 3, 2020) -> "3/7/20".
//
// Bounds are 1-31 / 1-12 / 2000-2020; anything outside fails with
// models.ErrInvalidDate. Days-per-month is NOT validated here: Feb 31 is
// accepted and will simply never match a column, failing later with
// models.ErrDateNotFound at lookup.
func FormatDateKey(day, month, year int) (string, error) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 2000 || year > 2020 {
		return "", fmt.Errorf("%w: day=%d month=%d year=%d", models.ErrInvalidDate, day, month, year)
	}
	return fmt.Sprintf("%d/%d/%d", month, day, year%100), nil
}

// dateKeyFromTime renders an already-valid calendar date as a column key.
// Used for derived dates (the previous day in ChangedRowCount), which skip
// the formatter's bounds check.
func dateKeyFromTime(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year()%100)
}

// CasesForCountry returns the confirmed case count for a single
// country/region on the given date.
//
// The value comes from the FIRST row whose Country/Region label equals
// country, in table order. Countries reported per sub-region are NOT summed
// here; that asymmetry with TopCountries is intentional and load-bearing
// (callers and recorded reference outputs depend on it).
func CasesForCountry(table *models.TimeSeriesTable, country string, day, month, year int) (int, error) {
	key, err := FormatDateKey(day, month, year)
	if err != nil {
		return 0, err
	}
	if !table.HasDate(key) {
		return 0, fmt.Errorf("%w: no column %q (dataset covers %s..%s)",
			models.ErrDateNotFound, key, table.FirstDate(), table.LastDate())
	}
	for _, row := range table.Rows {
		if row.CountryRegion == country {
			return row.Cases[key], nil
		}
	}
	return 0, fmt.Errorf("%w: %q", models.ErrCountryNotFound, country)
}

// TopCountries returns the n most-infected country/region labels on the
// given date, most infected first.
//
// Unlike CasesForCountry, rows sharing a label ARE summed, so sub-region
// rows count toward their country's total. Ties keep the relative order in
// which the labels first appear in the table. If fewer than n distinct
// labels exist, all of them are returned.
func TopCountries(table *models.TimeSeriesTable, n, day, month, year int) ([]string, error) {
	key, err := FormatDateKey(day, month, year)
	if err != nil {
		return nil, err
	}
	if !table.HasDate(key) {
		return nil, fmt.Errorf("%w: no column %q (dataset covers %s..%s)",
			models.ErrDateNotFound, key, table.FirstDate(), table.LastDate())
	}

	totals := make(map[string]int)
	var order []string // labels in first-appearance order, for stable ties
	for _, row := range table.Rows {
		if _, seen := totals[row.CountryRegion]; !seen {
			order = append(order, row.CountryRegion)
		}
		totals[row.CountryRegion] += row.Cases[key]
	}

	sort.SliceStable(order, func(i, j int) bool {
		return totals[order[i]] > totals[order[j]]
	})

	if n < 0 {
		n = 0
	}
	if n > len(order) {
		n = len(order)
	}
	return order[:n], nil
}

// ChangedRowCount returns the number of table rows whose confirmed case
// count on the given date differs from the previous calendar day, in either
// direction. Rows are counted raw: sub-region rows sharing a country label
// count separately.
//
// The previous day is computed with real calendar arithmetic (month and
// year boundaries, leap years), then rendered back to a column key. Either
// column missing fails with models.ErrDateNotFound; in particular the
// series' first date has no predecessor column.
func ChangedRowCount(table *models.TimeSeriesTable, day, month, year int) (int, error) {
	key, err := FormatDateKey(day, month, year)
	if err != nil {
		return 0, err
	}
	if !table.HasDate(key) {
		return 0, fmt.Errorf("%w: no column %q (dataset covers %s..%s)",
			models.ErrDateNotFound, key, table.FirstDate(), table.LastDate())
	}

	prev := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	prevKey := dateKeyFromTime(prev)
	if !table.HasDate(prevKey) {
		return 0, fmt.Errorf("%w: no column %q (previous day of %q)", models.ErrDateNotFound, prevKey, key)
	}

	changed := 0
	for _, row := range table.Rows {
		if row.Cases[key] != row.Cases[prevKey] {
			changed++
		}
	}
	return changed, nil
}
