// models/timeseries.go
package models

// CountryRow is one row of the wide-format confirmed-cases table, matching
// the source CSV layout: fixed identity columns followed by one column per
// reporting date. CSV tags EXACTLY match the dataset headers.
//
// Country/Region labels are NOT unique: countries reported per sub-region
// (e.g. Chinese provinces, Australian states) appear as multiple rows
// sharing one label.
type CountryRow struct {
	ProvinceState string  `csv:"Province/State" json:"province_state,omitempty"`
	CountryRegion string  `csv:"Country/Region" json:"country_region"`
	Lat           float64 `csv:"Lat" json:"lat"`
	Long          float64 `csv:"Long" json:"long"`

	// Cases maps a date key (unpadded "M/D/YY", e.g. "3/7/20") to the
	// cumulative confirmed case count reported for that date. Populated by
	// the parser from the dynamic date columns; not a single CSV field.
	Cases map[string]int `csv:"-" json:"-"`
}

// TimeSeriesTable is the loaded dataset: rows in source order, date columns
// in chronological (header) order. It is built once by the parser and never
// mutated afterwards, so it is safe to query from multiple goroutines
// without locking.
type TimeSeriesTable struct {
	Dates []string
	Rows  []CountryRow

	dateSet map[string]struct{}
}

// NewTimeSeriesTable builds a table from parsed rows and the date columns
// in the order they appeared in the CSV header.
func NewTimeSeriesTable(dates []string, rows []CountryRow) *TimeSeriesTable {
	t := &TimeSeriesTable{
		Dates:   dates,
		Rows:    rows,
		dateSet: make(map[string]struct{}, len(dates)),
	}
	for _, d := range dates {
		t.dateSet[d] = struct{}{}
	}
	return t
}

// HasDate reports whether key exists as a date column.
func (t *TimeSeriesTable) HasDate(key string) bool {
	_, ok := t.dateSet[key]
	return ok
}

// FirstDate returns the earliest date column key, or "" for an empty table.
func (t *TimeSeriesTable) FirstDate() string {
	if len(t.Dates) == 0 {
		return ""
	}
	return t.Dates[0]
}

// LastDate returns the latest date column key, or "" for an empty table.
func (t *TimeSeriesTable) LastDate() string {
	if len(t.Dates) == 0 {
		return ""
	}
	return t.Dates[len(t.Dates)-1]
}

// NumRows returns the raw row count (sub-region rows counted separately).
func (t *TimeSeriesTable) NumRows() int {
	return len(t.Rows)
}
