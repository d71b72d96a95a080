// models/errors.go
package models

import "errors"

// Query error taxonomy. Services wrap these with context via fmt.Errorf and
// %w; handlers map them to HTTP status codes with errors.Is.
var (
	// ErrInvalidDate: day/month/year arguments outside the accepted bounds
	// (1-31 / 1-12 / 2000-2020). Days-per-month is deliberately not checked
	// here; an impossible-but-in-bounds date like Feb 31 surfaces later as
	// ErrDateNotFound when the column lookup fails.
	ErrInvalidDate = errors.New("invalid date arguments")

	// ErrDateNotFound: a well-formed date key that is not a column of the
	// loaded dataset (before the series start, after its end, or a
	// nonexistent calendar day).
	ErrDateNotFound = errors.New("date not found in dataset")

	// ErrCountryNotFound: no row carries the requested Country/Region label.
	ErrCountryNotFound = errors.New("country/region not found in dataset")
)
