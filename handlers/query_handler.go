// handlers/query_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gewnthar/covidstats/models"
	"github.com/gewnthar/covidstats/services"
	"github.com/gewnthar/covidstats/utils"
)

// defaultYear mirrors the dataset's reporting year; clients querying 2020
// dates can omit the year parameter.
const (
	defaultYear = 2020
	defaultTopN = 5
)

// parseDateParams reads day, month and the optional year from the query
// string. Range validation is left to the query service; this only rejects
// non-numeric input.
func parseDateParams(r *http.Request) (day, month, year int, err error) {
	q := r.URL.Query()

	day, err = strconv.Atoi(q.Get("day"))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("missing or invalid 'day' parameter")
	}
	month, err = strconv.Atoi(q.Get("month"))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("missing or invalid 'month' parameter")
	}

	year = defaultYear
	if v := q.Get("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid 'year' parameter")
		}
	}
	return day, month, year, nil
}

// statusForError maps the query error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDateNotFound), errors.Is(err, models.ErrCountryNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// CountryCasesHandler handles GET /api/cases?country=X&day=D&month=M&year=Y
// and returns the confirmed case count for that country on that date.
func CountryCasesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	country := utils.NormalizeCountryName(r.URL.Query().Get("country"))
	if country == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'country' parameter")
		return
	}

	day, month, year, err := parseDateParams(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := services.CurrentTable()
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	cases, err := services.CasesForCountry(table, country, day, month, year)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	// The key re-renders without error: the query above already validated it.
	date, _ := services.FormatDateKey(day, month, year)
	respondWithJSON(w, http.StatusOK, models.CasesResponse{
		Country: country,
		Date:    date,
		Cases:   cases,
	})
}

// TopCountriesHandler handles GET /api/top?n=N&day=D&month=M&year=Y and
// returns the n most-infected countries on that date (n defaults to 5).
// Sub-region rows are aggregated into their country's total here, unlike
// the single-country lookup.
func TopCountriesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	n := defaultTopN
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid 'n' parameter")
			return
		}
		n = parsed
	}

	day, month, year, err := parseDateParams(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := services.CurrentTable()
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	countries, err := services.TopCountries(table, n, day, month, year)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}
	if countries == nil { // Ensure a JSON array even when empty
		countries = []string{}
	}

	date, _ := services.FormatDateKey(day, month, year)
	respondWithJSON(w, http.StatusOK, models.TopCountriesResponse{
		Date:      date,
		Countries: countries,
	})
}

// ChangedRowsHandler handles GET /api/changed?day=D&month=M&year=Y and
// returns how many rows reported a different count than the previous day.
func ChangedRowsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	day, month, year, err := parseDateParams(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := services.CurrentTable()
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	changed, err := services.ChangedRowCount(table, day, month, year)
	if err != nil {
		respondWithError(w, statusForError(err), err.Error())
		return
	}

	date, _ := services.FormatDateKey(day, month, year)
	prevDate := ""
	// Derive the previous key the same way the service did, for the response body.
	if idx := indexOfDate(table, date); idx > 0 {
		prevDate = table.Dates[idx-1]
	}
	respondWithJSON(w, http.StatusOK, models.ChangedRowsResponse{
		Date:         date,
		PreviousDate: prevDate,
		ChangedRows:  changed,
	})
}

func indexOfDate(table *models.TimeSeriesTable, key string) int {
	for i, d := range table.Dates {
		if d == key {
			return i
		}
	}
	return -1
}
