package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/gewnthar/covidstats/models"
)

// testTable builds a small table spanning the 2020 leap-day boundary.
// China appears twice (per-province rows), Italy and Iran tie on 2/29,
// and Cruise Ship's count decreases on 3/1.
func testTable() *models.TimeSeriesTable {
	dates := []string{"2/28/20", "2/29/20", "3/1/20", "3/2/20"}
	rows := []models.CountryRow{
		{ProvinceState: "Hubei", CountryRegion: "China",
			Cases: map[string]int{"2/28/20": 100, "2/29/20": 120, "3/1/20": 130, "3/2/20": 130}},
		{ProvinceState: "Beijing", CountryRegion: "China",
			Cases: map[string]int{"2/28/20": 10, "2/29/20": 12, "3/1/20": 12, "3/2/20": 13}},
		{CountryRegion: "Italy",
			Cases: map[string]int{"2/28/20": 50, "2/29/20": 60, "3/1/20": 70, "3/2/20": 80}},
		{CountryRegion: "Poland",
			Cases: map[string]int{"2/28/20": 0, "2/29/20": 0, "3/1/20": 5, "3/2/20": 5}},
		{CountryRegion: "Iran",
			Cases: map[string]int{"2/28/20": 40, "2/29/20": 60, "3/1/20": 72, "3/2/20": 90}},
		{CountryRegion: "Cruise Ship",
			Cases: map[string]int{"2/28/20": 20, "2/29/20": 20, "3/1/20": 15, "3/2/20": 15}},
	}
	return models.NewTimeSeriesTable(dates, rows)
}

func TestFormatDateKey(t *testing.T) {
	tests := []struct {
		name     string
		day      int
		month    int
		year     int
		expected string
	}{
		{"no padding", 7, 3, 2020, "3/7/20"},
		{"two digit day", 11, 3, 2020, "3/11/20"},
		{"january first", 1, 1, 2020, "1/1/20"},
		{"earlier year", 31, 12, 2019, "12/31/19"},
		{"single digit year", 5, 6, 2004, "6/5/4"},
		{"feb 31 accepted", 31, 2, 2020, "2/31/20"}, // impossible date passes the bounds check
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDateKey(tt.day, tt.month, tt.year)
			if err != nil {
				t.Fatalf("FormatDateKey(%d, %d, %d) failed: %v", tt.day, tt.month, tt.year, err)
			}
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFormatDateKeyBounds(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		month int
		year  int
	}{
		{"day zero", 0, 3, 2020},
		{"day too big", 32, 3, 2020},
		{"month zero", 15, 0, 2020},
		{"month too big", 15, 13, 2020},
		{"year too early", 15, 3, 1999},
		{"year too late", 15, 3, 2021},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FormatDateKey(tt.day, tt.month, tt.year)
			if !errors.Is(err, models.ErrInvalidDate) {
				t.Errorf("Expected ErrInvalidDate, got %v", err)
			}
		})
	}
}

func TestCasesForCountry(t *testing.T) {
	table := testTable()

	got, err := CasesForCountry(table, "Poland", 1, 3, 2020)
	if err != nil {
		t.Fatalf("CasesForCountry failed: %v", err)
	}
	if got != 5 {
		t.Errorf("Expected 5 cases for Poland on 3/1/20, got %d", got)
	}
}

func TestCasesForCountryFirstRowOnly(t *testing.T) {
	table := testTable()

	// China has two rows (Hubei first). The lookup must return the first
	// row's value, not the 120+12 sum across sub-regions.
	got, err := CasesForCountry(table, "China", 29, 2, 2020)
	if err != nil {
		t.Fatalf("CasesForCountry failed: %v", err)
	}
	if got != 120 {
		t.Errorf("Expected first-row value 120 for China on 2/29/20, got %d", got)
	}
}

func TestCasesForCountryErrors(t *testing.T) {
	table := testTable()

	tests := []struct {
		name     string
		country  string
		day      int
		month    int
		year     int
		expected error
	}{
		{"unknown country", "Atlantis", 29, 2, 2020, models.ErrCountryNotFound},
		{"before series start", "Poland", 1, 1, 2020, models.ErrDateNotFound},
		{"after series end", "Poland", 15, 4, 2020, models.ErrDateNotFound},
		{"feb 31 fails at lookup", "Poland", 31, 2, 2020, models.ErrDateNotFound},
		{"out of bounds day", "Poland", 0, 2, 2020, models.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CasesForCountry(table, tt.country, tt.day, tt.month, tt.year)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestTopCountries(t *testing.T) {
	table := testTable()

	// Totals on 2/29/20: China 132 (120+12), Italy 60, Iran 60, Cruise Ship
	// 20, Poland 0. Italy appears before Iran in the table, so the 60-60
	// tie keeps that order.
	got, err := TopCountries(table, 5, 29, 2, 2020)
	if err != nil {
		t.Fatalf("TopCountries failed: %v", err)
	}
	expected := []string{"China", "Italy", "Iran", "Cruise Ship", "Poland"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestTopCountriesTruncatesToN(t *testing.T) {
	table := testTable()

	got, err := TopCountries(table, 2, 29, 2, 2020)
	if err != nil {
		t.Fatalf("TopCountries failed: %v", err)
	}
	expected := []string{"China", "Italy"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestTopCountriesFewerThanN(t *testing.T) {
	table := testTable()

	// Five distinct labels in the fixture; asking for more returns all of
	// them, in non-increasing total order.
	got, err := TopCountries(table, 10, 2, 3, 2020)
	if err != nil {
		t.Fatalf("TopCountries failed: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Expected all 5 distinct countries, got %d: %v", len(got), got)
	}
	if got[0] != "China" {
		t.Errorf("Expected China first on 3/2/20, got %v", got)
	}
}

func TestTopCountriesZeroN(t *testing.T) {
	table := testTable()

	got, err := TopCountries(table, 0, 29, 2, 2020)
	if err != nil {
		t.Fatalf("TopCountries failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty result for n=0, got %v", got)
	}
}

func TestTopCountriesDateNotFound(t *testing.T) {
	table := testTable()

	_, err := TopCountries(table, 5, 1, 1, 2020)
	if !errors.Is(err, models.ErrDateNotFound) {
		t.Errorf("Expected ErrDateNotFound, got %v", err)
	}
}

func TestChangedRowCount(t *testing.T) {
	table := testTable()

	tests := []struct {
		name     string
		day      int
		month    int
		year     int
		expected int
	}{
		// 3/1 vs 2/29: Hubei, Italy, Poland, Iran changed, plus Cruise
		// Ship's DECREASE (20 -> 15) counts too; Beijing held at 12.
		{"leap boundary march first", 1, 3, 2020, 5},
		// 2/29 vs 2/28: Hubei, Beijing, Italy, Iran changed.
		{"leap day", 29, 2, 2020, 4},
		// 3/2 vs 3/1: Beijing, Italy, Iran changed.
		{"plain day", 2, 3, 2020, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ChangedRowCount(table, tt.day, tt.month, tt.year)
			if err != nil {
				t.Fatalf("ChangedRowCount failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d changed rows, got %d", tt.expected, got)
			}
		})
	}
}

func TestChangedRowCountYearBoundary(t *testing.T) {
	dates := []string{"12/31/19", "1/1/20"}
	rows := []models.CountryRow{
		{CountryRegion: "China", Cases: map[string]int{"12/31/19": 1, "1/1/20": 2}},
		{CountryRegion: "Japan", Cases: map[string]int{"12/31/19": 5, "1/1/20": 5}},
	}
	table := models.NewTimeSeriesTable(dates, rows)

	got, err := ChangedRowCount(table, 1, 1, 2020)
	if err != nil {
		t.Fatalf("ChangedRowCount failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Expected 1 changed row across the year boundary, got %d", got)
	}
}

func TestChangedRowCountErrors(t *testing.T) {
	table := testTable()

	tests := []struct {
		name     string
		day      int
		month    int
		year     int
		expected error
	}{
		// The series starts on 2/28/20, so its predecessor is missing.
		{"first date has no predecessor", 28, 2, 2020, models.ErrDateNotFound},
		{"date not in series", 15, 4, 2020, models.ErrDateNotFound},
		{"invalid month", 15, 13, 2020, models.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChangedRowCount(table, tt.day, tt.month, tt.year)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}
