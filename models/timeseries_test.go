package models

import "testing"

func TestTimeSeriesTable(t *testing.T) {
	dates := []string{"1/22/20", "1/23/20", "1/24/20"}
	rows := []CountryRow{
		{CountryRegion: "China", Cases: map[string]int{"1/22/20": 548, "1/23/20": 643, "1/24/20": 920}},
	}
	table := NewTimeSeriesTable(dates, rows)

	if !table.HasDate("1/23/20") {
		t.Error("Expected HasDate to find 1/23/20")
	}
	if table.HasDate("1/25/20") {
		t.Error("Did not expect HasDate to find 1/25/20")
	}
	if table.FirstDate() != "1/22/20" {
		t.Errorf("Expected first date 1/22/20, got %q", table.FirstDate())
	}
	if table.LastDate() != "1/24/20" {
		t.Errorf("Expected last date 1/24/20, got %q", table.LastDate())
	}
	if table.NumRows() != 1 {
		t.Errorf("Expected 1 row, got %d", table.NumRows())
	}
}

func TestTimeSeriesTableEmpty(t *testing.T) {
	table := NewTimeSeriesTable(nil, nil)

	if table.FirstDate() != "" || table.LastDate() != "" {
		t.Errorf("Expected empty date bounds, got %q..%q", table.FirstDate(), table.LastDate())
	}
	if table.NumRows() != 0 {
		t.Errorf("Expected 0 rows, got %d", table.NumRows())
	}
	if table.HasDate("1/22/20") {
		t.Error("Did not expect any date columns in an empty table")
	}
}
