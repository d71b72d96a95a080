// scraper/csv_parser.go
package scraper

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/gewnthar/covidstats/models"
	"github.com/jszwec/csvutil"
)

// ParseConfirmedCasesCSV takes an io.Reader containing the wide-format
// confirmed-cases CSV and returns the loaded TimeSeriesTable.
//
// The fixed identity columns (Province/State, Country/Region, Lat, Long)
// are mapped through the csv tags on models.CountryRow. The date columns
// are not known at compile time; they are recovered per record through the
// decoder's Unused indexes, preserving header order, and collected into
// each row's Cases map.
func ParseConfirmedCasesCSV(reader io.Reader) (*models.TimeSeriesTable, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to create CSV decoder for confirmed cases: %w", err)
	}

	header := decoder.Header()

	var dates []string
	var rows []models.CountryRow
	for {
		var row models.CountryRow
		if err := decoder.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("failed to decode confirmed cases CSV record %d: %w", len(rows)+1, err)
		}

		unused := decoder.Unused()
		if dates == nil {
			// Same for every record; the date column set is fixed by the header.
			dates = make([]string, 0, len(unused))
			for _, i := range unused {
				dates = append(dates, header[i])
			}
		}

		record := decoder.Record()
		row.Cases = make(map[string]int, len(unused))
		for _, i := range unused {
			cell := record[i]
			if cell == "" {
				row.Cases[header[i]] = 0
				continue
			}
			count, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("row %q/%q: bad case count %q in column %q: %w",
					row.ProvinceState, row.CountryRegion, cell, header[i], err)
			}
			row.Cases[header[i]] = count
		}
		rows = append(rows, row)
	}

	if len(dates) == 0 {
		return nil, fmt.Errorf("confirmed cases CSV has no date columns (or no data rows)")
	}

	log.Printf("Scraper: Parsed %d rows x %d dates (%s..%s) from confirmed cases CSV.\n",
		len(rows), len(dates), dates[0], dates[len(dates)-1])
	return models.NewTimeSeriesTable(dates, rows), nil
}
