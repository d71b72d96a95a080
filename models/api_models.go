// models/api_models.go
package models

// CasesResponse is the JSON body for GET /api/cases.
type CasesResponse struct {
	Country string `json:"country"`
	Date    string `json:"date"`  // dataset column key, e.g. "3/7/20"
	Cases   int    `json:"cases"` // cumulative confirmed cases
}

// TopCountriesResponse is the JSON body for GET /api/top.
type TopCountriesResponse struct {
	Date      string   `json:"date"`
	Countries []string `json:"countries"` // descending by aggregated cases
}

// ChangedRowsResponse is the JSON body for GET /api/changed.
type ChangedRowsResponse struct {
	Date         string `json:"date"`
	PreviousDate string `json:"previous_date"`
	ChangedRows  int    `json:"changed_rows"`
}
