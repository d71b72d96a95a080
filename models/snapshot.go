// models/snapshot.go
package models

import "time"

// DatasetSnapshotInfo is the metadata of one stored dataset snapshot.
// Queries against a snapshot are reproducible, unlike queries against the
// live feed, which is rewritten upstream as reports are corrected.
type DatasetSnapshotInfo struct {
	ID                 int64      `db:"id" json:"id"`
	SourceName         string     `db:"source_name" json:"source_name"` // e.g. "ConfirmedCases"
	SourceURL          string     `db:"source_url" json:"source_url"`
	FetchedAt          time.Time  `db:"fetched_at" json:"fetched_at"`
	UpstreamCommitTime *time.Time `db:"upstream_commit_time" json:"upstream_commit_time,omitempty"` // from the GitHub history page, when available
	DataHash           string     `db:"data_hash" json:"data_hash"` // SHA-256 of the raw CSV
	RowCount           int        `db:"row_count" json:"row_count"`
	FirstDateKey       string     `db:"first_date_key" json:"first_date_key"`
	LastDateKey        string     `db:"last_date_key" json:"last_date_key"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// DatasetSnapshot is a full snapshot: metadata plus the raw CSV body as
// downloaded. The body is kept verbatim so a snapshot can be re-parsed with
// later versions of the parser.
type DatasetSnapshot struct {
	DatasetSnapshotInfo
	RawCSV []byte `db:"raw_csv" json:"-"`
}

// DatasetUpdateInfo holds the upstream freshness information scraped from
// the dataset's commit history page.
type DatasetUpdateInfo struct {
	SourceName     string
	LastCommitTime time.Time
	LastChecked    time.Time // when the history page was scraped
}
