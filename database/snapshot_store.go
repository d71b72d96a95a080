// database/snapshot_store.go
package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gewnthar/covidstats/models"
)

// Expected table:
//
//	CREATE TABLE dataset_snapshots (
//	    id                   BIGINT AUTO_INCREMENT PRIMARY KEY,
//	    source_name          VARCHAR(64)  NOT NULL,
//	    source_url           VARCHAR(512) NOT NULL,
//	    fetched_at           DATETIME     NOT NULL,
//	    upstream_commit_time DATETIME     NULL,
//	    data_hash            CHAR(64)     NOT NULL,
//	    row_count            INT          NOT NULL,
//	    first_date_key       VARCHAR(16)  NOT NULL,
//	    last_date_key        VARCHAR(16)  NOT NULL,
//	    raw_csv              LONGBLOB     NOT NULL,
//	    created_at           DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    KEY idx_source_fetched (source_name, fetched_at)
//	);

// SaveSnapshot inserts a downloaded dataset snapshot. Snapshots are
// append-only: each fetch of the upstream CSV gets its own row so earlier
// states of the feed stay reproducible.
func SaveSnapshot(snap *models.DatasetSnapshot) error {
	if DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	var commitTime sql.NullTime
	if snap.UpstreamCommitTime != nil {
		commitTime = sql.NullTime{Time: *snap.UpstreamCommitTime, Valid: true}
	}

	res, err := DB.Exec(`
		INSERT INTO dataset_snapshots (
			source_name, source_url, fetched_at, upstream_commit_time,
			data_hash, row_count, first_date_key, last_date_key, raw_csv
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		snap.SourceName, snap.SourceURL, snap.FetchedAt, commitTime,
		snap.DataHash, snap.RowCount, snap.FirstDateKey, snap.LastDateKey, snap.RawCSV,
	)
	if err != nil {
		log.Printf("ERROR Database: Failed to save snapshot for '%s': %v", snap.SourceName, err)
		return fmt.Errorf("failed to save snapshot for %s: %w", snap.SourceName, err)
	}

	if id, err := res.LastInsertId(); err == nil {
		snap.ID = id
	}

	log.Printf("Database: Saved snapshot for '%s' (%d rows, dates %s..%s, hash %.12s)\n",
		snap.SourceName, snap.RowCount, snap.FirstDateKey, snap.LastDateKey, snap.DataHash)
	return nil
}

// GetLatestSnapshot returns the most recently fetched snapshot for the
// given source, including its raw CSV body. Returns (nil, nil) when no
// snapshot has been stored yet.
func GetLatestSnapshot(sourceName string) (*models.DatasetSnapshot, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	row := DB.QueryRow(`
		SELECT id, source_name, source_url, fetched_at, upstream_commit_time,
		       data_hash, row_count, first_date_key, last_date_key, raw_csv, created_at
		FROM dataset_snapshots
		WHERE source_name = ?
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, sourceName)

	var snap models.DatasetSnapshot
	var commitTime sql.NullTime
	err := row.Scan(
		&snap.ID, &snap.SourceName, &snap.SourceURL, &snap.FetchedAt, &commitTime,
		&snap.DataHash, &snap.RowCount, &snap.FirstDateKey, &snap.LastDateKey,
		&snap.RawCSV, &snap.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot for %s: %w", sourceName, err)
	}
	if commitTime.Valid {
		snap.UpstreamCommitTime = &commitTime.Time
	}
	return &snap, nil
}

// GetLatestCommitTime returns the upstream commit time recorded with the
// newest snapshot of the source, or nil when none is stored. Used by the
// freshness check to decide whether a re-download is warranted.
func GetLatestCommitTime(sourceName string) (*time.Time, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	row := DB.QueryRow(`
		SELECT upstream_commit_time
		FROM dataset_snapshots
		WHERE source_name = ? AND upstream_commit_time IS NOT NULL
		ORDER BY fetched_at DESC, id DESC
		LIMIT 1
	`, sourceName)

	var commitTime sql.NullTime
	err := row.Scan(&commitTime)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest commit time for %s: %w", sourceName, err)
	}
	if !commitTime.Valid {
		return nil, nil
	}
	return &commitTime.Time, nil
}

// ListSnapshotInfos returns snapshot metadata (without raw CSV bodies) for
// the given source, newest first.
func ListSnapshotInfos(sourceName string) ([]models.DatasetSnapshotInfo, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	rows, err := DB.Query(`
		SELECT id, source_name, source_url, fetched_at, upstream_commit_time,
		       data_hash, row_count, first_date_key, last_date_key, created_at
		FROM dataset_snapshots
		WHERE source_name = ?
		ORDER BY fetched_at DESC, id DESC
	`, sourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots for %s: %w", sourceName, err)
	}
	defer rows.Close()

	var infos []models.DatasetSnapshotInfo
	for rows.Next() {
		var info models.DatasetSnapshotInfo
		var commitTime sql.NullTime

		err := rows.Scan(
			&info.ID, &info.SourceName, &info.SourceURL, &info.FetchedAt, &commitTime,
			&info.DataHash, &info.RowCount, &info.FirstDateKey, &info.LastDateKey, &info.CreatedAt,
		)
		if err != nil {
			log.Printf("ERROR Database: Failed to scan snapshot row: %v", err)
			continue
		}
		if commitTime.Valid {
			info.UpstreamCommitTime = &commitTime.Time
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return infos, nil
}
