// services/dataset_service.go
package services

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gewnthar/covidstats/config"
	"github.com/gewnthar/covidstats/database"
	"github.com/gewnthar/covidstats/models"
	"github.com/gewnthar/covidstats/scraper"
)

const sourceConfirmedCases = "ConfirmedCases"

// The served table is replaced wholesale on refresh; individual tables are
// never mutated, so readers only need the pointer swap to be safe.
var (
	tableMu      sync.RWMutex
	currentTable *models.TimeSeriesTable
)

// CurrentTable returns the currently served confirmed-cases table.
func CurrentTable() (*models.TimeSeriesTable, error) {
	tableMu.RLock()
	defer tableMu.RUnlock()
	if currentTable == nil {
		return nil, fmt.Errorf("confirmed cases dataset is not loaded")
	}
	return currentTable, nil
}

func setCurrentTable(table *models.TimeSeriesTable) {
	tableMu.Lock()
	currentTable = table
	tableMu.Unlock()
}

// InitDataset loads the confirmed-cases table at startup: from the newest
// stored snapshot when one exists, otherwise by downloading the live feed.
func InitDataset() error {
	log.Println("Service: Initializing confirmed cases dataset...")

	snap, err := database.GetLatestSnapshot(sourceConfirmedCases)
	if err != nil {
		log.Printf("WARN Service: Could not read latest snapshot from DB: %v. Falling back to download.\n", err)
	}
	if snap != nil {
		table, parseErr := scraper.ParseConfirmedCasesCSV(bytes.NewReader(snap.RawCSV))
		if parseErr != nil {
			log.Printf("WARN Service: Stored snapshot %d failed to parse: %v. Falling back to download.\n", snap.ID, parseErr)
		} else {
			setCurrentTable(table)
			log.Printf("INFO Service: Loaded dataset from snapshot %d (fetched %s, %d rows, dates %s..%s).\n",
				snap.ID, snap.FetchedAt.Format(time.RFC3339), table.NumRows(), table.FirstDate(), table.LastDate())
			return nil
		}
	} else {
		log.Println("INFO Service: No stored snapshot found.")
	}

	return RefreshDataset(true)
}

// RefreshDataset re-downloads the confirmed-cases CSV, swaps the served
// table, and stores a snapshot. Unless force is set, the upstream commit
// history is consulted first and a download is skipped when the stored
// snapshot is already at the upstream commit.
func RefreshDataset(force bool) error {
	var updateInfo *models.DatasetUpdateInfo

	if !force {
		var err error
		updateInfo, err = scraper.CheckDatasetLastUpdated()
		if err != nil {
			log.Printf("WARN Service: Freshness check failed: %v. Proceeding with download.\n", err)
		} else {
			stored, err := database.GetLatestCommitTime(sourceConfirmedCases)
			if err != nil {
				log.Printf("WARN Service: Could not read stored commit time: %v\n", err)
			} else if stored != nil && !updateInfo.LastCommitTime.After(*stored) {
				log.Printf("Service: Dataset is up to date (upstream commit %s, stored %s). Skipping download.\n",
					updateInfo.LastCommitTime.Format(time.RFC3339), stored.Format(time.RFC3339))
				if _, loadErr := CurrentTable(); loadErr == nil {
					return nil
				}
				// Nothing is being served yet; load it despite being current.
				log.Println("Service: No table loaded in memory, downloading anyway.")
			}
		}
	}

	localPath, err := scraper.DownloadConfirmedCasesCSV()
	if err != nil {
		return fmt.Errorf("failed to download confirmed cases CSV: %w", err)
	}
	defer func() {
		if err := os.Remove(localPath); err != nil {
			log.Printf("ERROR Service: Failed to remove temporary file %s: %v\n", localPath, err)
		}
	}()

	raw, err := os.ReadFile(localPath)
	if err != nil {
		return fmt.Errorf("failed to read downloaded file %s: %w", localPath, err)
	}

	table, err := scraper.ParseConfirmedCasesCSV(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to parse confirmed cases CSV: %w", err)
	}

	setCurrentTable(table)
	log.Printf("Service: Now serving dataset with %d rows, dates %s..%s.\n",
		table.NumRows(), table.FirstDate(), table.LastDate())

	hash := sha256.Sum256(raw)
	snap := &models.DatasetSnapshot{
		DatasetSnapshotInfo: models.DatasetSnapshotInfo{
			SourceName:   sourceConfirmedCases,
			SourceURL:    config.AppConfig.Dataset.ConfirmedCasesCSVURL,
			FetchedAt:    time.Now().UTC(),
			DataHash:     hex.EncodeToString(hash[:]),
			RowCount:     table.NumRows(),
			FirstDateKey: table.FirstDate(),
			LastDateKey:  table.LastDate(),
		},
		RawCSV: raw,
	}
	if updateInfo != nil {
		snap.UpstreamCommitTime = &updateInfo.LastCommitTime
	}

	// Snapshot persistence is best effort; serving the fresh table matters more.
	if err := database.SaveSnapshot(snap); err != nil {
		log.Printf("WARN Service: Failed to persist dataset snapshot: %v\n", err)
	}

	return nil
}

// ListSnapshots returns the stored snapshot metadata, newest first.
func ListSnapshots() ([]models.DatasetSnapshotInfo, error) {
	return database.ListSnapshotInfos(sourceConfirmedCases)
}
