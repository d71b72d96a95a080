// scraper/csv_downloader.go
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gewnthar/covidstats/config"
)

// DownloadFile downloads a file from a URL and saves it to a local path.
// It returns an error if any step fails.
func DownloadFile(url string, localSavePath string) error {
	log.Printf("Scraper: Downloading %s to %s\n", url, localSavePath)

	client := http.Client{
		Timeout: 30 * time.Second, // Sensible timeout for a file download
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make GET request to %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file from %s: received status code %d", url, resp.StatusCode)
	}

	dir := filepath.Dir(localSavePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	outFile, err := os.Create(localSavePath)
	if err != nil {
		return fmt.Errorf("failed to create local file %s: %w", localSavePath, err)
	}
	defer outFile.Close()

	if _, err = io.Copy(outFile, resp.Body); err != nil {
		return fmt.Errorf("failed to copy downloaded content to %s: %w", localSavePath, err)
	}

	log.Printf("Scraper: Successfully downloaded %s\n", url)
	return nil
}

// DownloadConfirmedCasesCSV downloads the confirmed-cases time-series CSV
// from the URL in the config and saves it to the configured local path.
// It returns the local path of the downloaded file or an error.
func DownloadConfirmedCasesCSV() (string, error) {
	csvURL := config.AppConfig.Dataset.ConfirmedCasesCSVURL
	localPath := config.AppConfig.Dataset.LocalCSVPath

	if csvURL == "" {
		return "", fmt.Errorf("confirmed cases CSV URL is not configured")
	}
	if localPath == "" {
		return "", fmt.Errorf("local save path for confirmed cases CSV is not configured")
	}

	if err := DownloadFile(csvURL, localPath); err != nil {
		return "", fmt.Errorf("failed to download confirmed cases CSV: %w", err)
	}
	return localPath, nil
}
