// scraper/update_checker.go
package scraper

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gewnthar/covidstats/config"
	"github.com/gewnthar/covidstats/models"
)

const sourceConfirmedCases = "ConfirmedCases"

// ExtractLastCommitTime parses an HTML commit-history page and returns the
// timestamp of the newest commit. GitHub renders commit times as
// <relative-time datetime="..."> elements, newest first; the selector is
// configurable in case the page structure changes.
func ExtractLastCommitTime(r io.Reader, selector string) (time.Time, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse history page HTML: %w", err)
	}

	datetime, ok := doc.Find(selector).First().Attr("datetime")
	if !ok {
		return time.Time{}, fmt.Errorf("no element matching selector %q with a datetime attribute found. QC: Verify the selector against the live page", selector)
	}

	commitTime, err := time.Parse(time.RFC3339, datetime)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse commit datetime %q: %w", datetime, err)
	}
	return commitTime, nil
}

// CheckDatasetLastUpdated scrapes the dataset's commit history page and
// reports when the upstream CSV was last touched. Callers compare this
// against the commit time recorded with the newest stored snapshot to
// decide whether to re-download.
func CheckDatasetLastUpdated() (*models.DatasetUpdateInfo, error) {
	pageURL := config.AppConfig.Dataset.HistoryPageURL
	selector := config.AppConfig.Dataset.CommitTimeSelector
	if selector == "" {
		log.Println("WARN Scraper: No commit time selector configured, using default 'relative-time'.")
		selector = "relative-time"
	}

	log.Printf("Scraper: Checking last update of confirmed cases dataset via %s (selector: '%s')\n", pageURL, selector)

	client := http.Client{Timeout: 20 * time.Second}
	res, err := client.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get URL %s: %w", pageURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get URL %s: status code %d", pageURL, res.StatusCode)
	}

	commitTime, err := ExtractLastCommitTime(res.Body, selector)
	if err != nil {
		return nil, fmt.Errorf("failed to extract last commit time from %s: %w", pageURL, err)
	}

	log.Printf("Scraper: Confirmed cases dataset last updated upstream at %s\n", commitTime.Format(time.RFC3339))

	return &models.DatasetUpdateInfo{
		SourceName:     sourceConfirmedCases,
		LastCommitTime: commitTime,
		LastChecked:    time.Now().UTC(),
	}, nil
}
