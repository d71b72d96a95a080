package scraper

import (
	"strings"
	"testing"
	"time"
)

func TestExtractLastCommitTime(t *testing.T) {
	// Commit history pages list commits newest first.
	html := `<html><body>
		<div class="commit"><relative-time datetime="2020-03-12T01:02:03Z">Mar 12, 2020</relative-time></div>
		<div class="commit"><relative-time datetime="2020-03-11T00:00:00Z">Mar 11, 2020</relative-time></div>
	</body></html>`

	got, err := ExtractLastCommitTime(strings.NewReader(html), "relative-time")
	if err != nil {
		t.Fatalf("ExtractLastCommitTime failed: %v", err)
	}

	expected := time.Date(2020, 3, 12, 1, 2, 3, 0, time.UTC)
	if !got.Equal(expected) {
		t.Errorf("Expected %s, got %s", expected, got)
	}
}

func TestExtractLastCommitTimeMissingElement(t *testing.T) {
	html := `<html><body><p>No commits here.</p></body></html>`

	_, err := ExtractLastCommitTime(strings.NewReader(html), "relative-time")
	if err == nil {
		t.Fatal("Expected an error when no matching element exists")
	}
}

func TestExtractLastCommitTimeBadDatetime(t *testing.T) {
	html := `<html><body><relative-time datetime="yesterday">Mar 12</relative-time></body></html>`

	_, err := ExtractLastCommitTime(strings.NewReader(html), "relative-time")
	if err == nil {
		t.Fatal("Expected an error for an unparseable datetime attribute")
	}
}
