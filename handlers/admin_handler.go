// handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gewnthar/covidstats/models"
	"github.com/gewnthar/covidstats/services"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// RefreshDatasetHandler handles requests to re-fetch the confirmed-cases
// dataset. Expects POST to /api/admin/refresh-data; pass ?force=true to
// skip the upstream freshness check and download unconditionally.
func RefreshDatasetHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}

	force := r.URL.Query().Get("force") == "true"

	if err := services.RefreshDataset(force); err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to refresh dataset: %v", err))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Dataset refresh completed successfully."})
}

// ListSnapshotsHandler handles GET /api/admin/snapshots and returns the
// stored dataset snapshot metadata, newest first.
func ListSnapshotsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	snapshots, err := services.ListSnapshots()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to list snapshots: %v", err))
		return
	}
	if snapshots == nil {
		snapshots = []models.DatasetSnapshotInfo{}
	}

	respondWithJSON(w, http.StatusOK, snapshots)
}
