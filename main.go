// main.go
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gewnthar/covidstats/config"
	"github.com/gewnthar/covidstats/database"
	"github.com/gewnthar/covidstats/handlers"
	"github.com/gewnthar/covidstats/services"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting COVID-19 Confirmed Cases Query Backend...")

	// .env is optional; it typically carries COVIDSTATS_DB_* overrides.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	configPath := "config/config.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configPath = "config.yaml"
		if _, errFallback := os.Stat(configPath); os.IsNotExist(errFallback) {
			log.Fatalf("Config file not found at default paths. Error: %v", errFallback)
		}
	}

	if err := config.LoadConfig(configPath); err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	log.Printf("Configuration loaded. Server port: %s, dataset URL: %s",
		config.AppConfig.Server.Port, config.AppConfig.Dataset.ConfirmedCasesCSVURL)

	// Snapshot persistence is optional: without a database the service
	// still answers queries from a fresh download.
	if err := database.InitDB(config.AppConfig.Database); err != nil {
		log.Printf("WARN: Database unavailable, snapshot persistence disabled: %v", err)
	} else {
		defer database.CloseDB()
	}

	if err := services.InitDataset(); err != nil {
		log.Fatalf("Error loading confirmed cases dataset: %v", err)
	}

	// --- Setup HTTP routes ---
	http.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		table, err := services.CurrentTable()
		if err != nil {
			http.Error(w, `{"status": "error", "message": "dataset not loaded"}`, http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"status": "ok", "rows": %d, "first_date": %q, "last_date": %q}`+"\n",
			table.NumRows(), table.FirstDate(), table.LastDate())
	})

	// Query endpoints
	http.HandleFunc("/api/cases", handlers.CountryCasesHandler)
	http.HandleFunc("/api/top", handlers.TopCountriesHandler)
	http.HandleFunc("/api/changed", handlers.ChangedRowsHandler)

	// Admin endpoints for dataset management
	http.HandleFunc("/api/admin/refresh-data", handlers.RefreshDatasetHandler)
	http.HandleFunc("/api/admin/snapshots", handlers.ListSnapshotsHandler)

	serverAddr := ":" + config.AppConfig.Server.Port
	log.Printf("Server starting on http://localhost%s\n", serverAddr)
	if err := http.ListenAndServe(serverAddr, nil); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
