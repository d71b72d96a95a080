// config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// DatasetConfig locates the upstream confirmed-cases dataset.
type DatasetConfig struct {
	ConfirmedCasesCSVURL string `yaml:"confirmed_cases_csv_url"`
	HistoryPageURL       string `yaml:"history_page_url"` // commit history page scraped for freshness
	LocalCSVPath         string `yaml:"local_csv_path"`   // temp path for downloads
	CommitTimeSelector   string `yaml:"commit_time_selector"`
}

type DataFreshnessConfig struct {
	CheckIntervalStr string `yaml:"check_interval"`
	CheckInterval    time.Duration // Parsed duration
}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Dataset       DatasetConfig       `yaml:"dataset"`
	DataFreshness DataFreshnessConfig `yaml:"data_freshness"`
}

var AppConfig Config

// Defaults for the JHU CSSE confirmed-cases time series, the dataset this
// service was built around. Overridable from config.yaml.
const (
	defaultConfirmedCasesCSVURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_19-covid-Confirmed.csv"
	defaultHistoryPageURL       = "https://github.com/CSSEGISandData/COVID-19/commits/master/csse_covid_19_data/csse_covid_19_time_series/time_series_19-covid-Confirmed.csv"
	defaultCommitTimeSelector   = "relative-time"
	defaultLocalCSVPath         = "./temp_data/time_series_confirmed.csv"
	defaultServerPort           = "8080"
)

// LoadConfig reads configuration from the given YAML file. If configPath is
// empty, a few standard locations are tried relative to the working
// directory. Environment variables (COVIDSTATS_*) override file values.
func LoadConfig(configPath string) error {
	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
			"../config/config.yaml",
		}

		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			return fmt.Errorf("config.yaml not found in standard locations")
		}
		fmt.Printf("Loading configuration from: %s\n", configPath)
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	AppConfig = Config{}
	if err := yaml.Unmarshal(file, &AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides()
	applyDefaults()

	// Parse durations
	if AppConfig.DataFreshness.CheckIntervalStr != "" {
		AppConfig.DataFreshness.CheckInterval, err = time.ParseDuration(AppConfig.DataFreshness.CheckIntervalStr)
		if err != nil {
			return fmt.Errorf("failed to parse data_freshness.check_interval: %w", err)
		}
	} else {
		AppConfig.DataFreshness.CheckInterval = 24 * time.Hour // Default
	}

	// Make sure the download directory exists before the first fetch.
	if AppConfig.Dataset.LocalCSVPath != "" {
		if err := os.MkdirAll(filepath.Dir(AppConfig.Dataset.LocalCSVPath), 0755); err != nil {
			return fmt.Errorf("failed to create directory for dataset CSV: %w", err)
		}
	}

	return nil
}

// applyEnvOverrides lets deployment-sensitive values (DB credentials, port)
// come from the environment, typically via a .env file loaded in main.
func applyEnvOverrides() {
	if v := os.Getenv("COVIDSTATS_SERVER_PORT"); v != "" {
		AppConfig.Server.Port = v
	}
	if v := os.Getenv("COVIDSTATS_DB_HOST"); v != "" {
		AppConfig.Database.Host = v
	}
	if v := os.Getenv("COVIDSTATS_DB_PORT"); v != "" {
		AppConfig.Database.Port = v
	}
	if v := os.Getenv("COVIDSTATS_DB_USER"); v != "" {
		AppConfig.Database.User = v
	}
	if v := os.Getenv("COVIDSTATS_DB_PASSWORD"); v != "" {
		AppConfig.Database.Password = v
	}
	if v := os.Getenv("COVIDSTATS_DB_NAME"); v != "" {
		AppConfig.Database.DBName = v
	}
}

func applyDefaults() {
	if AppConfig.Server.Port == "" {
		AppConfig.Server.Port = defaultServerPort
	}
	if AppConfig.Dataset.ConfirmedCasesCSVURL == "" {
		AppConfig.Dataset.ConfirmedCasesCSVURL = defaultConfirmedCasesCSVURL
	}
	if AppConfig.Dataset.HistoryPageURL == "" {
		AppConfig.Dataset.HistoryPageURL = defaultHistoryPageURL
	}
	if AppConfig.Dataset.CommitTimeSelector == "" {
		AppConfig.Dataset.CommitTimeSelector = defaultCommitTimeSelector
	}
	if AppConfig.Dataset.LocalCSVPath == "" {
		AppConfig.Dataset.LocalCSVPath = defaultLocalCSVPath
	}
}
