package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the pipeline.
type Config struct {
	// Site scraper
	ListingsBaseURL string
	UserAgents      []string
	UseMockScraper  bool

	// Web search
	SearchTargets  []string
	ListingDomains []string
	MaxResults     int

	// Geocoder
	GeocodeBaseURL  string
	GeocodeAttempts int
	GeocodeBackoff  time.Duration

	// Timing
	ListingDelay time.Duration
	PageDelay    time.Duration
	EngineDelay  time.Duration
	HTTPTimeout  time.Duration

	// Orchestrator
	MinViableRecords int

	// Export
	ExportDir string

	// PostgreSQL
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		ListingsBaseURL: getEnv("LISTINGS_BASE_URL", "https://www.newsec.com/properties"),
		UserAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 " +
				"(KHTML, like Gecko) Version/14.1.1 Safari/605.1.15",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
				"(KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
		},
		UseMockScraper: getEnvBool("USE_MOCK_SCRAPER", false),

		SearchTargets: []string{
			"https://www.google.com/search?q=site:lokalguiden.se+",
			"https://www.google.com/search?q=site:businessestates.com+",
			"https://www.google.com/search?q=site:commercialrealestate.com+",
			"https://www.google.com/search?q=site:loopnet.com+",
		},
		ListingDomains: []string{"lokalguiden", "businessestates", "commercialrealestate", "loopnet"},
		MaxResults:     getEnvInt("MAX_SEARCH_RESULTS", 10),

		GeocodeBaseURL:  getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		GeocodeAttempts: 3,
		GeocodeBackoff:  time.Second,

		ListingDelay: 500 * time.Millisecond,
		PageDelay:    time.Second,
		EngineDelay:  2 * time.Second,
		HTTPTimeout:  20 * time.Second,

		MinViableRecords: getEnvInt("MIN_VIABLE_RECORDS", 5),

		ExportDir: getEnv("EXPORT_DIR", "exports"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "synapse"),
		DBPassword: getEnv("DB_PASSWORD", "synapse"),
		DBName:     getEnv("DB_NAME", "property_intel"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func getEnv(key string, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
