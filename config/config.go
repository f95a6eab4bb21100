package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the scraper.
type Config struct {
	CraigslistURL string
	FacebookURL   string
	MaxListings   int // 0 = no cap on Craigslist detail visits
	OutFile       string
	SheetName     string
	Headless      bool
	UserAgent     string

	// Timing
	ReadinessTimeout  time.Duration // bounded poll for result containers
	PageSettleDelay   time.Duration // post-navigation render settle
	ScrollSettleDelay time.Duration // post-scroll render settle
	LoaderExtraDelay  time.Duration // extra wait when a loading indicator shows
	SessionProbeWait  time.Duration // wait before re-probing a replayed session
	DetailRate        float64       // detail-page visits per second
	ScrollAttempts    int
	StallLimit        int

	// Session persistence
	SessionDir string

	// Google Sheets
	CredentialsFile string

	// PostgreSQL (optional: empty host disables the store)
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
		MaxListings: 0,
		OutFile:     "truck_listings.json",
		SheetName:   "Truck Listings",
		Headless:    true,
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",

		ReadinessTimeout:  30 * time.Second,
		PageSettleDelay:   3 * time.Second,
		ScrollSettleDelay: 3 * time.Second,
		LoaderExtraDelay:  5 * time.Second,
		SessionProbeWait:  15 * time.Second,
		DetailRate:        0.5,
		ScrollAttempts:    15,
		StallLimit:        3,

		SessionDir:      getEnv("SESSION_DIR", "."),
		CredentialsFile: getEnv("GOOGLE_CREDENTIALS", "service_account.json"),

		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "trucks"),
		DBPassword: getEnv("DB_PASSWORD", "trucks"),
		DBName:     getEnv("DB_NAME", "truck_listings"),
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
