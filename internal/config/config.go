package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	// Reverse geocoding (best-effort, rate limited to ~1 req/s)
	GeocodeBaseURL string
	GeocodeAPIKey  string

	// Office wall clock as a fixed UTC offset; used for the end-of-day
	// office-visit cutoff. DST transitions are not modeled.
	OfficeUTCOffsetHours int

	// AverageSpeedMPH converts straight-line distance into expected drive
	// minutes for the transit-anomaly pass.
	AverageSpeedMPH float64

	// HomeLookbackDays is how many days of starting points the
	// home-inference task analyzes.
	HomeLookbackDays int
}

// Load reads configuration from the environment, with defaults
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/fieldtrace.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	geocodeURL := os.Getenv("GEOCODE_BASE_URL")
	if geocodeURL == "" {
		geocodeURL = "https://nominatim.openstreetmap.org"
	}

	return &Config{
		Port:                 port,
		DBPath:               dbPath,
		JWTSecret:            jwtSecret,
		GeocodeBaseURL:       geocodeURL,
		GeocodeAPIKey:        os.Getenv("GEOCODE_API_KEY"),
		OfficeUTCOffsetHours: envInt("OFFICE_UTC_OFFSET_HOURS", -5),
		AverageSpeedMPH:      envFloat("AVERAGE_SPEED_MPH", 35),
		HomeLookbackDays:     envInt("HOME_LOOKBACK_DAYS", 30),
	}
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Invalid %s=%q, using default %v", key, v, def)
	}
	return def
}
