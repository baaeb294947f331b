package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Settings holds the runtime configuration loaded from the environment.
type Settings struct {
	Port      string
	JWTSecret string

	// PredictionAPIURL is the crop-health prediction service endpoint.
	PredictionAPIURL string

	// WeatherAPIKey and WeatherAPIBaseURL configure the WeatherAPI.com lookup
	// used to auto-fill climate defaults during farm setup.
	WeatherAPIKey     string
	WeatherAPIBaseURL string

	// ClimateRefreshInterval controls how often stored climate defaults are
	// refreshed for farms with a known location.
	ClimateRefreshInterval time.Duration
}

// App is the loaded application configuration.
var App Settings

// Load reads configuration from the environment with sensible defaults.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	App = Settings{
		Port:              getenvDefault("PORT", "8080"),
		JWTSecret:         getenvDefault("JWT_SECRET", "farmapp-dev-secret"),
		PredictionAPIURL:  getenvDefault("PREDICTION_API_URL", "http://localhost:3000/predict"),
		WeatherAPIKey:     os.Getenv("WEATHERAPI_KEY"),
		WeatherAPIBaseURL: getenvDefault("WEATHERAPI_BASE_URL", "https://api.weatherapi.com/v1/current.json"),
	}

	intervalStr := getenvDefault("CLIMATE_REFRESH_INTERVAL", "24h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		log.Printf("invalid CLIMATE_REFRESH_INTERVAL %q, using 24h", intervalStr)
		interval = 24 * time.Hour
	}
	App.ClimateRefreshInterval = interval
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
