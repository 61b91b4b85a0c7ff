package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds all process-wide settings. It is populated once at startup
// and read-only afterwards.
type AppConfig struct {
	// GeminiAPIKey authenticates calls to the generative-text API. Required.
	GeminiAPIKey string

	// OpenWeatherAPIKey authenticates calls to the weather provider. Required.
	OpenWeatherAPIKey string

	// ModelAPIURL is the base URL of the remote disease-classification model.
	// Optional; image analysis is disabled when it is not set.
	ModelAPIURL string

	// DefaultLat/DefaultLon are used when a suggestion request carries no
	// coordinates. The defaults point at the Agra region like the mobile app.
	DefaultLat float64
	DefaultLon float64

	Port string
}

// Load reads configuration from the environment with sensible defaults.
// It fails only on missing credentials the service cannot run without.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msgf("no .env file found: %v", err)
	}

	cfg := &AppConfig{
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		ModelAPIURL:       os.Getenv("MODEL_API_URL"),
		DefaultLat:        getenvFloat("DEFAULT_LAT", 27.1767),
		DefaultLon:        getenvFloat("DEFAULT_LON", 78.0081),
		Port:              getenvDefault("PORT", "8080"),
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is not set")
	}
	if cfg.ModelAPIURL == "" {
		log.Warn().Msg("MODEL_API_URL is not set - image analysis will not work")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
