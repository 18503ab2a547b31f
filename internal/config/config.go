package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/weather-log/internal/weather"
)

var errAutologHomeUnset = errors.New("AUTOLOG_LAT and AUTOLOG_LON must be set when AUTOLOG_ENABLED is true")

// envPrefix is prepended to every variable name, e.g. WEATHERLOG_STORE_PATH.
const envPrefix = "WEATHERLOG"

type AppConfig struct {
	// StorePath is the JSON journal file.
	StorePath string `envconfig:"STORE_PATH" default:"weather_data.json" validate:"required"`

	MetNoBaseURL string `envconfig:"METNO_BASE_URL" default:"https://api.met.no/weatherapi/locationforecast/2.0/compact" validate:"required,url"`

	// UserAgent identifies the application to met.no: "<app>/<version> (<contact>)".
	UserAgent string `envconfig:"USER_AGENT" default:"weather-log/1.0 (weather-log@example.com)" validate:"required"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	Port string `envconfig:"PORT" default:"8080" validate:"required,numeric"`

	// GeocoderAPIKey enables place-name lookup when set.
	GeocoderAPIKey string `envconfig:"GEOCODER_API_KEY"`

	Autolog AutologConfig `envconfig:"AUTOLOG"`
}

// AutologConfig controls the daily job that journals the forecast for a home location.
type AutologConfig struct {
	Enabled bool    `envconfig:"ENABLED" default:"false"`
	At      string  `envconfig:"AT" default:"18:00" validate:"datetime=15:04"`
	Lat     float64 `envconfig:"LAT" validate:"gte=-90,lte=90"`
	Lon     float64 `envconfig:"LON" validate:"gte=-180,lte=180"`
}

// Home returns the auto-journal coordinates.
func (a AutologConfig) Home() weather.Coordinates {
	return weather.Coordinates{Latitude: a.Lat, Longitude: a.Lon}
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Autolog.Enabled && cfg.Autolog.Lat == 0 && cfg.Autolog.Lon == 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errAutologHomeUnset)
	}
	return cfg, nil
}
