package weather

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a date has no stored observation or the
	// upstream series has nothing for it.
	ErrNotFound = errors.New("no weather data for date")

	// ErrInvalidInput is returned when user input fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptStore is returned when the backing file exists but cannot be parsed.
	ErrCorruptStore = errors.New("corrupt observation store")

	// ErrMalformedResponse is returned when an upstream payload fails the parse step.
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// Forecaster abstracts the upstream forecast source (met.no locationforecast).
type Forecaster interface {
	Name() string
	Fetch(ctx context.Context, at Coordinates, date time.Time) (ForecastSample, error)
}

// Store is the contract for the local observation journal.
type Store interface {
	Save(dateKey string, obs Observation) error
	// SaveIfAbsent writes obs only when dateKey has no entry, atomically with the check.
	SaveIfAbsent(dateKey string, obs Observation) (bool, error)
	Get(dateKey string) (Observation, error)
	Dates() []string
}

// Geocoder resolves a place name into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place Place) (Coordinates, error)
}
