package weather

import (
	"fmt"
	"strings"
	"time"
)

// DateKeyLayout is the layout used for journal keys and everything shown to the user.
const DateKeyLayout = "02-01-2006"

// Observation is a user-entered weather record for one calendar date.
// Field order matches the persisted JSON object.
type Observation struct {
	Temperature   float64 `json:"temperature"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"wind_speed"`
}

// ForecastSample is the measurement extracted from the upstream series for one date.
// Precipitation is zero when the timeslot carries no next-hour block.
type ForecastSample struct {
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
}

// Coordinates identify the point a forecast is requested for.
type Coordinates struct {
	Latitude  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"lon" validate:"gte=-180,lte=180"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// Place is a free-form location resolved to Coordinates by a Geocoder.
type Place struct {
	City    string `json:"city" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (p Place) String() string {
	return strings.TrimSpace(p.City) + ", " + strings.TrimSpace(p.Country)
}

// ParseDateKey parses a DD-MM-YYYY key into midnight UTC of that date.
func ParseDateKey(key string) (time.Time, error) {
	d, err := time.ParseInLocation(DateKeyLayout, strings.TrimSpace(key), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be DD-MM-YYYY", ErrInvalidInput, key)
	}
	return d, nil
}

// DateKey formats the calendar date of t (in UTC) as DD-MM-YYYY.
func DateKey(t time.Time) string {
	return t.UTC().Format(DateKeyLayout)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
