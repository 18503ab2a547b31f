package common

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/i474232898/weather-log/internal/weather"
)

// ParseFloat coerces user input to a float, naming the field on failure.
// A decimal comma is accepted.
func ParseFloat(field, s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", weather.ErrInvalidInput, field, s)
	}
	return v, nil
}

// ParseInt coerces user input to an int, naming the field on failure.
func ParseInt(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number, got %q", weather.ErrInvalidInput, field, s)
	}
	return v, nil
}

// ParseCoordinates coerces a latitude/longitude pair.
func ParseCoordinates(lat, lon string) (weather.Coordinates, error) {
	la, err := ParseFloat("latitude", lat)
	if err != nil {
		return weather.Coordinates{}, err
	}
	lo, err := ParseFloat("longitude", lon)
	if err != nil {
		return weather.Coordinates{}, err
	}
	c := weather.Coordinates{Latitude: la, Longitude: lo}
	if err := weather.Validate(c); err != nil {
		return weather.Coordinates{}, err
	}
	return c, nil
}
