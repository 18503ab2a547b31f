// Package geocode resolves place names into coordinates for forecast lookups.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-log/internal/weather"
)

var errNoAPIKey = errors.New("geocoder api key is not configured")

// geocoder keeps its API key in a package variable; serialise access to it.
var mu sync.Mutex

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey string
	lookup func(geocoder.Address) (geocoder.Location, error)
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey: apiKey,
		lookup: geocoder.Geocoding,
	}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, place weather.Place) (weather.Coordinates, error) {
	if g.apiKey == "" {
		return weather.Coordinates{}, errNoAPIKey
	}
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}

	addr := geocoder.Address{
		City:    strings.TrimSpace(place.City),
		Country: strings.TrimSpace(place.Country),
	}

	mu.Lock()
	geocoder.ApiKey = g.apiKey
	loc, err := g.lookup(addr)
	mu.Unlock()
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("geocode %s: %w", place, err)
	}

	return weather.Coordinates{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}, nil
}
