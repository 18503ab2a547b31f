package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/kelvins/geocoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-log/internal/weather"
)

func TestGeocode_MapsLocation(t *testing.T) {
	g := NewGoogleGeocoder("test-key")
	var seen geocoder.Address
	g.lookup = func(a geocoder.Address) (geocoder.Location, error) {
		seen = a
		return geocoder.Location{Latitude: 59.9139, Longitude: 10.7522}, nil
	}

	at, err := g.Geocode(context.Background(), weather.Place{City: " Oslo ", Country: "Norway"})
	require.NoError(t, err)
	assert.Equal(t, weather.Coordinates{Latitude: 59.9139, Longitude: 10.7522}, at)
	assert.Equal(t, "Oslo", seen.City)
	assert.Equal(t, "Norway", seen.Country)
	assert.Equal(t, "test-key", geocoder.ApiKey)
}

func TestGeocode_Errors(t *testing.T) {
	_, err := NewGoogleGeocoder("").Geocode(context.Background(), weather.Place{City: "Oslo", Country: "Norway"})
	assert.ErrorIs(t, err, errNoAPIKey)

	g := NewGoogleGeocoder("test-key")
	boom := errors.New("zero results")
	g.lookup = func(geocoder.Address) (geocoder.Location, error) {
		return geocoder.Location{}, boom
	}
	_, err = g.Geocode(context.Background(), weather.Place{City: "Nowhere", Country: "Atlantis"})
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.Geocode(ctx, weather.Place{City: "Oslo", Country: "Norway"})
	assert.ErrorIs(t, err, context.Canceled)
}
