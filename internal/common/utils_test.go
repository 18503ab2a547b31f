package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-log/internal/weather"
)

func TestParseFloat(t *testing.T) {
	v, err := ParseFloat("temperature", " -4.5 ")
	require.NoError(t, err)
	assert.Equal(t, -4.5, v)

	v, err = ParseFloat("precipitation", "0,8")
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)

	_, err = ParseFloat("wind speed", "calm")
	assert.ErrorIs(t, err, weather.ErrInvalidInput)
	assert.Contains(t, err.Error(), "wind speed")
}

func TestParseInt(t *testing.T) {
	v, err := ParseInt("year", "2024")
	require.NoError(t, err)
	assert.Equal(t, 2024, v)

	_, err = ParseInt("week", "1.5")
	assert.ErrorIs(t, err, weather.ErrInvalidInput)
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates("59.91", "10.75")
	require.NoError(t, err)
	assert.Equal(t, weather.Coordinates{Latitude: 59.91, Longitude: 10.75}, c)

	_, err = ParseCoordinates("91", "10")
	assert.ErrorIs(t, err, weather.ErrInvalidInput)

	_, err = ParseCoordinates("10", "181")
	assert.ErrorIs(t, err, weather.ErrInvalidInput)

	_, err = ParseCoordinates("north", "10")
	assert.ErrorIs(t, err, weather.ErrInvalidInput)
}
