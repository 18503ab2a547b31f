package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "weather_data.json", cfg.StorePath)
	assert.Equal(t, "https://api.met.no/weatherapi/locationforecast/2.0/compact", cfg.MetNoBaseURL)
	assert.NotEmpty(t, cfg.UserAgent)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Empty(t, cfg.GeocoderAPIKey)
	assert.False(t, cfg.Autolog.Enabled)
	assert.Equal(t, "18:00", cfg.Autolog.At)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("WEATHERLOG_STORE_PATH", "/tmp/journal.json")
	t.Setenv("WEATHERLOG_USER_AGENT", "my-journal/2.0 (me@example.org)")
	t.Setenv("WEATHERLOG_HTTP_TIMEOUT", "3s")
	t.Setenv("WEATHERLOG_AUTOLOG_ENABLED", "true")
	t.Setenv("WEATHERLOG_AUTOLOG_AT", "07:15")
	t.Setenv("WEATHERLOG_AUTOLOG_LAT", "58.1467")
	t.Setenv("WEATHERLOG_AUTOLOG_LON", "7.9956")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/journal.json", cfg.StorePath)
	assert.Equal(t, "my-journal/2.0 (me@example.org)", cfg.UserAgent)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.Autolog.Enabled)
	assert.Equal(t, "07:15", cfg.Autolog.At)
	assert.Equal(t, 58.1467, cfg.Autolog.Home().Latitude)
	assert.Equal(t, 7.9956, cfg.Autolog.Home().Longitude)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string][2]string{
		"bad duration": {"WEATHERLOG_HTTP_TIMEOUT", "soon"},
		"bad time":     {"WEATHERLOG_AUTOLOG_AT", "25:99"},
		"bad lat":      {"WEATHERLOG_AUTOLOG_LAT", "123"},
		"bad port":     {"WEATHERLOG_PORT", "http"},
		"bad url":      {"WEATHERLOG_METNO_BASE_URL", "not a url"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_AutologNeedsHome(t *testing.T) {
	t.Setenv("WEATHERLOG_AUTOLOG_ENABLED", "true")

	_, err := FromEnv()
	assert.ErrorIs(t, err, errAutologHomeUnset)

	t.Setenv("WEATHERLOG_AUTOLOG_LAT", "0")
	t.Setenv("WEATHERLOG_AUTOLOG_LON", "9.5")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 9.5, cfg.Autolog.Home().Longitude)
}
