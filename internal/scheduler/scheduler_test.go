package scheduler

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-log/internal/store"
	"github.com/i474232898/weather-log/internal/weather"
)

type fakeForecaster struct {
	sample weather.ForecastSample
	err    error
	calls  []string
	during func()
}

func (f *fakeForecaster) Name() string { return "fake" }

func (f *fakeForecaster) Fetch(_ context.Context, _ weather.Coordinates, date time.Time) (weather.ForecastSample, error) {
	f.calls = append(f.calls, weather.DateKey(date))
	if f.during != nil {
		f.during()
	}
	return f.sample, f.err
}

var home = weather.Coordinates{Latitude: 58.1467, Longitude: 7.9956}

func newService(t *testing.T, f weather.Forecaster) *weather.Service {
	t.Helper()
	journal, err := store.Open(filepath.Join(t.TempDir(), "weather_data.json"))
	require.NoError(t, err)
	now := time.Date(2024, time.June, 15, 18, 0, 0, 0, time.UTC)
	return weather.NewService(journal, f, weather.WithClock(func() time.Time { return now }))
}

func TestRunOnce_JournalsTodaysForecast(t *testing.T) {
	f := &fakeForecaster{sample: weather.ForecastSample{Temperature: 17, WindSpeed: 4, Precipitation: 0.2}}
	svc := newService(t, f)

	wrote, err := New(svc, home, "18:00").RunOnce(context.Background())
	require.NoError(t, err)
	assert.True(t, wrote)
	assert.Equal(t, []string{"15-06-2024"}, f.calls)

	obs, err := svc.Observation("15-06-2024")
	require.NoError(t, err)
	assert.Equal(t, weather.Observation{Temperature: 17, Precipitation: 0.2, WindSpeed: 4}, obs)
}

func TestRunOnce_KeepsUserObservation(t *testing.T) {
	f := &fakeForecaster{sample: weather.ForecastSample{Temperature: 17}}
	svc := newService(t, f)
	mine := weather.Observation{Temperature: 21, Precipitation: 0, WindSpeed: 1}
	require.NoError(t, svc.RecordObservation("15-06-2024", mine))

	wrote, err := New(svc, home, "18:00").RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Empty(t, f.calls)

	obs, err := svc.Observation("15-06-2024")
	require.NoError(t, err)
	assert.Equal(t, mine, obs)
}

func TestRunOnce_UserEntryDuringLookupWins(t *testing.T) {
	f := &fakeForecaster{sample: weather.ForecastSample{Temperature: 17}}
	svc := newService(t, f)
	mine := weather.Observation{Temperature: 21, Precipitation: 0.5, WindSpeed: 2}
	f.during = func() {
		require.NoError(t, svc.RecordObservation("15-06-2024", mine))
	}

	wrote, err := New(svc, home, "18:00").RunOnce(context.Background())
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, []string{"15-06-2024"}, f.calls)

	obs, err := svc.Observation("15-06-2024")
	require.NoError(t, err)
	assert.Equal(t, mine, obs)
}

func TestRunOnce_NoForecast(t *testing.T) {
	f := &fakeForecaster{err: weather.ErrNotFound}
	svc := newService(t, f)

	wrote, err := New(svc, home, "18:00").RunOnce(context.Background())
	assert.ErrorIs(t, err, weather.ErrNotFound)
	assert.False(t, wrote)
	assert.Empty(t, svc.Dates())
}

func TestStartStop(t *testing.T) {
	s := New(newService(t, &fakeForecaster{}), home, "06:30")
	require.NoError(t, s.Start())
	s.Stop()
}
