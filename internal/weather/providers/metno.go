package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-log/internal/weather"
)

// DefaultMetNoURL is the met.no locationforecast compact endpoint.
const DefaultMetNoURL = "https://api.met.no/weatherapi/locationforecast/2.0/compact"

var validate = validator.New()

// MetNoProvider implements weather.Forecaster for the met.no locationforecast API.
type MetNoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewMetNoProvider creates a provider. An empty baseURL selects DefaultMetNoURL.
// met.no rejects requests without an identifying User-Agent, so userAgent
// should name the application and a contact address.
func NewMetNoProvider(client *http.Client, baseURL, userAgent string) *MetNoProvider {
	if baseURL == "" {
		baseURL = DefaultMetNoURL
	}
	return &MetNoProvider{
		name:    "met.no",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:    client,
			UserAgent: userAgent,
		},
		circuit: newCircuitBreaker("metno"),
	}
}

func (p *MetNoProvider) Name() string {
	return p.name
}

// Fetch requests the series anchored at 12:00 UTC of date and returns the
// first timeslot falling on that calendar date (UTC).
func (p *MetNoProvider) Fetch(ctx context.Context, at weather.Coordinates, date time.Time) (weather.ForecastSample, error) {
	day := weather.Day(date)
	noon := day.Add(12 * time.Hour)

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("lat", strconv.FormatFloat(at.Latitude, 'f', 4, 64))
		values.Set("lon", strconv.FormatFloat(at.Longitude, 'f', 4, 64))
		values.Set("time", noon.Format(time.RFC3339))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			log.Printf("WARN: failed to fetch data from %s for %s at %s: status code %d",
				p.name, weather.DateKey(day), at, statusErr.StatusCode)
		}
		return weather.ForecastSample{}, err
	}
	defer resp.Body.Close()

	payload, err := parseCompact(resp.Body)
	if err != nil {
		return weather.ForecastSample{}, err
	}
	return payload.sampleFor(day)
}

// compactResponse is the subset of the locationforecast compact document we read.
type compactResponse struct {
	Properties struct {
		Timeseries []timeslot `json:"timeseries"`
	} `json:"properties"`
}

type timeslot struct {
	Time string `json:"time" validate:"required"`
	Data struct {
		Instant struct {
			Details struct {
				AirTemperature *float64 `json:"air_temperature" validate:"required"`
				WindSpeed      *float64 `json:"wind_speed" validate:"required"`
			} `json:"details"`
		} `json:"instant"`
		Next1Hours *struct {
			Details struct {
				PrecipitationAmount *float64 `json:"precipitation_amount"`
			} `json:"details"`
		} `json:"next_1_hours,omitempty"`
	} `json:"data"`
}

func parseCompact(body io.Reader) (compactResponse, error) {
	var payload compactResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return compactResponse{}, fmt.Errorf("%w: %v", weather.ErrMalformedResponse, err)
	}
	return payload, nil
}

// sampleFor scans the series in order and extracts the first timeslot whose
// UTC date equals day. Matching is by date only, not nearest time.
func (c compactResponse) sampleFor(day time.Time) (weather.ForecastSample, error) {
	want := weather.DateKey(day)
	for i, slot := range c.Properties.Timeseries {
		ts, err := time.Parse(time.RFC3339, slot.Time)
		if err != nil {
			return weather.ForecastSample{}, fmt.Errorf("%w: timeslot %d: bad time %q", weather.ErrMalformedResponse, i, slot.Time)
		}
		if weather.DateKey(ts) != want {
			continue
		}
		if err := validate.Struct(slot); err != nil {
			return weather.ForecastSample{}, fmt.Errorf("%w: timeslot %s: %v", weather.ErrMalformedResponse, slot.Time, err)
		}

		details := slot.Data.Instant.Details
		sample := weather.ForecastSample{
			Temperature: *details.AirTemperature,
			WindSpeed:   *details.WindSpeed,
		}
		if next := slot.Data.Next1Hours; next != nil && next.Details.PrecipitationAmount != nil {
			sample.Precipitation = *next.Details.PrecipitationAmount
		}
		return sample, nil
	}
	return weather.ForecastSample{}, fmt.Errorf("%w: no timeslot for %s", weather.ErrNotFound, want)
}
