package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// ErrNoGeocoder is returned by Resolve when place lookup is not configured.
var ErrNoGeocoder = errors.New("place lookup is not configured")

// Service wires the observation journal and the forecast source together.
type Service struct {
	store      Store
	forecaster Forecaster
	geocoder   Geocoder
	now        func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithGeocoder enables place-name lookup.
func WithGeocoder(g Geocoder) Option {
	return func(s *Service) {
		s.geocoder = g
	}
}

// WithClock overrides the wall clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new Service.
func NewService(store Store, forecaster Forecaster, opts ...Option) *Service {
	s := &Service{
		store:      store,
		forecaster: forecaster,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current calendar date in UTC.
func (s *Service) Today() time.Time {
	return Day(s.now())
}

// CanGeocode reports whether Resolve can succeed.
func (s *Service) CanGeocode() bool {
	return s.geocoder != nil
}

// RecordObservation saves obs under dateKey, replacing any earlier entry for that date.
func (s *Service) RecordObservation(dateKey string, obs Observation) error {
	date, err := ParseDateKey(dateKey)
	if err != nil {
		return err
	}
	return s.store.Save(DateKey(date), obs)
}

// RecordObservationIfAbsent saves obs under dateKey unless the date already has
// an entry. It reports whether obs was written.
func (s *Service) RecordObservationIfAbsent(dateKey string, obs Observation) (bool, error) {
	date, err := ParseDateKey(dateKey)
	if err != nil {
		return false, err
	}
	return s.store.SaveIfAbsent(DateKey(date), obs)
}

// Observation returns the stored observation for dateKey or ErrNotFound.
func (s *Service) Observation(dateKey string) (Observation, error) {
	date, err := ParseDateKey(dateKey)
	if err != nil {
		return Observation{}, err
	}
	return s.store.Get(DateKey(date))
}

// Dates lists the journal keys in chronological order.
func (s *Service) Dates() []string {
	return s.store.Dates()
}

// Resolve turns a place name into coordinates.
func (s *Service) Resolve(ctx context.Context, place Place) (Coordinates, error) {
	if s.geocoder == nil {
		return Coordinates{}, ErrNoGeocoder
	}
	if err := Validate(place); err != nil {
		return Coordinates{}, err
	}
	return s.geocoder.Geocode(ctx, place)
}

// Forecast looks up the upstream sample for a single date.
func (s *Service) Forecast(ctx context.Context, at Coordinates, dateKey string) (ForecastSample, error) {
	if err := Validate(at); err != nil {
		return ForecastSample{}, err
	}
	date, err := ParseDateKey(dateKey)
	if err != nil {
		return ForecastSample{}, err
	}
	return s.forecaster.Fetch(ctx, at, date)
}

// EntryFunc receives each report entry as soon as its lookup completes.
type EntryFunc func(ReportEntry)

// WeekReport fetches one forecast per date of ISO week `week` of `year`.
// emit may be nil.
func (s *Service) WeekReport(ctx context.Context, at Coordinates, year, week int, emit EntryFunc) (Report, error) {
	dates, err := WeekRange(year, week)
	if err != nil {
		return Report{}, err
	}
	return s.runReport(ctx, at, fmt.Sprintf("week %d of %d", week, year), dates, emit)
}

// MonthReport fetches one forecast per date of `month` in `year`.
// emit may be nil.
func (s *Service) MonthReport(ctx context.Context, at Coordinates, year, month int, emit EntryFunc) (Report, error) {
	dates, err := MonthRange(year, month)
	if err != nil {
		return Report{}, err
	}
	return s.runReport(ctx, at, fmt.Sprintf("%s %d", time.Month(month), year), dates, emit)
}

// runReport calls the forecaster once per date, strictly in order and one at a time.
// A failed date is recorded and the range continues.
func (s *Service) runReport(ctx context.Context, at Coordinates, title string, dates DateRange, emit EntryFunc) (Report, error) {
	if err := Validate(at); err != nil {
		return Report{}, err
	}

	report := Report{
		ID:          uuid.NewString(),
		Title:       title,
		Coordinates: at,
		Entries:     make([]ReportEntry, 0, len(dates)),
	}

	if keys := dates.Keys(); len(keys) > 0 {
		log.Printf("DEBUG: report %s (%s) at %s: %d dates, %s..%s", report.ID, title, at, len(keys), keys[0], keys[len(keys)-1])
	}

	for _, d := range dates {
		sample, err := s.forecaster.Fetch(ctx, at, d)
		entry := newEntry(d, sample, err)
		if entry.Status == StatusUnavailable {
			log.Printf("WARN: report %s: %s lookup for %s failed: %v", report.ID, s.forecaster.Name(), DateKey(d), err)
		}
		report.Entries = append(report.Entries, entry)
		if emit != nil {
			emit(entry)
		}
	}

	log.Printf("DEBUG: report %s finished: %d/%d dates with data", report.ID, report.Found(), len(dates))
	return report, nil
}
