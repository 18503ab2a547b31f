package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-log/internal/weather"
)

// Scheduler journals the forecast for a home location once a day.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	home      weather.Coordinates
	at        string
	timeout   time.Duration
}

// New creates a new Scheduler that fires daily at `at` (HH:MM, UTC).
func New(service *weather.Service, home weather.Coordinates, at string) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		home:      home,
		at:        at,
		timeout:   30 * time.Second,
	}
}

// Start schedules the daily job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At(s.at).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if _, err := s.RunOnce(ctx); err != nil {
			log.Printf("ERROR: scheduler: auto-journal failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("INFO: scheduler: auto-journal for %s daily at %s UTC", s.home, s.at)
	return nil
}

// RunOnce saves today's forecast as today's observation unless the user already
// recorded one. It reports whether an observation was written.
func (s *Scheduler) RunOnce(ctx context.Context) (bool, error) {
	key := weather.DateKey(s.service.Today())

	if _, err := s.service.Observation(key); err == nil {
		log.Printf("INFO: scheduler: %s already journaled; skipping", key)
		return false, nil
	} else if !errors.Is(err, weather.ErrNotFound) {
		return false, err
	}

	sample, err := s.service.Forecast(ctx, s.home, key)
	if err != nil {
		return false, err
	}

	obs := weather.Observation{
		Temperature:   sample.Temperature,
		Precipitation: sample.Precipitation,
		WindSpeed:     sample.WindSpeed,
	}
	wrote, err := s.service.RecordObservationIfAbsent(key, obs)
	if err != nil {
		return false, err
	}
	if !wrote {
		log.Printf("INFO: scheduler: %s was journaled during the forecast lookup; keeping it", key)
		return false, nil
	}
	log.Printf("INFO: scheduler: journaled forecast for %s", key)
	return true, nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
