package weather

import (
	"encoding/json"
	"errors"
	"time"
)

// EntryStatus classifies one date of a report.
type EntryStatus string

const (
	StatusOK          EntryStatus = "ok"
	StatusNotFound    EntryStatus = "not_found"
	StatusUnavailable EntryStatus = "unavailable"
)

// ReportEntry is the outcome of one forecast lookup inside a range report.
type ReportEntry struct {
	Date   time.Time
	Sample *ForecastSample
	Status EntryStatus
	Err    error
}

// MarshalJSON renders the date as a journal key and drops the raw error.
func (e ReportEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string          `json:"date"`
		Status EntryStatus     `json:"status"`
		Sample *ForecastSample `json:"sample"`
	}{
		Date:   DateKey(e.Date),
		Status: e.Status,
		Sample: e.Sample,
	})
}

// Report is a chronologically ordered sequence of per-date forecast lookups.
// No aggregate (min/max/mean) is computed over the entries.
type Report struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Coordinates Coordinates   `json:"coordinates"`
	Entries     []ReportEntry `json:"entries"`
}

// Found counts entries carrying a sample.
func (r Report) Found() int {
	n := 0
	for _, e := range r.Entries {
		if e.Sample != nil {
			n++
		}
	}
	return n
}

// newEntry maps the result of a single Fetch onto a report entry.
func newEntry(date time.Time, sample ForecastSample, err error) ReportEntry {
	switch {
	case err == nil:
		s := sample
		return ReportEntry{Date: date, Sample: &s, Status: StatusOK}
	case errors.Is(err, ErrNotFound):
		return ReportEntry{Date: date, Status: StatusNotFound, Err: err}
	default:
		return ReportEntry{Date: date, Status: StatusUnavailable, Err: err}
	}
}
