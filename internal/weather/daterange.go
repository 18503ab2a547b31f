package weather

import (
	"fmt"
	"time"
)

// DateRange is an ordered run of consecutive calendar dates at midnight UTC.
type DateRange []time.Time

// Keys returns the DD-MM-YYYY key of every date in the range.
func (r DateRange) Keys() []string {
	keys := make([]string, len(r))
	for i, d := range r {
		keys[i] = DateKey(d)
	}
	return keys
}

// ISOWeekStart returns the Monday of ISO-8601 week `week` of `year`.
// Week 1 is the week containing 4 January, so it may start in December of
// the previous year.
func ISOWeekStart(year, week int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	// Monday = 0 ... Sunday = 6
	offset := (int(jan4.Weekday()) + 6) % 7
	return jan4.AddDate(0, 0, -offset+7*(week-1))
}

// ISOWeeksInYear reports 52 or 53.
func ISOWeeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// WeekRange returns the 7 dates of ISO week `week` of `year`, Monday first.
func WeekRange(year, week int) (DateRange, error) {
	if err := Validate(WeekQuery{Year: year, Week: week}); err != nil {
		return nil, err
	}
	if n := ISOWeeksInYear(year); week > n {
		return nil, fmt.Errorf("%w: %d has only %d ISO weeks", ErrInvalidInput, year, n)
	}

	start := ISOWeekStart(year, week)
	r := make(DateRange, 7)
	for i := range r {
		r[i] = start.AddDate(0, 0, i)
	}
	return r, nil
}

// MonthRange returns every date of `month` in `year`, from the 1st to the last day inclusive.
func MonthRange(year, month int) (DateRange, error) {
	if err := Validate(MonthQuery{Year: year, Month: month}); err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the following month normalises to the last day of this one,
	// December rolling into January of year+1.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)

	r := make(DateRange, 0, last.Day())
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		r = append(r, d)
	}
	return r, nil
}
