// Package shell implements the interactive menu of the weather journal.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/i474232898/weather-log/internal/common"
	"github.com/i474232898/weather-log/internal/weather"
)

const menu = `Welcome to the Weather Log App!
1. Enter weather data for a day
2. View weather report for a day
3. View weather report for a week
4. View weather report for a month
5. Exit
`

// Shell reads menu choices and prompted values line by line.
// Invalid input aborts the current action and returns to the menu.
type Shell struct {
	service *weather.Service
	in      *bufio.Scanner
	out     io.Writer
}

func New(service *weather.Service, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		service: service,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loops until the user exits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, menu)
		choice, err := s.prompt("Enter your choice (1-5): ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case "1":
			err = s.recordDay()
		case "2":
			err = s.showDay()
		case "3":
			err = s.weekReport(ctx)
		case "4":
			err = s.monthReport(ctx)
		case "5":
			fmt.Fprintln(s.out, "Exiting Weather Log App...")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice. Please enter a number between 1 and 5.")
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Shell) recordDay() error {
	date, err := s.promptDate()
	if err != nil {
		return err
	}
	temp, err := s.promptFloat("Enter the temperature: ", "temperature")
	if err != nil {
		return err
	}
	precip, err := s.promptFloat("Enter the precipitation: ", "precipitation")
	if err != nil {
		return err
	}
	wind, err := s.promptFloat("Enter the wind speed: ", "wind speed")
	if err != nil {
		return err
	}

	obs := weather.Observation{Temperature: temp, Precipitation: precip, WindSpeed: wind}
	if err := s.service.RecordObservation(date, obs); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Weather data saved successfully.")
	return nil
}

func (s *Shell) showDay() error {
	date, err := s.promptDate()
	if err != nil {
		return err
	}
	obs, err := s.service.Observation(date)
	if errors.Is(err, weather.ErrNotFound) {
		fmt.Fprintf(s.out, "No weather data found for %s.\n", date)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Weather data for %s:\n", date)
	fmt.Fprintf(s.out, "Temperature: %v°C\n", obs.Temperature)
	fmt.Fprintf(s.out, "Precipitation: %v mm\n", obs.Precipitation)
	fmt.Fprintf(s.out, "Wind Speed: %v m/s\n", obs.WindSpeed)
	return nil
}

func (s *Shell) weekReport(ctx context.Context) error {
	at, err := s.promptLocation(ctx)
	if err != nil {
		return err
	}
	week, err := s.promptInt("Enter the week number (1-53): ", "week number")
	if err != nil {
		return err
	}
	year, err := s.promptInt("Enter the year (e.g., 2024): ", "year")
	if err != nil {
		return err
	}
	if _, err := weather.WeekRange(year, week); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Weather report for week number %d:\n", week)
	_, err = s.service.WeekReport(ctx, at, year, week, s.printEntry)
	return err
}

func (s *Shell) monthReport(ctx context.Context) error {
	at, err := s.promptLocation(ctx)
	if err != nil {
		return err
	}
	month, err := s.promptInt("Enter the month number (1-12): ", "month")
	if err != nil {
		return err
	}
	year, err := s.promptInt("Enter the year (e.g., 2024): ", "year")
	if err != nil {
		return err
	}
	if _, err := weather.MonthRange(year, month); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Weather report for %s %d:\n", time.Month(month), year)
	_, err = s.service.MonthReport(ctx, at, year, month, s.printEntry)
	return err
}

func (s *Shell) printEntry(e weather.ReportEntry) {
	fmt.Fprintf(s.out, "Date: %s\n", weather.DateKey(e.Date))
	if e.Sample == nil {
		fmt.Fprintln(s.out, "No forecast data available for this date.")
		return
	}
	fmt.Fprintln(s.out, "Forecast:")
	fmt.Fprintf(s.out, "Temperature: %v°C\n", e.Sample.Temperature)
	fmt.Fprintf(s.out, "Wind Speed: %v m/s\n", e.Sample.WindSpeed)
	fmt.Fprintf(s.out, "Precipitation: %v mm\n", e.Sample.Precipitation)
}

// promptLocation asks for coordinates. With a geocoder configured, a
// non-numeric latitude is taken as a city name and a country is asked for.
func (s *Shell) promptLocation(ctx context.Context) (weather.Coordinates, error) {
	lat, err := s.prompt("Enter the latitude: ")
	if err != nil {
		return weather.Coordinates{}, err
	}
	if _, perr := common.ParseFloat("latitude", lat); perr != nil && s.service.CanGeocode() {
		country, err := s.prompt("Enter the country: ")
		if err != nil {
			return weather.Coordinates{}, err
		}
		return s.service.Resolve(ctx, weather.Place{City: lat, Country: country})
	}

	lon, err := s.prompt("Enter the longitude: ")
	if err != nil {
		return weather.Coordinates{}, err
	}
	return common.ParseCoordinates(lat, lon)
}

func (s *Shell) promptDate() (string, error) {
	raw, err := s.prompt("Enter the date (DD-MM-YYYY): ")
	if err != nil {
		return "", err
	}
	if _, err := weather.ParseDateKey(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *Shell) promptFloat(label, field string) (float64, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	return common.ParseFloat(field, raw)
}

func (s *Shell) promptInt(label, field string) (int, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return 0, err
	}
	return common.ParseInt(field, raw)
}

func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
