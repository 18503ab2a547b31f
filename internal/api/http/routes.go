package httpapi

import (
	"errors"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-log/internal/common"
	"github.com/i474232898/weather-log/internal/weather"
	"github.com/i474232898/weather-log/internal/weather/providers"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/observations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"dates": service.Dates()})
	})

	v1.Get("/observations/:date", func(c *fiber.Ctx) error {
		date := c.Params("date")
		obs, err := service.Observation(date)
		if err != nil {
			return toFiberError(err, "no weather data for requested date")
		}
		return c.JSON(fiber.Map{
			"date":        date,
			"observation": obs,
		})
	})

	v1.Put("/observations/:date", func(c *fiber.Ctx) error {
		var body observationBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "body must be a JSON object with numeric temperature, precipitation and wind_speed")
		}
		if err := validate.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		date := c.Params("date")
		obs := body.toObservation()
		if err := service.RecordObservation(date, obs); err != nil {
			return toFiberError(err, "")
		}
		return c.JSON(fiber.Map{
			"date":        date,
			"observation": obs,
		})
	})

	v1.Get("/forecast/:date", func(c *fiber.Ctx) error {
		at, err := coordinatesFromQuery(c, service)
		if err != nil {
			return err
		}
		date := c.Params("date")
		sample, err := service.Forecast(c.UserContext(), at, date)
		if err != nil {
			return toFiberError(err, "no forecast data for requested date")
		}
		return c.JSON(fiber.Map{
			"date":        date,
			"coordinates": at,
			"sample":      sample,
		})
	})

	v1.Get("/reports/week", func(c *fiber.Ctx) error {
		at, err := coordinatesFromQuery(c, service)
		if err != nil {
			return err
		}
		year, err := common.ParseInt("year", c.Query("year"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		week, err := common.ParseInt("week", c.Query("week"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.WeekReport(c.UserContext(), at, year, week, nil)
		if err != nil {
			return toFiberError(err, "")
		}
		return c.JSON(report)
	})

	v1.Get("/reports/month", func(c *fiber.Ctx) error {
		at, err := coordinatesFromQuery(c, service)
		if err != nil {
			return err
		}
		year, err := common.ParseInt("year", c.Query("year"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		month, err := common.ParseInt("month", c.Query("month"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.MonthReport(c.UserContext(), at, year, month, nil)
		if err != nil {
			return toFiberError(err, "")
		}
		return c.JSON(report)
	})
}

// observationBody uses pointers so a missing field is told apart from zero.
type observationBody struct {
	Temperature   *float64 `json:"temperature" validate:"required"`
	Precipitation *float64 `json:"precipitation" validate:"required"`
	WindSpeed     *float64 `json:"wind_speed" validate:"required"`
}

func (b observationBody) toObservation() weather.Observation {
	return weather.Observation{
		Temperature:   *b.Temperature,
		Precipitation: *b.Precipitation,
		WindSpeed:     *b.WindSpeed,
	}
}

// coordinatesFromQuery reads lat/lon, falling back to city/country via the geocoder.
func coordinatesFromQuery(c *fiber.Ctx, service *weather.Service) (weather.Coordinates, error) {
	lat, lon := c.Query("lat"), c.Query("lon")
	if lat != "" || lon != "" {
		at, err := common.ParseCoordinates(lat, lon)
		if err != nil {
			return at, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return at, nil
	}

	place := weather.Place{City: c.Query("city"), Country: c.Query("country")}
	if place.City == "" && place.Country == "" {
		return weather.Coordinates{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon (or city and country) query parameters are required")
	}
	at, err := service.Resolve(c.UserContext(), place)
	if err != nil {
		if errors.Is(err, weather.ErrNoGeocoder) || errors.Is(err, weather.ErrInvalidInput) {
			return at, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return at, fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
	return at, nil
}

// toFiberError maps domain errors onto HTTP statuses.
func toFiberError(err error, notFoundMsg string) error {
	var urlErr *url.Error
	switch {
	case errors.Is(err, providers.ErrUpstreamUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, weather.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = err.Error()
		}
		return fiber.NewError(fiber.StatusNotFound, notFoundMsg)
	case errors.Is(err, weather.ErrMalformedResponse), errors.As(err, &urlErr):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
