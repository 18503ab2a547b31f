package weather

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks s against its `validate` tags and wraps failures in ErrInvalidInput.
func Validate(s any) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// WeekQuery selects an ISO week of a year.
type WeekQuery struct {
	Year int `json:"year" validate:"gte=1,lte=9999"`
	Week int `json:"week" validate:"gte=1,lte=53"`
}

// MonthQuery selects a calendar month of a year.
type MonthQuery struct {
	Year  int `json:"year" validate:"gte=1,lte=9999"`
	Month int `json:"month" validate:"gte=1,lte=12"`
}
