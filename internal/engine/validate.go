package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/maniac234/ascens-o-e-evolu-o-85f001d4/internal/daykey"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("candle", func(fl validator.FieldLevel) bool {
		return CandleColor(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("practice", func(fl validator.FieldLevel) bool {
		return Practice(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("daykey", func(fl validator.FieldLevel) bool {
		return daykey.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("monthkey", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return len(s) == len(daykey.MonthLayout) && daykey.Valid(s+"-01")
	})
	return v
}

func ValidateMission(m Mission) error {
	return validate.Struct(m)
}

// ValidateDailyLog also requires the map key to match the log's date.
func ValidateDailyLog(key string, l DailyLog) error {
	if err := validate.Struct(l); err != nil {
		return err
	}
	if key != l.Date {
		return fmt.Errorf("log keyed %q has date %q", key, l.Date)
	}
	return nil
}

func ValidateMonthlyStats(m MonthlyStats) error {
	return validate.Struct(m)
}

func ValidateBottleCompletion(b BottleCompletion) error {
	return validate.Struct(b)
}

func validateDayKey(s string) error {
	if !daykey.Valid(s) {
		return fmt.Errorf("not a day key: %q", s)
	}
	return nil
}
