// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendwise/internal/filter"
	"spendwise/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("currency_code", validateCurrencyCode)
		_ = v.RegisterValidation("date_format", validateDateFormat)
		_ = v.RegisterValidation("payment_method", validatePaymentMethod)
		_ = v.RegisterValidation("recurring_pattern", validateRecurringPattern)
		_ = v.RegisterValidation("date_range", validateDateRange)
	}
}

func validateCurrencyCode(fl validator.FieldLevel) bool {
	_, ok := models.CurrencyByCode(fl.Field().String())
	return ok
}

func validateDateFormat(fl validator.FieldLevel) bool {
	switch models.DateFormat(fl.Field().String()) {
	case models.DateFormatMDY, models.DateFormatDMY:
		return true
	}
	return false
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	return models.IsPaymentMethod(fl.Field().String())
}

func validateRecurringPattern(fl validator.FieldLevel) bool {
	switch models.RecurringPattern(fl.Field().String()) {
	case models.RecurringDaily, models.RecurringWeekly, models.RecurringMonthly, models.RecurringYearly:
		return true
	}
	return false
}

func validateDateRange(fl validator.FieldLevel) bool {
	return filter.DateRange(fl.Field().String()).Valid()
}
