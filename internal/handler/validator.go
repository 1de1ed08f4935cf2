package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/RewardEngine_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("reason", validateReason)
		_ = v.RegisterValidation("userid", validateUserID)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a field to message
// map without leaking struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "reason":
			errs[field] = "Unknown reward reason"
		case "userid":
			errs[field] = "Invalid user id"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// ValidReasons lists the reward reasons accepted from callers
var ValidReasons = map[domain.RewardReason]bool{
	domain.ReasonReferral:    true,
	domain.ReasonTask:        true,
	domain.ReasonDaily:       true,
	domain.ReasonSlotMachine: true,
	domain.ReasonAdmin:       true,
}

func validateReason(fl validator.FieldLevel) bool {
	reason := fl.Field().String()
	// Empty is handled by the required tag
	if reason == "" {
		return true
	}
	return ValidReasons[domain.RewardReason(strings.ToUpper(reason))]
}

// validateUserID rejects ids with whitespace or control characters
func validateUserID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if id == "" || len(id) > MaxUserIDLength {
		return false
	}
	return !strings.ContainsFunc(id, func(r rune) bool {
		return r <= ' ' || r == 0x7f
	})
}
