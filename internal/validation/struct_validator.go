package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/GardenSim_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	structValidator *Validator
	initOnce        sync.Once
)

// GetValidator returns the shared struct validator
func GetValidator() *Validator {
	initOnce.Do(func() {
		structValidator = &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
	})
	return structValidator
}

// ValidateStruct validates a struct using its `validate` tags.
// Field failures are reported as domain.ErrInvalidInput.
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fields := FormatValidationError(err)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(parts, "; "))
}

// FormatValidationError formats validation errors into a field -> message map
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "invalid value"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "this field is required"
		case "oneof":
			errs[field] = fmt.Sprintf("must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("must be at least %s", e.Param())
		default:
			errs[field] = "invalid value"
		}
	}

	return errs
}
