// Package validation wraps go-playground/validator with a shared instance and
// readable field errors.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single failed rule on a struct field.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Value   interface{}
	Message string
}

func (e FieldError) Error() string {
	return e.Message
}

// ValidationErrors collects every failed rule for one struct.
type ValidationErrors struct {
	Fields []FieldError
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}

	messages := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the shared validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Unlike the built-in "timezone" rule, "tz" accepts Local.
		_ = validate.RegisterValidation("tz", isTimezone)
	})
	return validate
}

// ValidateStruct returns nil or a *ValidationErrors describing every failed field.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &ValidationErrors{
			Fields: []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}},
		}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: translateError(fe),
		}
	}
	return &ValidationErrors{Fields: fields}
}

var errorMessageTemplates = map[string]string{
	"required":      "%s is required",
	"tz":            "%s must be an IANA timezone name or Local",
	"hostname_port": "%s must be a host:port address",
}

func isTimezone(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "Local" {
		return true
	}
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

var errorMessageWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	tag := fe.Tag()
	param := fe.Param()

	if template, ok := errorMessageTemplates[tag]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := errorMessageWithParam[tag]; ok {
		return fmt.Sprintf(template, field, param)
	}

	switch tag {
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
