package middleware

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)

// SetupValidator configures the gin binding validator with JSON field
// names and custom tags.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in errors
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	// sku validates channel and catalog identifiers. Whitespace is
	// allowed at the edges since identifiers are normalized on write.
	_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		return value != "" && skuPattern.MatchString(value)
	})
}

// ValidationMessage renders a validator error as a readable message.
// Non-validator errors fall back to their own Error string.
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		parts = append(parts, fieldMessage(e))
	}
	return strings.Join(parts, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "sku":
		return fmt.Sprintf("%s must contain only letters, digits, underscores and dashes", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
