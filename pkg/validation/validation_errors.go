package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"JobID":       "Job ID",
	"ResumeID":    "Resume ID",
	"CoverLetter": "Cover letter",
	"UserID":      "User ID",
}

// FormatValidationErrors converts validator.ValidationErrors to readable messages.
// Anything that is not a validation error comes back as its own message.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins the formatted errors into one detail string
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "no_null_bytes":
		return fmt.Sprintf("%s must not contain NUL characters", label)

	default:
		return fmt.Sprintf("%s failed validation (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-facing label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
