package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("no_null_bytes", NoNullBytes)
}

// New returns a validator with the custom rules already registered
func New() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// NoNullBytes rejects strings containing U+0000, which PostgreSQL text columns cannot store
func NoNullBytes(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}
