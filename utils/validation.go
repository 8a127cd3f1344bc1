package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation on the object
func Validate(obj any) error {
	return validate.Struct(obj)
}
