package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// "role" only accepts labels ParseRole knows about.
	err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := ParseRole(fl.Field().String())
		return err == nil
	})
	if err != nil {
		panic(fmt.Sprintf("model: register role validation: %v", err))
	}
	return v
}

// Validate checks the struct tags of any model record.
func Validate(record any) error {
	return validate.Struct(record)
}
