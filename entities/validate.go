package entities

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"bookStore/models"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a json field name to a readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v[k])
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return models.ErrBadRequest
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks s against its validate tags. It returns nil or a non-empty
// ValidationErrors.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"": err.Error()}
	}
	res := ValidationErrors{}
	for _, fe := range fieldErrs {
		if _, ok := res[fe.Field()]; ok {
			continue
		}
		res[fe.Field()] = message(fe)
	}
	return res
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch field {
	case "phone":
		if fe.Tag() != "required" {
			return "phone must be 10 digits"
		}
	case "zipcode":
		if fe.Tag() != "required" {
			return "zipcode must be 5 digits"
		}
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email address"
	case "min":
		return field + " must not be empty"
	}
	return field + " is invalid"
}
