package utils

import (
	"errors"
	"reflect"
	"strings"

	"github.com/badoux/checkmail"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		return checkmail.ValidateFormat(fl.Field().String()) == nil
	})

	return v
}

// ValidateStruct validates every field of s.
func ValidateStruct(s interface{}) error {
	return formatValidationErrors(validate.Struct(s))
}

// ValidatePartial validates only the named struct fields of s. Used for partial updates,
// where absent fields keep their stored values.
func ValidatePartial(s interface{}, fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return formatValidationErrors(validate.StructPartial(s, fields...))
}

func formatValidationErrors(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	// Format validation errors
	var msgs []string
	for _, err := range verrs {
		field := err.Field()
		tag := err.Tag()
		param := err.Param()
		isString := err.Kind() == reflect.String

		switch tag {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			if isString {
				msgs = append(msgs, field+" must be at least "+param+" characters")
			} else {
				msgs = append(msgs, field+" must be at least "+param)
			}
		case "max":
			if isString {
				msgs = append(msgs, field+" must be at most "+param+" characters")
			} else {
				msgs = append(msgs, field+" must be at most "+param)
			}
		case "gte":
			msgs = append(msgs, field+" must be greater than or equal to "+param)
		case "email", "mailbox":
			msgs = append(msgs, field+" must be a valid email")
		case "datetime":
			msgs = append(msgs, field+" must be a date in YYYY-MM-DD format")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return errors.New(strings.Join(msgs, ", "))
}
