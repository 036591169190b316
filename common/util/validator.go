package util

import (
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var errors []string
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			field := fieldError.Field()
			switch fieldError.Tag() {
			case "required":
				errors = append(errors, field+" is required")
			case "min":
				errors = append(errors, field+" must be at least "+fieldError.Param()+unit(fieldError.Kind()))
			case "max":
				errors = append(errors, field+" must be at most "+fieldError.Param()+unit(fieldError.Kind()))
			case "gte", "gt":
				errors = append(errors, field+" must be greater than or equal to "+fieldError.Param())
			case "lte", "lt":
				errors = append(errors, field+" must be less than or equal to "+fieldError.Param())
			case "oneof":
				errors = append(errors, field+" must be one of: "+fieldError.Param())
			case "hexcolor":
				errors = append(errors, field+" must be a hex color")
			case "url":
				errors = append(errors, field+" must be a valid URL")
			default:
				errors = append(errors, field+" is invalid")
			}
		}
	}
	return errors
}

func unit(kind reflect.Kind) string {
	switch kind {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}
