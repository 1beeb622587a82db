package utils

import (
	"Foodgram-Backend/domain"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	Validate *validator.Validate

	usernameRegex  = regexp.MustCompile(`^[\w.@+-]+$`)
	dataImageRegex = regexp.MustCompile(`^data:image/(png|jpe?g);base64,`)
)

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("data_image", func(fl validator.FieldLevel) bool {
		return dataImageRegex.MatchString(fl.Field().String())
	})
	Validate = v
}

// TranslateValidationError turns validator errors into a field keyed
// *domain.ValidationError. Other errors pass through unchanged.
func TranslateValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		// drop the top level struct name: "RecipeRequest.ingredients[0].amount"
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		if _, exists := fields[key]; !exists {
			fields[key] = fieldMessage(fe)
		}
	}
	return &domain.ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("ensure this field has at least %s items or characters", fe.Param())
	case "max":
		if fe.Kind() == reflect.Int {
			return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
		}
		return fmt.Sprintf("ensure this field has no more than %s items or characters", fe.Param())
	case "email":
		return "enter a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "username":
		return "letters, digits and @/./+/-/_ only"
	case "data_image":
		return "image must be a base64 encoded png, jpg or jpeg data URI"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
