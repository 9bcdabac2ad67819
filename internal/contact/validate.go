package contact

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance returns the shared validator. Field names in errors use
// the json tag so they match the form inputs.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		validateInst = v
	})
	return validateInst
}

func validateStruct(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &SubmissionError{Kind: KindInvalid, Err: err}
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		field := fe.Field()
		if _, seen := fields[field]; !seen {
			fields[field] = fieldMessage(fe)
		}
	}
	return &SubmissionError{Kind: KindInvalid, Fields: fields, Err: err}
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "max":
		return label + " must be at most " + fe.Param() + " characters"
	}
	return label + " is invalid"
}
