package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// FieldViolation is a single failed validation rule.
type FieldViolation struct {
	Field   string
	Message string
}

// Violations checks v against its `validate` struct tags and returns one entry per failed field.
func Violations(v any) ([]FieldViolation, error) {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil, nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	violations := make([]FieldViolation, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, FieldViolation{Field: fe.Field(), Message: fieldError(fe)})
	}
	return violations, nil
}

// Validate checks v against its `validate` struct tags.
//
// Field failures are joined into a single [ErrInvalidInput] message, e.g. "invalid input: price must be at least 0".
func Validate(v any) error {
	violations, err := Violations(v)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(violations))
	for _, fv := range violations {
		msgs = append(msgs, fv.Message)
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url", "http_url":
		return field + " must be a valid URL"
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
