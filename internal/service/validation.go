package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Nathan-Omenge/recipe-management-api/internal/apperr"
	"github.com/Nathan-Omenge/recipe-management-api/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// maxQuantity is the first value that does not fit decimal(8,2).
var maxQuantity = decimal.NewFromInt(1_000_000)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct runs the struct tags and returns every failure as one
// InvalidArgument error.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.InvalidArgument("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperr.InvalidArgument("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// validateQuantity enforces a positive decimal that fits decimal(8,2)
func validateQuantity(q decimal.Decimal) error {
	if !q.IsPositive() {
		return apperr.InvalidArgument("quantity must be greater than zero")
	}
	if !q.Equal(q.Round(2)) {
		return apperr.InvalidArgument("quantity must have at most 2 decimal places")
	}
	if q.GreaterThanOrEqual(maxQuantity) {
		return apperr.InvalidArgument("quantity must be less than %s", maxQuantity.String())
	}
	return nil
}

// parseDifficulty defaults an empty value to medium
func parseDifficulty(s string) (models.Difficulty, error) {
	if s == "" {
		return models.DifficultyMedium, nil
	}
	d := models.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", apperr.InvalidArgument("difficulty must be one of easy, medium, hard")
	}
	return d, nil
}
