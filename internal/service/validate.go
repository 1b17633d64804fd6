package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags of req and folds every failure into ErrValidation.
func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, ", "))
}

// QuantityScale is the number of decimal places every stored quantity keeps.
const QuantityScale = 3

// requireScale rejects quantities the stores would have to round.
func requireScale(field string, qty decimal.Decimal, places int32) error {
	if !qty.Equal(qty.Round(places)) {
		return fmt.Errorf("%w: %s allows at most %d decimal places", ErrValidation, field, places)
	}
	return nil
}

func requireNonNegative(field string, qty decimal.Decimal) error {
	if qty.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrValidation, field)
	}
	return requireScale(field, qty, QuantityScale)
}

func requirePositive(field string, qty decimal.Decimal) error {
	if !qty.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than 0", ErrValidation, field)
	}
	return requireScale(field, qty, QuantityScale)
}
