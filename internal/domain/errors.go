package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// InputValidationError describes a malformed projection parameter. It is
// raised before any computation starts and carries enough detail (field,
// constraint, offending value) to display directly to an end user.
type InputValidationError struct {
	Field      string
	Constraint string
	Value      string
}

func NewInputValidationError(field, constraint, value string) *InputValidationError {
	return &InputValidationError{Field: field, Constraint: constraint, Value: value}
}

func (e *InputValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid input: %s %s", e.Field, e.Constraint)
	}
	return fmt.Sprintf("invalid input: %s %s (got %s)", e.Field, e.Constraint, e.Value)
}

// CapViolationError reports the first projection year in which a NISA quota
// would overflow while no contributing plan allows continuing past the cap.
// The condition is user-correctable: raise the plan's
// continue_if_limit_exceeded flag or lower the contribution.
type CapViolationError struct {
	Year        int
	AccountType AccountType
	Proposed    decimal.Decimal
	Allowed     decimal.Decimal
}

func (e *CapViolationError) Error() string {
	return fmt.Sprintf("quota exceeded in year %d: %s contributions of %s exceed the creditable %s and no plan allows continuing past the cap",
		e.Year, e.AccountType, e.Proposed.StringFixed(2), e.Allowed.StringFixed(2))
}

// AsInputValidationError unwraps err as an *InputValidationError if possible.
func AsInputValidationError(err error) (*InputValidationError, bool) {
	var ive *InputValidationError
	if errors.As(err, &ive) {
		return ive, true
	}
	return nil, false
}

// AsCapViolationError unwraps err as a *CapViolationError if possible.
func AsCapViolationError(err error) (*CapViolationError, bool) {
	var cve *CapViolationError
	if errors.As(err, &cve) {
		return cve, true
	}
	return nil, false
}
