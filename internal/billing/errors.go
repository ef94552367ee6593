package billing

import (
	"errors"
	"fmt"
)

// Generation errors. Every one of them aborts the whole run.
var (
	// ErrNoTenants is returned when the property has nobody to split bills across.
	ErrNoTenants = errors.New("no tenants assigned to this property")

	// ErrEmptyBill is returned when rent, utilities and fees are all zero.
	ErrEmptyBill = errors.New("no bills to generate, provide at least one charge with an amount")

	// ErrInvalidAmount is returned for negative or non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a finite number greater than or equal to zero")

	// ErrInvalidPeriod is returned when the period is not a YYYY-MM token.
	ErrInvalidPeriod = errors.New("period must be formatted as YYYY-MM")

	// ErrMissingDueDate is returned when no due date was supplied.
	ErrMissingDueDate = errors.New("due date is required")

	// ErrAllocationMismatch is returned when custom tenant amounts do not add up
	// to the charge they divide.
	ErrAllocationMismatch = errors.New("custom assignments do not add up to the charge total")

	// ErrReconciliation is returned when emitted bills drift from their category totals.
	ErrReconciliation = errors.New("bill amounts do not reconcile with their totals")
)

// ValidationError describes which input failed and why.
type ValidationError struct {
	Field string
	Value interface{}
	Err   error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("billing: invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("billing: invalid %s: %v (value: %v)", e.Field, e.Err, e.Value)
}

// Unwrap returns the sentinel so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, value interface{}, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// IsValidationError reports whether err came from request validation.
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
