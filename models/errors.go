package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")
	// ErrValidation is an ErrInvalidInput raised by field-level checks.
	ErrValidation = fmt.Errorf("%w: validation failed", ErrInvalidInput)
	// ErrMissingField is an ErrValidation for an absent or blank field.
	ErrMissingField = fmt.Errorf("%w: required field missing", ErrValidation)

	ErrNotFound        = errors.New("property not found")
	ErrDeliveryFailure = errors.New("notification delivery failed")
	ErrUnauthorized    = errors.New("unauthorized")
)
