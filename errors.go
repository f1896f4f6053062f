package diagram

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidData          = errors.New("invalid data")
)

// InvalidConfigurationError reports a missing, ill-typed or out of range
// configuration field.
type InvalidConfigurationError struct {
	Chart  Kind
	Field  string
	Reason string
}

func configError(kind Kind, field, reason string) *InvalidConfigurationError {
	return &InvalidConfigurationError{
		Chart:  kind,
		Field:  field,
		Reason: reason,
	}
}

func (e *InvalidConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Chart, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", e.Chart, e.Field, e.Reason)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

type InvalidDataError struct {
	Chart  Kind
	Reason string
}

func dataError(kind Kind, reason string) *InvalidDataError {
	return &InvalidDataError{
		Chart:  kind,
		Reason: reason,
	}
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("%s: %s", e.Chart, e.Reason)
}

func (e *InvalidDataError) Unwrap() error {
	return ErrInvalidData
}
