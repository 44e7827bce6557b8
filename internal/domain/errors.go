package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType    = errors.New("unsupported type")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrContainerOpen      = errors.New("container open failure")
	ErrVerificationFailed = errors.New("verification failed")
)

// UnsupportedTypeError reports a column whose scalar type has no branch mapping.
// Table and Column are empty when the error comes straight from the type mapper.
type UnsupportedTypeError struct {
	Table  string
	Column string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	switch {
	case e.Table != "" && e.Column != "":
		return fmt.Sprintf("unsupported type %q for column %s.%s", e.Type, e.Table, e.Column)
	case e.Column != "":
		return fmt.Sprintf("unsupported type %q for column %s", e.Type, e.Column)
	default:
		return fmt.Sprintf("unsupported type %q", e.Type)
	}
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Field, e.Reason)
}

func (e *InvalidArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func NewInvalidArgument(field, format string, args ...any) error {
	return &InvalidArgumentError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
