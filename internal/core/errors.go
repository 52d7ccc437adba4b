package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a package is not found.
var ErrNotFound = errors.New("not found")

// NotFoundError wraps ErrNotFound with additional context.
type NotFoundError struct {
	Ecosystem string
	Name      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: package %s not found", e.Ecosystem, e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
