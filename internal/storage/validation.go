// Package storage provides the persistence layer for the dataset catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid dataset record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord validates a dataset record before it is written.
func validateRecord(record *model.DatasetRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if record.Path == "" {
		return fmt.Errorf("%w: missing path", ErrInvalidRecord)
	}
	if record.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidRecord)
	}
	return nil
}
