package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers both "absent" and "owned by someone else"
	ErrNotFound = errors.New("resource not found")

	// ErrStoreTimeout is returned when a store call exceeds its deadline
	ErrStoreTimeout = errors.New("store query timed out")

	// ErrInvalidAggregation signals a malformed AggregateSpec
	ErrInvalidAggregation = errors.New("invalid aggregation spec")
)

// StoreError wraps any persistence I/O failure
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
