package repository

import (
	"errors"
	"fmt"
)

// Store outcomes shared by every backend. Services translate them into API errors.
var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrAlreadyRegistered = errors.New("student already registered")
	ErrCapacityExceeded  = errors.New("activity capacity exceeded")
	ErrNotRegistered     = errors.New("student not registered")
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
