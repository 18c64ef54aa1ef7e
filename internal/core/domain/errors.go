package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("storage engine unavailable")
)

// Ledger errors. Each entity lookup misses with its own sentinel wrapping
// ErrNotFound, so callers can match either the entity or the class.
var (
	ErrMemberNotFound  = fmt.Errorf("member %w", ErrNotFound)
	ErrLoanNotFound    = fmt.Errorf("loan %w", ErrNotFound)
	ErrPaymentNotFound = fmt.Errorf("payment %w", ErrNotFound)
	ErrSavingNotFound  = fmt.Errorf("saving %w", ErrNotFound)
)
