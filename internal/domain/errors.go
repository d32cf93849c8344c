package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// trip, day, item, note or ledger entry does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. empty trip name, unsupported currency, negative price).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrEmptyName and ErrDuplicateName are the two ways a trip name can be
// rejected. Both wrap ErrValidation so callers can match either level.
var (
	ErrEmptyName     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrDuplicateName = fmt.Errorf("%w: a trip with this name already exists", ErrValidation)
)
