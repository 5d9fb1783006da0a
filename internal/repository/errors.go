package repository

import "errors"

// Error taxonomy surfaced to the handler layer. Handlers map these onto HTTP
// statuses; anything not matching is treated as a storage failure.
var (
	// ErrValidation indicates missing or invalid input, including partial
	// updates that resolve to zero recognized fields.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrReferenceNotFound indicates a foreign key target does not exist,
	// e.g. creating a study against an unknown patient.
	ErrReferenceNotFound = errors.New("referenced entity not found")

	// ErrInvalidCredentials covers absent users, inactive users and password
	// mismatches alike so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
