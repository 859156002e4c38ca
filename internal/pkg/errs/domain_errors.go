package errs

import "errors"

// Taxonomy marks. Domain and usecase errors are marked with one of these so the
// handler layer can classify them without knowing every concrete error.
var (
	ErrValidation           = errors.New("validation error")
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrAvailabilityConflict = errors.New("availability conflict")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrDuplicateEvent       = errors.New("duplicate event")
	ErrUpstreamProvider     = errors.New("upstream provider error")
	ErrConfiguration        = errors.New("configuration error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")

	// Idempotency errors
	ErrIdempotencyInProgress = errors.New("idempotency in progress")
	ErrIdempotencyMismatch   = errors.New("idempotency key reused with different request")
)
