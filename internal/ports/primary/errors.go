package primary

import "errors"

// Error kinds surfaced by the workflow services. Callers classify failures
// with errors.Is; the CLI layer translates them into user-visible messages.
var (
	// ErrValidation marks a rejected input: empty required field,
	// non-positive amount or budget, bad credentials.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a missing customer, vehicle, intake, ledger,
	// message or user.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation, such as a duplicate
	// active plate or a taken username.
	ErrConflict = errors.New("conflict")

	// ErrStoreUnavailable marks the only fatal condition: the persistent
	// store cannot be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
