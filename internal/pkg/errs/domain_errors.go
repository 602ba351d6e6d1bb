package errs

import "errors"

// Sentinel errors shared across the usecase, infra and handler layers
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session token")
	ErrAdminRequired   = errors.New("admin token required")

	// Backend errors
	ErrBackendUnavailable = errors.New("booking backend unavailable")
	ErrBackendRejected    = errors.New("booking backend rejected request")
	ErrBackendNotFound    = errors.New("booking backend resource not found")

	// Ledger errors
	ErrLedgerWriteFailed = errors.New("submission ledger write failed")
)
