package errs

import "github.com/m-mizutani/goerr/v2"

// Category sentinels for the service. Core packages wrap these with
// goerr.Wrap and call-site context; the HTTP layer maps them to status
// codes with errors.Is.
var (
	// ErrValidation covers bad user input: empty goal text, illegal
	// status transitions, oversized messages.
	ErrValidation = goerr.New("validation failed")

	// ErrNotFound is returned for lookups of unknown goal ids.
	ErrNotFound = goerr.New("not found")

	// ErrStorage covers unrecoverable I/O on the memory file. The
	// in-memory store survives it, so a retry can succeed.
	ErrStorage = goerr.New("storage failure")

	// ErrCoaching covers completion-provider failures. Its message is
	// user-safe; provider detail stays in the log.
	ErrCoaching = goerr.New("coaching provider unavailable")
)
