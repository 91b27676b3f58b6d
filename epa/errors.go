package epa

import "errors"

// Error classes shared by every model. All of them are fatal for a run: callers
// wrap one of these with context and the CLI aborts on it.
var (
	// ErrConfiguration reports missing, malformed or inconsistent parameters.
	ErrConfiguration = errors.New("configuration error")
	// ErrIO reports a file that cannot be opened, mapped or written.
	ErrIO = errors.New("i/o error")
	// ErrValidation reports persisted data that does not match the run.
	ErrValidation = errors.New("validation error")
)
