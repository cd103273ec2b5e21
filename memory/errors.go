package memory

import "github.com/m-mizutani/goerr/v2"

// Error taxonomy of the core. All five are surfaced to the caller
// untransformed; check with errors.Is. Failure sites attach the
// offending identifier or input via goerr values so the collaborator
// layer can produce an actionable message.
//
// A recall that matches nothing is not an error: it returns an empty
// result set.
var (
	// ErrInvalidInput rejects empty or whitespace-only memory text.
	ErrInvalidInput = goerr.New("memory text is empty")

	// ErrDuplicateID reports an id collision on add. Effectively
	// unreachable with UUID generation, but handled.
	ErrDuplicateID = goerr.New("memory id already exists")

	// ErrNotFound reports a delete or lookup on an unknown id.
	ErrNotFound = goerr.New("memory not found")

	// ErrStoreUnavailable reports an unreachable or corrupted
	// persistence medium. Not retried; recovery requires explicit
	// reinitialization by the user.
	ErrStoreUnavailable = goerr.New("memory store unavailable")

	// ErrEncoding reports an embedding model that failed to
	// initialize or encode.
	ErrEncoding = goerr.New("embedding failed")
)
