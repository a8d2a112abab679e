package domain

import "errors"

// Error taxonomy shared across services and handlers. Everything here is
// recoverable at the conversation-session level; nothing is fatal to the
// process.
var (
	// ErrStoreUnavailable wraps persistence failures (network or backend fault)
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEmptyMessage rejects blank submissions
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrMessageTooLong rejects content above the configured cap
	ErrMessageTooLong = errors.New("message content exceeds maximum length")

	// ErrNoActiveUser rejects actions requiring identity when none is set
	ErrNoActiveUser = errors.New("no active user")

	// ErrResponseInFlight rejects a user message while a companion reply is
	// still being generated for the same conversation
	ErrResponseInFlight = errors.New("a response is already in flight")

	// ErrNotFound reports a missing record
	ErrNotFound = errors.New("not found")

	// ErrInvalidReaction rejects unknown reaction types
	ErrInvalidReaction = errors.New("invalid reaction type")
)
