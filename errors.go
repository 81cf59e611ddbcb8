package mindchat

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by ConversationSession.
var (
	// ErrInvalidState is returned when an operation is not legal in the
	// session's current state (e.g. Submit before a profile exists).
	ErrInvalidState = errors.New("operation not valid in current session state")

	// ErrQuotaExhausted is returned by Submit when the remaining-message
	// counter has reached zero.
	ErrQuotaExhausted = errors.New("message quota exhausted")

	// ErrEmptyMessage is returned by Submit when the text is empty after
	// trimming.
	ErrEmptyMessage = errors.New("message text is empty")

	// ErrSessionReset signals that a reset occurred while an operation
	// was in flight; the operation's result was discarded.
	ErrSessionReset = errors.New("session was reset")
)

// ProviderError wraps a ResponseProvider failure: transport errors,
// timeouts, malformed payloads, or wrong output cardinality.
type ProviderError struct {
	Op     string // "generate_profiles" | "generate_replies"
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Op, e.Reason)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func providerErr(op, reason string, err error) *ProviderError {
	return &ProviderError{Op: op, Reason: reason, Err: err}
}
