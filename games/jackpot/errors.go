package jackpot

import (
	"errors"
	"fmt"
)

var (
	// ErrOwnerNotBound means nobody has pulled SPIN on this message yet.
	ErrOwnerNotBound = errors.New("jackpot: owner not bound")
	// ErrMalformed means the message does not carry a readable play surface.
	ErrMalformed = errors.New("jackpot: malformed game message")
	// ErrNotEligible means the action is stale, duplicated or out of turn.
	ErrNotEligible = errors.New("jackpot: action not eligible")
	// ErrUnauthorized means the actor is not the bound owner.
	ErrUnauthorized = errors.New("jackpot: actor is not the owner")
	// ErrAlreadyStarted means SPIN was pulled on a game that has an owner.
	ErrAlreadyStarted = errors.New("jackpot: game already started")
	// ErrUnknownAction means the action is not part of the table.
	ErrUnknownAction = errors.New("jackpot: unknown action")
)

// ExtractionError describes why a message could not be read as a game.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract game: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

func malformed(format string, args ...interface{}) error {
	return &ExtractionError{Reason: fmt.Sprintf(format, args...), Err: ErrMalformed}
}

// IsNoOp reports whether err should end an action silently. Every error the
// engine returns is a no-op for the player; unauthorized and ineligible
// actions look the same from the outside.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrMalformed) ||
		errors.Is(err, ErrNotEligible) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrOwnerNotBound) ||
		errors.Is(err, ErrAlreadyStarted) ||
		errors.Is(err, ErrUnknownAction)
}
