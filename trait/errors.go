package trait

import (
	"errors"
	"fmt"
)

// ErrIncompleteInput is returned when fewer answers than questions are
// supplied to the engine.
var ErrIncompleteInput = errors.New("incomplete answer sequence")

// ErrInvalidAnswer is returned when an answer tag is not one of the two
// legal tags for its question's axis.
var ErrInvalidAnswer = errors.New("invalid answer tag")

// AnswerError reports an out-of-alphabet answer at a specific position.
type AnswerError struct {
	Index int
	Tag   Answer
	Axis  Axis
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("answer %d: tag %q is not valid for axis %s", e.Index, e.Tag, e.Axis)
}

func (e *AnswerError) Unwrap() error { return ErrInvalidAnswer }

// CodeError reports a supplied code outside the closed set of 16.
type CodeError struct {
	Supplied string
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("%q is not a recognized trait code", e.Supplied)
}
