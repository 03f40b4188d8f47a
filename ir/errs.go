package ir

import (
	"errors"
	"fmt"
)

var (
	// ErrTrivia is returned by [ParseWSC] for input containing
	// anything besides whitespace and comments.
	ErrTrivia = errors.New("not whitespace or comment")
)

// UnsupportedValueError reports a value that cannot be turned into a
// [Node], or a Node that cannot be rendered as requested.
type UnsupportedValueError struct {
	Value any
	Msg   string
}

func (e *UnsupportedValueError) Error() string {
	if e.Msg != "" {
		return "unsupported value: " + e.Msg
	}
	return fmt.Sprintf("unsupported value: %v (%T)", e.Value, e.Value)
}
