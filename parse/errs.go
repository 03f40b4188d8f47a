package parse

import (
	"errors"
	"fmt"
)

var (
	errInternal = errors.New("internal error")

	// ErrParse is the base of all structural parse failures.
	// Tokenizer failures pass through as *token.TokenizeErr.
	ErrParse = errors.New("parse error")

	// ErrDuplicateKey reports an object member name that already
	// appeared in the same object.  It unwraps to ErrParse.
	ErrDuplicateKey = fmt.Errorf("%w: duplicate key", ErrParse)
)
