package domain

import (
	"errors"
	"fmt"
)

// ErrPattern is the base of all source and path pattern parse
// failures.
var ErrPattern = errors.New("pattern error")

// ErrNotBound reports a domain no registered pattern matches.
var ErrNotBound = errors.New("domain not bound")

// DuplicateBindingError reports an Insert whose pattern slot already
// holds a binding.
type DuplicateBindingError struct {
	Pattern string // dotted prefix.*.suffix form
	Bound   *PathSpec
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("%s is already bound to %s", e.Pattern, e.Bound)
}
