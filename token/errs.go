package token

import (
	"errors"
)

var (
	ErrBadUTF8           = errors.New("bad utf8")
	ErrUnterminated      = errors.New("unterminated")
	ErrNumber            = errors.New("bad number")
	ErrNumberLeadingZero = errors.New("leading zero")
	ErrString            = errors.New("bad string")
	ErrBadEscape         = errors.New("bad escape")
	ErrBadUnicode        = errors.New("bad unicode")
	ErrUnicodeControl    = errors.New("unicode control")
	ErrIdentifier        = errors.New("bad identifier")
	ErrEmptyDoc          = errors.New("empty document")
	ErrUnsupported       = errors.New("unsupported")
)
