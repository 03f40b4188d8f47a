package encode

import (
	"errors"
)

// ErrEncoding reports a tree that cannot be rendered as requested.
// Values outside the node model return [ir.UnsupportedValueError]
// instead.
var ErrEncoding = errors.New("encoding error")
