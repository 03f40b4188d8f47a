package kayaku

import "errors"

// ErrUpdate wraps shape mismatches reported by [Update].
var ErrUpdate = errors.New("update error")
