// Package encode renders IR nodes as JSON, JSONC or JSON5 text.
//
// # Usage
//
//	// Verbatim: a parsed tree reproduces its source exactly
//	node, _ := parse.Parse(src)
//	err := encode.Encode(node, os.Stdout)
//
//	// Strip comments, collapse whitespace
//	err := encode.Encode(node, w,
//	    encode.EncodeComments(false),
//	    encode.EncodeTrimmed(true))
//
//	// Refuse constructs strict JSON cannot carry
//	err := encode.Encode(node, w, encode.EncodeFormat(format.JSONFormat))
//
// # Related Packages
//
//   - github.com/GraiaProject/kayaku/ir - IR representation
//   - github.com/GraiaProject/kayaku/parse - Parse text to IR
package encode
