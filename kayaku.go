// Package kayaku reads, edits and writes JSON, JSONC and JSON5
// documents without disturbing how they are written: comments,
// whitespace and value spellings survive a parse, edit, encode cycle.
//
// # Usage
//
//	doc, err := kayaku.Parse(`{
//	  // tuned by hand
//	  retries: 3,
//	}`)
//	if err != nil { ... }
//	err = kayaku.Update(doc, map[string]any{"retries": 5}, false)
//	out, err := kayaku.EncodeString(doc)
//
// # Related Packages
//
//   - github.com/GraiaProject/kayaku/parse - text to tree
//   - github.com/GraiaProject/kayaku/encode - tree to text
//   - github.com/GraiaProject/kayaku/ir - the styled tree itself
//   - github.com/GraiaProject/kayaku/pretty - reformatting
//   - github.com/GraiaProject/kayaku/domain - config domain routing
//   - github.com/GraiaProject/kayaku/libdiff - tree and text diffs
package kayaku

import (
	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/parse"
)

// Parse parses a document, by default in the JSON5 dialect.
func Parse(text string, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.ParseString(text, opts...)
}

// ParseBytes is [Parse] for raw bytes.
func ParseBytes(d []byte, opts ...parse.ParseOption) (*ir.Node, error) {
	return parse.Parse(d, opts...)
}

// EncodeString renders node back to text.
func EncodeString(node *ir.Node, opts ...encode.EncodeOption) (string, error) {
	return encode.String(node, opts...)
}
