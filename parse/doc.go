// Package parse parses JSON, JSONC and JSON5 text into IR nodes.
//
// # Usage
//
//	// Parse JSON5 text (the default dialect)
//	node, err := parse.Parse([]byte(`{name: "alice", age: 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse strict JSON
//	node, err := parse.Parse(data, parse.ParseJSON())
//
//	// Record source positions for diagnostics
//	positions := map[*ir.Node]*token.Pos{}
//	node, err := parse.Parse(data, parse.ParsePositions(positions))
//
// The tree keeps every byte of the input, including whitespace,
// comments and scalar spellings, so encode reproduces the document
// exactly.
//
// # Related Packages
//
//   - github.com/GraiaProject/kayaku/ir - IR representation
//   - github.com/GraiaProject/kayaku/encode - Encode IR to text
//   - github.com/GraiaProject/kayaku/token - Tokenization
package parse
