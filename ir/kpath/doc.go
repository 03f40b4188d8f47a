// Package kpath provides dotted path parsing and navigation for node
// trees.
//
// Paths encode both navigation and structure type in the syntax:
//   - .field - object field access
//   - [index] - array index
//
// Fields that are not legal identifiers are quoted, as in
// "servers.'us east'.port"; both quote styles are accepted.
//
// # Usage
//
//	// Parse a path
//	kp, err := kpath.Parse("users[0].name")
//
//	// Build one
//	kp = kpath.Field("users").Append(kpath.Index(0)).Append(kpath.Field("name"))
//
//	// Render it back
//	s := kp.String()
package kpath
