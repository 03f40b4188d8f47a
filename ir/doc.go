// Package ir provides the value model for JSON, JSONC, and JSON5
// documents in which every byte of the original source is accounted
// for.
//
// # Nodes
//
// The package is built around [Node], a single concrete struct which
// represents any JSON value by way of its discriminating [Type].  A
// Node is at once the value and its spelling: a parsed number keeps
// the exact source text it was written with, a parsed string keeps its
// quote character and escaped line continuations, and containers keep
// member order and trailing commas.
//
// # Whitespace and comments
//
// Inter-token trivia is modelled by [WSC], a whitespace run or a
// single comment.  Every Node carries a Before and an After sequence;
// object keys, being Nodes themselves, carry their own.  Containers
// additionally carry a Tail sequence holding the trivia between the
// last member (or the trailing comma) and the closing bracket.  For
// empty containers, all inner trivia is in the Tail.
//
// A value's After holds trivia only when a separator comma follows it
// on the same nesting level; the run before a closing bracket always
// belongs to the container's Tail.  Under this placement, re-encoding
// a parsed tree reproduces the input byte for byte.
//
// # Values and style
//
// Equality ([Equal]) and ordering ([Compare]) consider values only,
// never trivia or spelling: 0x11 equals 17, 'a' equals "a", and an
// identifier key equals its quoted form.  [Node.ClearStyle] and
// [Node.StripStyle] drop trivia when only the values matter.
//
// Nodes are created from parsed input by the parse package, or
// programmatically with the constructors ([FromString], [FromInt],
// [FromMap], ...) and [FromGo].
package ir
