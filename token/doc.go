// Package token provides tokenization support for JSON, JSONC and JSON5.
//
// [Tokenize] is a function for tokenizing bytes. Whitespace and comments
// are emitted as ordinary tokens so that the token sequence carries every
// byte of the input and callers can reconstruct it exactly.
package token
