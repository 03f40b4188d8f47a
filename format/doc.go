// Package format names the supported text dialects.
//
// Three dialects are distinguished: strict JSON, JSONC (JSON with
// comments and trailing commas) and JSON5. Parsing and encoding take a
// Format to decide which lexical forms are admitted.
//
// # Related Packages
//
//   - github.com/GraiaProject/kayaku/parse - Parse text to IR
//   - github.com/GraiaProject/kayaku/encode - Encode IR to text
package format
