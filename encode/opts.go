package encode

import "github.com/GraiaProject/kayaku/format"

type EncodeOption func(*EncState)

// EncodeFormat requests a target dialect.  Constructs the dialect
// cannot represent (hex numbers or NaN under json, comments under
// json, a trailing comma under json) fail with
// [ir.UnsupportedValueError] instead of being silently rewritten;
// scalar spellings that merely look different in the target dialect
// fall back to their canonical form.
func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) {
		es.format = f
		es.checked = true
	}
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeComments controls whether comments are emitted.  Passing
// false drops every comment while keeping the surrounding whitespace.
func EncodeComments(v bool) EncodeOption {
	return func(es *EncState) { es.comments = v }
}

// EncodeEndline ensures the output ends with a newline.
func EncodeEndline(v bool) EncodeOption {
	return func(es *EncState) { es.endline = v }
}

// EncodeTrimmed collapses each whitespace run to a single newline or
// space.
func EncodeTrimmed(v bool) EncodeOption {
	return func(es *EncState) { es.trimmed = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
