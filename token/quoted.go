package token

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/GraiaProject/kayaku/format"
)

// Unquote decodes a quoted string token. d includes the surrounding
// quotes. The second result lists the byte offsets, within the raw
// content between the quotes, of backslash line continuations; the
// encoder re-inserts them so untouched strings stay byte identical.
func Unquote(d []byte) (string, []int, error) {
	if len(d) < 2 {
		return "", nil, ErrUnterminated
	}
	q := d[0]
	if q != '"' && q != '\'' {
		return "", nil, ErrString
	}
	n := len(d) - 1
	if d[n] != q {
		return "", nil, ErrUnterminated
	}
	var (
		b          strings.Builder
		linebreaks []int
	)
	b.Grow(n)
	i := 1
	for i < n {
		c := d[i]
		if c != '\\' {
			if c == '\n' || c == '\r' {
				return "", nil, ErrUnterminated
			}
			if c < utf8.RuneSelf {
				b.WriteByte(c)
				i++
				continue
			}
			r, sz := utf8.DecodeRune(d[i:n])
			if r == utf8.RuneError && sz == 1 {
				return "", nil, ErrBadUTF8
			}
			b.WriteRune(r)
			i += sz
			continue
		}
		if i+1 >= n {
			return "", nil, ErrBadEscape
		}
		switch e := d[i+1]; e {
		case 'n':
			b.WriteByte('\n')
			i += 2
		case 't':
			b.WriteByte('\t')
			i += 2
		case 'r':
			b.WriteByte('\r')
			i += 2
		case 'b':
			b.WriteByte('\b')
			i += 2
		case 'f':
			b.WriteByte('\f')
			i += 2
		case 'v':
			b.WriteByte('\v')
			i += 2
		case '0':
			// \0 followed by a digit would be an octal escape
			if i+2 < n && asciiDigit(d[i+2]) {
				return "", nil, ErrBadEscape
			}
			b.WriteByte(0)
			i += 2
		case 'x':
			if i+4 > n || !allHex(d[i+2:i+4]) {
				return "", nil, ErrBadEscape
			}
			b.WriteRune(hexRune(d[i+2 : i+4]))
			i += 4
		case 'u':
			r, sz, err := unicodeEscape(d[i:n])
			if err != nil {
				return "", nil, err
			}
			b.WriteRune(r)
			i += sz
		case '\n':
			linebreaks = append(linebreaks, i-1)
			i += 2
		case '\r':
			i += 2
			if i < n && d[i] == '\n' {
				i++
			}
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return "", nil, ErrBadEscape
		default:
			// any other escaped character stands for itself
			r, sz := utf8.DecodeRune(d[i+1 : n])
			if r == utf8.RuneError && sz == 1 {
				return "", nil, ErrBadUTF8
			}
			b.WriteRune(r)
			i += 1 + sz
		}
	}
	return b.String(), linebreaks, nil
}

// unicodeEscape decodes a \uXXXX escape at d[0:], pairing surrogates
// the way encoding/json does. Unpaired surrogates decode to U+FFFD.
func unicodeEscape(d []byte) (rune, int, error) {
	if len(d) < 6 || !allHex(d[2:6]) {
		return 0, 0, ErrBadUnicode
	}
	r := hexRune(d[2:6])
	if !utf16.IsSurrogate(r) {
		return r, 6, nil
	}
	if len(d) >= 12 && d[6] == '\\' && d[7] == 'u' && allHex(d[8:12]) {
		r2 := hexRune(d[8:12])
		if dec := utf16.DecodeRune(r, r2); dec != unicode.ReplacementChar {
			return dec, 12, nil
		}
	}
	return unicode.ReplacementChar, 6, nil
}

func hexRune(d []byte) rune {
	var r rune
	for _, c := range d {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		}
	}
	return r
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

// Quote escapes v into a quoted string using the given quote byte,
// '"' or '\''.
func Quote(v string, quote byte) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = quote
	for i := 0; i < len(v); {
		r, sz := utf8.DecodeRuneInString(v[i:])
		switch r {
		case rune(quote):
			d = append(d, '\\', quote)
		case '\\':
			d = append(d, '\\', '\\')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\u2028':
			d = append(d, '\\', 'u', '2', '0', '2', '8')
		case '\u2029':
			d = append(d, '\\', 'u', '2', '0', '2', '9')
		default:
			if unicode.IsControl(r) {
				d = append(d, '\\', 'u')
				d = appendHex4(d, r)
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
		i += sz
	}
	d = append(d, quote)
	return string(d)
}

func appendHex4(d []byte, r rune) []byte {
	const digits = "0123456789abcdef"
	return append(d, digits[r>>12&0xf], digits[r>>8&0xf], digits[r>>4&0xf], digits[r&0xf])
}

// quoted returns the length in d of the quoted string starting at
// d[0], including both quotes. It validates termination and escape
// structure, leaving decoding to [Unquote].
func quoted(d []byte, f format.Format) (int, error) {
	q := d[0]
	i, n := 1, len(d)
	for i < n {
		c := d[i]
		switch {
		case c == q:
			return i + 1, nil
		case c == '\\':
			if i+1 >= n {
				return 0, ErrUnterminated
			}
			e := d[i+1]
			if !f.IsJSON5() && !strictEscape(e) {
				return 0, ErrBadEscape
			}
			if e == '\r' && i+2 < n && d[i+2] == '\n' {
				i++
			}
			i += 2
		case c == '\n' || c == '\r':
			return 0, ErrUnterminated
		case c < 0x20:
			if !f.IsJSON5() {
				return 0, ErrUnicodeControl
			}
			i++
		default:
			i++
		}
	}
	return 0, ErrUnterminated
}

func strictEscape(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	default:
		return false
	}
}

// IsIdentifier reports whether s is a legal bare member name.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !identStart(r) {
				return false
			}
			continue
		}
		if !identPart(r) {
			return false
		}
	}
	return true
}

func identStart(r rune) bool {
	return r == '$' || r == '_' || unicode.IsLetter(r)
}

func identPart(r rune) bool {
	if identStart(r) {
		return true
	}
	if r == 0x200c || r == 0x200d {
		return true
	}
	return unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Pc, r)
}

// identifier returns the length of the identifier starting at d[0].
func identifier(d []byte) (int, error) {
	i, n := 0, len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && sz == 1 {
			return 0, ErrBadUTF8
		}
		if i == 0 {
			if !identStart(r) {
				return 0, ErrIdentifier
			}
		} else if !identPart(r) {
			return i, nil
		}
		i += sz
	}
	return i, nil
}
