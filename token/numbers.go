package token

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/GraiaProject/kayaku/format"
)

// number scans a numeric literal at the start of d, sign included, and
// reports its length and token type.
func number(d []byte, f format.Format) (int, TokenType, error) {
	i, n := 0, len(d)
	if i < n && (d[i] == '+' || d[i] == '-') {
		if d[i] == '+' && !f.IsJSON5() {
			return 0, TNone, ErrNumber
		}
		i++
	}
	if i >= n {
		return 0, TNone, ErrNumber
	}
	switch d[i] {
	case 'I':
		if !f.IsJSON5() || !isKeyword(d[i:], "Infinity") {
			return 0, TNone, ErrNumber
		}
		return i + len("Infinity"), TInfinity, nil
	case 'N':
		if !f.IsJSON5() || !isKeyword(d[i:], "NaN") {
			return 0, TNone, ErrNumber
		}
		return i + len("NaN"), TNaN, nil
	}
	if i+1 < n && d[i] == '0' && (d[i+1] == 'x' || d[i+1] == 'X') {
		if !f.IsJSON5() {
			return 0, TNone, ErrNumber
		}
		h := hexDigits(d[i+2:])
		if h == 0 {
			return 0, TNone, ErrNumber
		}
		return i + 2 + h, THexNumber, nil
	}
	digits := asciiDigits(d[i:])
	if digits == 0 && !(f.IsJSON5() && d[i] == '.') {
		return 0, TNone, ErrNumber
	}
	if digits > 1 && d[i] == '0' {
		return 0, TNone, ErrNumberLeadingZero
	}
	i += digits
	fr, err := fract(d[i:], digits, f)
	if err != nil {
		return 0, TNone, err
	}
	e := exp(d[i+fr:])
	if fr+e == 0 {
		return i, TInteger, nil
	}
	return i + fr + e, TFloat, nil
}

func asciiDigits(d []byte) int {
	i := 0
	for i < len(d) {
		if !asciiDigit(d[i]) {
			return i
		}
		i++
	}
	return i
}

func asciiDigit(c byte) bool {
	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return true
	default:
		return false
	}
}

func hexDigits(d []byte) int {
	i := 0
	for i < len(d) {
		c := d[i]
		if c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' {
			i++
			continue
		}
		return i
	}
	return i
}

func exp(d []byte) int {
	if len(d) < 2 {
		return 0
	}
	switch d[0] {
	case 'e', 'E':
	default:
		return 0
	}
	i := 1
	switch d[1] {
	case '+', '-':
		i++
	default:
	}
	if i == len(d) {
		return 0
	}
	n := asciiDigits(d[i:])
	if n == 0 {
		return 0
	}
	return n + i
}

// fract scans a fraction part. intDigits is the count of integer part
// digits already seen, so ".5" and "5." can be gated per dialect.
func fract(d []byte, intDigits int, f format.Format) (int, error) {
	if len(d) == 0 || d[0] != '.' {
		return 0, nil
	}
	fd := asciiDigits(d[1:])
	if fd == 0 {
		// trailing dot, JSON5 only
		if !f.IsJSON5() || intDigits == 0 {
			return 0, ErrNumber
		}
		return 1, nil
	}
	if intDigits == 0 && !f.IsJSON5() {
		// leading dot, JSON5 only
		return 0, ErrNumber
	}
	return 1 + fd, nil
}

// NumberValue computes the numeric value of a number token.  Integer
// and hex tokens whose value fits an int64 report isInt; everything
// else carries the double value, the way a JavaScript engine reads
// it.
func NumberValue(t *Token) (i int64, f float64, isInt bool, err error) {
	s := string(t.Bytes)
	switch t.Type {
	case TInteger:
		i, err = strconv.ParseInt(s, 10, 64)
		if err == nil {
			return i, 0, true, nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return 0, 0, false, fmt.Errorf("%w: %q", ErrNumber, s)
		}
		f, err = strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, 0, false, fmt.Errorf("%w: %q", ErrNumber, s)
		}
		return 0, f, false, nil
	case THexNumber:
		body, neg := s, false
		switch body[0] {
		case '+':
			body = body[1:]
		case '-':
			neg = true
			body = body[1:]
		}
		digits := body[2:]
		u, uerr := strconv.ParseUint(digits, 16, 64)
		if uerr == nil && u <= math.MaxInt64 {
			i = int64(u)
			if neg {
				i = -i
			}
			return i, 0, true, nil
		}
		if uerr != nil && !errors.Is(uerr, strconv.ErrRange) {
			return 0, 0, false, fmt.Errorf("%w: %q", ErrNumber, s)
		}
		for j := 0; j < len(digits); j++ {
			d := digits[j]
			switch {
			case d >= '0' && d <= '9':
				f = f*16 + float64(d-'0')
			case d >= 'a' && d <= 'f':
				f = f*16 + float64(d-'a'+10)
			case d >= 'A' && d <= 'F':
				f = f*16 + float64(d-'A'+10)
			}
		}
		if neg {
			f = -f
		}
		return 0, f, false, nil
	case TFloat:
		// Overflow keeps ParseFloat's infinity.
		f, err = strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, 0, false, fmt.Errorf("%w: %q", ErrNumber, s)
		}
		return 0, f, false, nil
	case TNaN:
		return 0, math.NaN(), false, nil
	case TInfinity:
		if s[0] == '-' {
			return 0, math.Inf(-1), false, nil
		}
		return 0, math.Inf(1), false, nil
	default:
		return 0, 0, false, fmt.Errorf("%w: %s is not a number token", ErrNumber, t.Type)
	}
}

// isKeyword reports whether d starts with kw ending at an identifier
// boundary.
func isKeyword(d []byte, kw string) bool {
	if len(d) < len(kw) || string(d[:len(kw)]) != kw {
		return false
	}
	if len(d) == len(kw) {
		return true
	}
	r, _ := utf8.DecodeRune(d[len(kw):])
	return !identPart(r)
}
