package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	JSON5Format Format = iota
	JSONCFormat
	JSONFormat
)

var ErrBadFormat = errors.New("bad format")

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"5":      JSON5Format,
		"json5":  JSON5Format,
		".json5": JSON5Format,
		"c":      JSONCFormat,
		"jsonc":  JSONCFormat,
		".jsonc": JSONCFormat,
		"j":      JSONFormat,
		"json":   JSONFormat,
		".json":  JSONFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSON5Format:
		return []byte("json5"), nil
	case JSONCFormat:
		return []byte("jsonc"), nil
	case JSONFormat:
		return []byte("json"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsJSON() bool  { return f == JSONFormat }
func (f Format) IsJSONC() bool { return f == JSONCFormat }
func (f Format) IsJSON5() bool { return f == JSON5Format }

// Comments reports whether the format admits comments.
func (f Format) Comments() bool {
	return f != JSONFormat
}

// TrailingCommas reports whether a comma may precede a closing bracket.
func (f Format) TrailingCommas() bool {
	return f != JSONFormat
}

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSON5Format:
		return ".json5"
	case JSONCFormat:
		return ".jsonc"
	case JSONFormat:
		return ".json"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSON5Format, JSONCFormat, JSONFormat}
}
