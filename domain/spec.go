package domain

import (
	"fmt"
	"slices"
	"strings"
)

// SectionSpec is the slice of a source pattern enclosed in braces.
// Its segments name where matched domains mount inside their file.
type SectionSpec struct {
	Prefix []string
	Suffix []string
}

// SourceSpec is a parsed domain pattern such as {module.**}.secrets.
// Prefix and Suffix are the literal segments before and after the **
// wildcard; Section repeats the ones inside the braces.
type SourceSpec struct {
	Prefix  []string
	Suffix  []string
	Section SectionSpec
}

// Pattern renders the spec in its dotted prefix.*.suffix form.
func (s *SourceSpec) Pattern() string {
	return strings.Join(slices.Concat(s.Prefix, []string{"*"}, s.Suffix), ".")
}

// ParseSource parses a domain pattern.  Segments are separated by
// dots, one segment must be the ** wildcard, and one brace pair may
// mark the section.  Quoted segments keep dots and braces literal.
func ParseSource(s string) (*SourceSpec, error) {
	res := &SourceSpec{}
	var (
		buf      strings.Builder
		quote    byte
		seg      bool
		quoted   bool
		inSect   bool
		sectSeen bool
		extSeen  bool
	)
	flush := func(i int) error {
		if !seg {
			return fmt.Errorf("%w: empty segment at %d in %q", ErrPattern, i, s)
		}
		text, wasQuoted := buf.String(), quoted
		buf.Reset()
		seg, quoted = false, false
		if text == "**" && !wasQuoted {
			if extSeen {
				return fmt.Errorf("%w: second ** at %d in %q", ErrPattern, i, s)
			}
			extSeen = true
			return nil
		}
		if extSeen {
			res.Suffix = append(res.Suffix, text)
			if inSect {
				res.Section.Suffix = append(res.Section.Suffix, text)
			}
			return nil
		}
		res.Prefix = append(res.Prefix, text)
		if inSect {
			res.Section.Prefix = append(res.Section.Prefix, text)
		}
		return nil
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
				continue
			}
			buf.WriteByte(c)
			continue
		}
		switch c {
		case '.':
			if err := flush(i); err != nil {
				return nil, err
			}
		case '{':
			if seg || inSect || sectSeen {
				return nil, fmt.Errorf("%w: unexpected { at %d in %q", ErrPattern, i, s)
			}
			inSect = true
		case '}':
			if !inSect {
				return nil, fmt.Errorf("%w: unexpected } at %d in %q", ErrPattern, i, s)
			}
			if err := flush(i); err != nil {
				return nil, err
			}
			inSect, sectSeen = false, true
			if i+1 < len(s) {
				if s[i+1] != '.' {
					return nil, fmt.Errorf("%w: } must end a segment at %d in %q", ErrPattern, i+1, s)
				}
				i++
			}
		case '"', '\'':
			quote = c
			seg, quoted = true, true
		default:
			buf.WriteByte(c)
			seg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("%w: unterminated quote in %q", ErrPattern, s)
	}
	if inSect {
		return nil, fmt.Errorf("%w: unclosed { in %q", ErrPattern, s)
	}
	if seg {
		if err := flush(len(s)); err != nil {
			return nil, err
		}
	}
	if !extSeen {
		return nil, fmt.Errorf("%w: missing ** in %q", ErrPattern, s)
	}
	return res, nil
}

// Fill marks a path segment that matched domain segments substitute.
type Fill int

const (
	FillNone Fill = iota
	FillSingle
	FillExtend
)

// Part is one segment of a path pattern, either a literal or a fill.
type Part struct {
	Fill Fill
	Lit  string
}

var (
	Single = Part{Fill: FillSingle}
	Extend = Part{Fill: FillExtend}
)

func Lit(s string) Part { return Part{Lit: s} }

func (p Part) String() string {
	switch p.Fill {
	case FillSingle:
		return "{}"
	case FillExtend:
		return "{**}"
	default:
		return p.Lit
	}
}

// PathSpec is a parsed storage pattern: a file path template and the
// mount section inside that file.
type PathSpec struct {
	Path    []Part
	Section []Part
}

func (s *PathSpec) String() string {
	parts := make([]string, len(s.Path))
	for i, p := range s.Path {
		parts[i] = p.String()
	}
	res := strings.Join(parts, "/")
	if len(s.Section) == 0 {
		return res
	}
	sect := make([]string, len(s.Section))
	for i, p := range s.Section {
		sect[i] = p.String()
	}
	return res + "::" + strings.Join(sect, ".")
}

// ParsePath parses a storage pattern such as
// ./config/modules/{}::config.{**}.  The file part is split on
// slashes, a :: (or a lone :) separates the mount section, split on
// dots.  {} and {*} are single fills, {**} the only extend fill
// allowed across both halves.
func ParsePath(s string) (*PathSpec, error) {
	pathPart, sectPart := s, ""
	if i := strings.IndexByte(s, ':'); i >= 0 {
		pathPart = s[:i]
		sectPart = strings.TrimPrefix(s[i+1:], ":")
	}
	res := &PathSpec{}
	extends := 0
	mk := func(seg string) (Part, error) {
		switch seg {
		case "":
			return Part{}, fmt.Errorf("%w: empty segment in %q", ErrPattern, s)
		case "{}", "{*}":
			return Single, nil
		case "{**}":
			extends++
			if extends > 1 {
				return Part{}, fmt.Errorf("%w: second {**} in %q", ErrPattern, s)
			}
			return Extend, nil
		}
		return Lit(seg), nil
	}
	for i, seg := range strings.Split(pathPart, "/") {
		if seg == "" && i == 0 {
			// rooted path
			res.Path = append(res.Path, Lit(""))
			continue
		}
		p, err := mk(seg)
		if err != nil {
			return nil, err
		}
		res.Path = append(res.Path, p)
	}
	if sectPart != "" {
		for _, seg := range strings.Split(sectPart, ".") {
			p, err := mk(seg)
			if err != nil {
				return nil, err
			}
			res.Section = append(res.Section, p)
		}
	}
	return res, nil
}

// FormattedPath is the result of filling a [PathSpec] with the
// matched segments of a domain.
type FormattedPath struct {
	Path      string
	MountDest []string
}

// Format substitutes parts into the spec's fills.  Single fills ahead
// of the extend consume from the front, ones after it from the back,
// and the extend takes whatever remains in between.  Without an
// extend the part count must match the single count.  A nil result
// means the counts cannot reconcile.
func (s *PathSpec) Format(parts []string) *FormattedPath {
	singles, extends := 0, 0
	for _, p := range slices.Concat(s.Path, s.Section) {
		switch p.Fill {
		case FillSingle:
			singles++
		case FillExtend:
			extends++
		}
	}
	take := len(parts) - singles
	if take < 0 || extends > 1 || (extends == 0 && take != 0) {
		return nil
	}
	i := 0
	expand := func(ps []Part) []string {
		var res []string
		for _, p := range ps {
			switch p.Fill {
			case FillSingle:
				res = append(res, parts[i])
				i++
			case FillExtend:
				res = append(res, parts[i:i+take]...)
				i += take
			default:
				res = append(res, p.Lit)
			}
		}
		return res
	}
	pathParts := expand(s.Path)
	mount := expand(s.Section)
	return &FormattedPath{Path: strings.Join(pathParts, "/"), MountDest: mount}
}
