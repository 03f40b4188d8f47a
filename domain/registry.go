package domain

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/GraiaProject/kayaku/debug"
)

// Registry maps domains to storage locations through their bound
// patterns.  Bindings go in through [Registry.Insert] during setup;
// afterwards lookups are read only and safe to share.  Inserting
// while other goroutines look up is the caller's problem.
type Registry struct {
	root *prefixNode
}

func NewRegistry() *Registry {
	return &Registry{root: &prefixNode{}}
}

// Resolution is a successful lookup: the winning binding and the
// storage location it formats to.
type Resolution struct {
	Source    *SourceSpec
	Path      *PathSpec
	Formatted *FormattedPath
}

type binding struct {
	src  *SourceSpec
	path *PathSpec
}

// The pattern store is a trie over prefix segments whose terminals
// each hold a trie over reversed suffix segments.
type prefixNode struct {
	suffix *suffixNode
	next   map[string]*prefixNode
}

type suffixNode struct {
	bound *binding
	next  map[string]*suffixNode
}

// Insert binds src to path.  Patterns sharing both prefix and suffix
// collide regardless of their sections.
func (r *Registry) Insert(src *SourceSpec, path *PathSpec) error {
	pn := r.root
	for _, seg := range src.Prefix {
		if pn.next == nil {
			pn.next = map[string]*prefixNode{}
		}
		nxt := pn.next[seg]
		if nxt == nil {
			nxt = &prefixNode{}
			pn.next[seg] = nxt
		}
		pn = nxt
	}
	if pn.suffix == nil {
		pn.suffix = &suffixNode{}
	}
	sn := pn.suffix
	for i := len(src.Suffix) - 1; i >= 0; i-- {
		seg := src.Suffix[i]
		if sn.next == nil {
			sn.next = map[string]*suffixNode{}
		}
		nxt := sn.next[seg]
		if nxt == nil {
			nxt = &suffixNode{}
			sn.next[seg] = nxt
		}
		sn = nxt
	}
	if sn.bound != nil {
		return &DuplicateBindingError{Pattern: src.Pattern(), Bound: sn.bound.path}
	}
	sn.bound = &binding{src: src, path: path}
	return nil
}

// Lookup resolves the segments of a domain against the registry.
// Deeper prefix matches win, then deeper suffix matches under them; a
// binding whose path cannot format the matched middle is skipped in
// favor of shallower ones.  A nil result means nothing matched.
func (r *Registry) Lookup(segments []string) *Resolution {
	return r.root.lookup(segments, 0)
}

// Resolve looks up a dotted domain, erroring when nothing matches.
func (r *Registry) Resolve(domain string) (*FormattedPath, error) {
	res := r.Lookup(strings.Split(domain, "."))
	if res == nil {
		if debug.Resolve() {
			debug.Logf("resolve %q: no binding\n", domain)
		}
		return nil, fmt.Errorf("%w: %q", ErrNotBound, domain)
	}
	if debug.Resolve() {
		debug.Logf("resolve %q -> %s via %s\n", domain, res.Formatted.Path, res.Source.Pattern())
	}
	return res.Formatted, nil
}

// RegisterAll parses and inserts a source pattern to path pattern
// map, collecting the failures so one bad entry does not hide the
// rest.
func (r *Registry) RegisterAll(specs map[string]string) error {
	var errs []error
	for _, src := range slices.Sorted(maps.Keys(specs)) {
		srcSpec, err := ParseSource(src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pathSpec, err := ParsePath(specs[src])
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.Insert(srcSpec, pathSpec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *prefixNode) lookup(frags []string, index int) *Resolution {
	if index < len(frags) {
		if nxt := n.next[frags[index]]; nxt != nil {
			if res := nxt.lookup(frags, index+1); res != nil {
				return res
			}
		}
	}
	if n.suffix == nil {
		return nil
	}
	tail := frags[index:]
	sufLen, b := n.suffix.lookup(tail)
	if b == nil {
		return nil
	}
	mid := tail[:len(tail)-sufLen]
	parts := slices.Concat(b.src.Section.Prefix, mid, b.src.Section.Suffix)
	fp := b.path.Format(parts)
	if fp == nil {
		return nil
	}
	return &Resolution{Source: b.src, Path: b.path, Formatted: fp}
}

// lookup walks tail from its end and returns the deepest binding
// along the way, with the number of segments it consumed.
func (n *suffixNode) lookup(tail []string) (int, *binding) {
	depth, found := 0, n.bound
	nd := n
	for i := len(tail) - 1; i >= 0; i-- {
		nxt := nd.next[tail[i]]
		if nxt == nil {
			break
		}
		nd = nxt
		if nd.bound != nil {
			depth, found = len(tail)-i, nd.bound
		}
	}
	return depth, found
}
