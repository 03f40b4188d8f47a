package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustSource(t *testing.T, s string) *SourceSpec {
	t.Helper()
	src, err := ParseSource(s)
	if err != nil {
		t.Fatalf("%q: %v", s, err)
	}
	return src
}

func mustPath(t *testing.T, s string) *PathSpec {
	t.Helper()
	ps, err := ParsePath(s)
	if err != nil {
		t.Fatalf("%q: %v", s, err)
	}
	return ps
}

func TestRegistryInsertDuplicate(t *testing.T) {
	r := NewRegistry()
	if err := r.Insert(mustSource(t, "{a.b.c.**.d.e.f}"), mustPath(t, "./config:{**}")); err != nil {
		t.Fatal(err)
	}
	if err := r.Insert(mustSource(t, "{a.b.c.**.d.e.credential}"), mustPath(t, "./credential:{**}")); err != nil {
		t.Fatal(err)
	}
	err := r.Insert(mustSource(t, "a.b.c.{**}.d.e.credential"), mustPath(t, "./other:{**}"))
	if err == nil {
		t.Fatal("duplicate accepted")
	}
	var dup *DuplicateBindingError
	if !errors.As(err, &dup) {
		t.Fatalf("error %v is not a DuplicateBindingError", err)
	}
	if dup.Pattern != "a.b.c.*.d.e.credential" {
		t.Errorf("pattern %q", dup.Pattern)
	}
	if !strings.Contains(dup.Error(), "./credential::{**}") {
		t.Errorf("message %q", dup.Error())
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	srcs := make(map[string]*SourceSpec)
	for pattern, path := range map[string]string{
		"a.b.c.{**}.d.e.f":          "./config:{**}",
		"a.b.c.xxx.{**}":            "./hmm:{**}",
		"a.b.c.{**}.d.e.credential": "./credential:{**}",
		"a.b.c.d.{**}.e.f":          "./any:{**}",
		"a.b.c.d.{**}.o.p.e.f":      "./whirl:{**}",
	} {
		src := mustSource(t, pattern)
		srcs[pattern] = src
		if err := r.Insert(src, mustPath(t, path)); err != nil {
			t.Fatal(err)
		}
	}

	lookupTests := []struct {
		segments []string
		pattern  string // winning source, "" for no match
		mount    []string
	}{
		// the deeper prefix beats the shorter one with a suffix
		{
			segments: []string{"a", "b", "c", "xxx", "d", "e", "f"},
			pattern:  "a.b.c.xxx.{**}",
			mount:    []string{"d", "e", "f"},
		},
		{
			segments: []string{"a", "b", "c", "d", "e", "credential"},
			pattern:  "a.b.c.{**}.d.e.credential",
			mount:    nil,
		},
		{
			segments: []string{"a", "b", "c", "d", "p", "xxx", "e", "f"},
			pattern:  "a.b.c.d.{**}.e.f",
			mount:    []string{"p", "xxx"},
		},
		// the deeper suffix wins over the shorter one
		{
			segments: []string{"a", "b", "c", "d", "o", "p", "e", "f"},
			pattern:  "a.b.c.d.{**}.o.p.e.f",
			mount:    nil,
		},
		{segments: []string{"a", "b", "c", "d", "rand"}},
		{segments: []string{"a", "b", "c", "d", "xxx", "f"}},
	}
	for _, lt := range lookupTests {
		res := r.Lookup(lt.segments)
		if lt.pattern == "" {
			if res != nil {
				t.Errorf("%v: matched %v", lt.segments, res.Source)
			}
			continue
		}
		if res == nil {
			t.Errorf("%v: no match", lt.segments)
			continue
		}
		if res.Source != srcs[lt.pattern] {
			t.Errorf("%v: matched %s want %s", lt.segments, res.Source.Pattern(), lt.pattern)
		}
		if d := cmp.Diff(lt.mount, res.Formatted.MountDest); d != "" {
			t.Errorf("%v: mount (-want +got)\n%s", lt.segments, d)
		}
	}
}

// A binding whose path cannot take the matched middle is passed over
// for a shallower one that can.
func TestRegistryFormatFallthrough(t *testing.T) {
	r := NewRegistry()
	if err := r.Insert(mustSource(t, "a.b.c.{**}"), mustPath(t, "a/b/c:{}")); err != nil {
		t.Fatal(err)
	}
	if res := r.Lookup([]string{"a", "b", "c", "d", "e"}); res != nil {
		t.Fatalf("matched %v", res.Formatted)
	}
	if err := r.Insert(mustSource(t, "a.b.{**}"), mustPath(t, "d/e/f.jsonc:{**}")); err != nil {
		t.Fatal(err)
	}
	res := r.Lookup([]string{"a", "b", "c", "d", "e"})
	if res == nil {
		t.Fatal("no match")
	}
	want := &FormattedPath{Path: "d/e/f.jsonc", MountDest: []string{"c", "d", "e"}}
	if d := cmp.Diff(want, res.Formatted); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}
}

func TestRegistryResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterAll(map[string]string{
		"{**}.connection": "./config/connection.jsonc::{**}",
	}); err != nil {
		t.Fatal(err)
	}
	fp, err := r.Resolve("my_mod.config.connection")
	if err != nil {
		t.Fatal(err)
	}
	want := &FormattedPath{
		Path:      "./config/connection.jsonc",
		MountDest: []string{"my_mod", "config"},
	}
	if d := cmp.Diff(want, fp); d != "" {
		t.Errorf("(-want +got)\n%s", d)
	}

	if _, err := r.Resolve("other.domain"); !errors.Is(err, ErrNotBound) {
		t.Errorf("got %v", err)
	}
}

// One bad entry must not hide the rest.
func TestRegisterAllPartialFailure(t *testing.T) {
	r := NewRegistry()
	err := r.RegisterAll(map[string]string{
		"{**}.a": "f1:{**}",
		"**.a":   "f2:{**}",
		"nope":   "f3:{**}",
		"{**}.b": "f4:{**}",
	})
	if err == nil {
		t.Fatal("no error")
	}
	var dup *DuplicateBindingError
	if !errors.As(err, &dup) {
		t.Errorf("no duplicate binding in %v", err)
	}
	if !strings.Contains(err.Error(), "missing **") {
		t.Errorf("no pattern error in %v", err)
	}
	if _, err := r.Resolve("mod.b"); err != nil {
		t.Errorf("valid binding lost: %v", err)
	}
}
