// Package libdiff computes differences between documents.
//
// [Diff] compares two trees and reports the changes as a flat list of
// [Edit] values addressed by kpath.  Nodes compare by [ir.Equal], so
// trivia and spelling differences are invisible to it.  [Texts]
// compares two renderings line by line.
//
// # Usage
//
//	edits := libdiff.Diff(oldDoc, newDoc)
//	for _, e := range edits {
//		fmt.Println(e)
//	}
//
// # Related Packages
//
//   - github.com/GraiaProject/kayaku/ir - tree representation
//   - github.com/GraiaProject/kayaku/ir/kpath - edit addressing
package libdiff
