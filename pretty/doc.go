// Package pretty normalizes the layout of parsed documents.
//
// A [Prettifier] rebuilds the whitespace of a tree so that every
// member sits on its own indented line, while keeping every comment
// and every spelling choice the author made.  Single entry containers
// stay inline.
//
// # Usage
//
//	n, err := parse.Parse(d)
//	if err != nil {
//		return err
//	}
//	p := &pretty.Prettifier{TrailComma: true}
//	fmt.Println(encode.MustString(p.Prettify(n)))
//
// # Related Packages
//
//   - [github.com/GraiaProject/kayaku/parse] builds trees.
//   - [github.com/GraiaProject/kayaku/encode] renders them.
package pretty
