package kayaku

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/GraiaProject/kayaku/debug"
	"github.com/GraiaProject/kayaku/ir"
)

// Query compiles and runs an expr expression against the document's
// plain projection.  For an object document the top-level members form
// the expression environment; the whole projection is also reachable
// as root, unless a member of that name shadows it.
func Query(doc *ir.Node, src string) (any, error) {
	plain := doc.ToGo()
	env := map[string]any{"root": plain}
	if m, ok := plain.(map[string]any); ok {
		for k, v := range m {
			env[k] = v
		}
	}
	program, err := expr.Compile(src)
	if err != nil {
		return nil, err
	}
	res, err := vm.Run(program, env)
	if debug.Query() {
		debug.Logf("query %q = %v (err=%v)\n", src, res, err)
	}
	return res, err
}
