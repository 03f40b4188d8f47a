package kayaku

import (
	"bytes"
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/GraiaProject/kayaku/debug"
	"github.com/GraiaProject/kayaku/ir"
)

// ApplyPatch applies an RFC 6902 patch to doc in place.  The patch
// runs against the document's plain JSON projection; the outcome is
// merged back member by member, so everything the patch did not touch
// keeps its comments and spellings.
func ApplyPatch(doc *ir.Node, patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	plain, err := projectJSON(doc)
	if err != nil {
		return err
	}
	out, err := ops.Apply(plain)
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("patch ops applied: %s\n", string(out))
	}
	return mergeJSON(doc, out)
}

// ApplyMergePatch applies an RFC 7386 merge patch to doc in place,
// with the same style reconciliation as [ApplyPatch].
func ApplyMergePatch(doc *ir.Node, patch []byte) error {
	plain, err := projectJSON(doc)
	if err != nil {
		return err
	}
	out, err := jsonpatch.MergePatch(plain, patch)
	if err != nil {
		return err
	}
	if debug.Patch() {
		debug.Logf("merge patch applied: %s\n", string(out))
	}
	return mergeJSON(doc, out)
}

// projectJSON renders doc's plain value as JSON.  Documents holding
// NaN or an infinity have no JSON projection and fail here.
func projectJSON(doc *ir.Node) ([]byte, error) {
	return json.Marshal(doc.ToGo())
}

// mergeJSON folds a patched projection back into doc.  Subtrees the
// patch left alone compare equal and stay untouched.
func mergeJSON(doc *ir.Node, d []byte) error {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	src, err := ir.FromGo(v)
	if err != nil {
		return err
	}
	if ir.Equal(doc, src) {
		return nil
	}
	if sameKind(doc, src) {
		return update(doc, src, true)
	}
	src.Before, src.After = doc.Before, doc.After
	src.Parent, src.ParentIndex = doc.Parent, doc.ParentIndex
	*doc = *src
	for _, f := range doc.Fields {
		f.Parent = doc
	}
	for _, val := range doc.Values {
		val.Parent = doc
	}
	return nil
}
