package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Texts returns a line diff of two texts, with every line prefixed by
// "- ", "+ " or two spaces.  Equal inputs yield the empty string.
func Texts(a, b string) string {
	if a == b {
		return ""
	}
	cfg := diffpatch.New()
	ra, rb, lines := cfg.DiffLinesToRunes(a, b)
	diffs := cfg.DiffMainRunes(ra, rb, false)
	diffs = cfg.DiffCharsToLines(diffs, lines)

	var sb strings.Builder
	for i := range diffs {
		diff := &diffs[i]
		mark := "  "
		switch diff.Type {
		case diffpatch.DiffDelete:
			mark = "- "
		case diffpatch.DiffInsert:
			mark = "+ "
		}
		text := diff.Text
		for len(text) > 0 {
			line := text
			if j := strings.IndexByte(text, '\n'); j >= 0 {
				line, text = text[:j], text[j+1:]
			} else {
				text = ""
			}
			sb.WriteString(mark)
			sb.WriteString(strings.TrimRight(line, "\r"))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
