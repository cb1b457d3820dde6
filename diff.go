package stylesheet

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff compares the stylesheet on disk with a fresh compile, line by line.
// Unchanged lines are omitted; removed lines start with "-" and added
// lines with "+". An empty string means both are identical.
func Diff(current, fresh string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(splitRules(current), splitRules(fresh))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteByte('\n')
			}
		}
	}
	return out.String()
}

// splitRules puts every rule of a minified stylesheet on its own line so
// the diff works on rules instead of one huge line. Pretty output is
// already line-based and passes through.
func splitRules(css string) string {
	if strings.Count(css, "\n") > strings.Count(css, "}")/2 {
		return css
	}
	return strings.ReplaceAll(css, "}", "}\n")
}
