// Package report renders compile diagnostics and build summaries for the
// terminal, in the file:line:col format of golangci-lint.
package report

import (
	"errors"
	"strings"

	"github.com/yacobolo/stylesheet/internal/diag"
)

// Issue is one diagnostic.
type Issue struct {
	FromStage   string   `json:"FromStage"`   // error kind, e.g. "malformed-input"
	Text        string   `json:"Text"`        // "declaration \"color\" has no ':'"
	Severity    string   `json:"Severity"`    // "error" or "warning"
	SourceLines []string `json:"SourceLines"` // the offending line, when known
	Pos         IssuePos `json:"Pos"`
}

// IssuePos locates an issue. Line and Column are 1-based and zero when the
// source text is not available.
type IssuePos struct {
	Filename string `json:"Filename"`
	Offset   int    `json:"Offset"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Severity levels. Sources skipped under --skip-invalid are warnings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// SourceFunc returns the text of the source identified by key.
type SourceFunc func(key string) (string, bool)

// FromError converts a compile error into an Issue. Errors that carry a
// source key and offset are resolved to a line and column through source.
func FromError(err error, severity string, source SourceFunc) Issue {
	var derr *diag.Error
	if !errors.As(err, &derr) {
		return Issue{FromStage: diag.KindOf(err), Text: err.Error(), Severity: severity}
	}

	issue := Issue{
		FromStage: derr.Kind(),
		Text:      derr.Err.Error(),
		Severity:  severity,
		Pos:       IssuePos{Filename: derr.Key, Offset: derr.Offset},
	}

	text, ok := "", false
	if source != nil {
		text, ok = source(derr.Key)
	}
	if !ok || derr.Offset < 0 {
		if derr.Snippet != "" {
			issue.SourceLines = []string{derr.Snippet}
		}
		return issue
	}

	issue.Pos.Line, issue.Pos.Column = diag.Position(text, derr.Offset)
	if line := sourceLine(text, issue.Pos.Line); line != "" {
		issue.SourceLines = []string{line}
	}
	return issue
}

func sourceLine(text string, line int) string {
	if line <= 0 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if line > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[line-1], "\r")
}
