package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"
)

// Color modes accepted by Options.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options configures a Reporter.
type Options struct {
	Color      string // auto, always or never
	PrintLines bool   // show the offending source line with a caret
	PrintKind  bool   // append the error kind, e.g. "(malformed-input)"
}

// Reporter prints issues.
type Reporter struct {
	w          io.Writer
	useColors  bool
	printLines bool
	printKind  bool
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	return &Reporter{
		w:          w,
		useColors:  ShouldUseColors(opts.Color),
		printLines: opts.PrintLines,
		printKind:  opts.PrintKind,
	}
}

// ShouldUseColors resolves a color mode against the environment.
func ShouldUseColors(mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	// CI systems that render ANSI colors
	if os.Getenv("FORCE_COLOR") != "" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// UseColors returns whether colors are enabled.
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues prints issues sorted by file, line and column.
func (r *Reporter) PrintIssues(issues []Issue) {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Pos, sorted[j].Pos
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})

	for _, issue := range sorted {
		r.printIssue(issue)
	}
}

func (r *Reporter) printIssue(issue Issue) {
	location := issue.Pos.Filename + ":"
	if issue.Pos.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)
	}

	style := StyleRed
	if issue.Severity == SeverityWarning {
		style = StyleYellow
	}

	kind := ""
	if r.printKind && issue.FromStage != "" {
		kind = fmt.Sprintf(" (%s)", issue.FromStage)
	}

	fmt.Fprintf(r.w, "%s %s: %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		RenderStyle(style, issue.Severity, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, kind, r.useColors))

	if !r.printLines || len(issue.SourceLines) == 0 {
		return
	}
	for _, line := range issue.SourceLines {
		fmt.Fprintf(r.w, "\t%s\n", line)
	}
	if issue.Pos.Line > 0 {
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator returns a "^" under column of sourceLine, copying
// tabs from the line so the caret lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary prints the issue count with its severity breakdown.
func (r *Reporter) PrintSummary(issues []Issue) {
	var errs, warnings int
	kinds := make(map[string]int)
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
		kinds[issue.FromStage]++
	}

	fmt.Fprintln(r.w, "")
	if errs > 0 && warnings > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(len(issues), "issue", "issues"),
			pluralizeCount(errs, "error", "errors"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(len(issues), "issue", "issues"))
	}

	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Fprintf(r.w, "* %s: %d\n", k, kinds[k])
	}

	if warnings > 0 && errs == 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: skipped sources are not part of the output; run without --skip-invalid to fail on them", r.useColors))
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
