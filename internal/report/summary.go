package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/stylesheet/internal/compiler"
)

// SummaryReporter prints build statistics.
type SummaryReporter struct {
	w         io.Writer
	useColors bool
}

// NewSummaryReporter creates a summary reporter.
func NewSummaryReporter(w io.Writer, useColors bool) *SummaryReporter {
	return &SummaryReporter{w: w, useColors: useColors}
}

// PrintStatistics prints the compile counters.
func (r *SummaryReporter) PrintStatistics(output string, stats compiler.Stats, templates, groups int) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Stylesheet Statistics", r.useColors))
	fmt.Fprintln(r.w, "---------------------")

	if output != "" {
		fmt.Fprintf(r.w, "Output:            %s\n", output)
	}
	fmt.Fprintf(r.w, "Sources Merged:    %d\n", stats.Sources)
	fmt.Fprintf(r.w, "Sources Skipped:   %d\n", stats.Skipped)
	fmt.Fprintf(r.w, "Empty Sources:     %d\n", stats.Empty)
	fmt.Fprintf(r.w, "Templates Scanned: %d\n", templates)
	fmt.Fprintf(r.w, "Class Groups:      %d\n", groups)
	fmt.Fprintf(r.w, "Utility Rules:     %d\n", stats.Utilities)
	fmt.Fprintf(r.w, "Selectors:         %d\n", stats.Selectors)
}

// PrintCompression shows bytes in, bytes out and a bar of the saving.
func (r *SummaryReporter) PrintCompression(stats compiler.Stats) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Compression", r.useColors))
	fmt.Fprintln(r.w, "-----------")
	fmt.Fprintf(r.w, "%d bytes → %d bytes\n", stats.BytesIn, stats.BytesOut)
	printProgressBar(r.w, stats.Saved())
}

// PrintWarnings lists non-fatal problems.
func (r *SummaryReporter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Warnings", r.useColors))
	fmt.Fprintln(r.w, "--------")

	for _, warning := range warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// PrintResult prints the one-line outcome of a build.
func (r *SummaryReporter) PrintResult(output string, written bool) {
	if written {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, "✓ Wrote "+output, r.useColors))
		return
	}
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "• "+output+" is up to date", r.useColors))
}

// printProgressBar draws percentage on a 20-cell bar. Values outside
// [0, 100] fill the bar to its nearest end.
func printProgressBar(w io.Writer, percentage float64) {
	const barWidth = 20
	filled := int(percentage / 100 * barWidth)
	filled = max(0, min(barWidth, filled))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
