package stylesheet

import (
	"fmt"
	"io"

	"github.com/yacobolo/stylesheet/internal/report"
)

// OutputFormat selects what a build prints.
type OutputFormat int

// Output formats.
const (
	OutputIssues  OutputFormat = iota // diagnostics only
	OutputSummary                     // statistics, compression and warnings
	OutputFull                        // both
	OutputJSON
)

// DetermineOutputFormat maps the --format flag onto an OutputFormat.
// Unknown values fall back to issues.
func DetermineOutputFormat(formatFlag string) OutputFormat {
	switch formatFlag {
	case "summary":
		return OutputSummary
	case "full":
		return OutputFull
	case "json":
		return OutputJSON
	default:
		return OutputIssues
	}
}

// OutputOptions configures WriteOutput.
type OutputOptions struct {
	Color      string // auto, always or never
	PrintLines bool
	PrintKind  bool
}

// WriteOutput prints result in format.
func WriteOutput(w io.Writer, result *BuildResult, format OutputFormat, opts OutputOptions) error {
	reporter := report.NewReporter(w, report.Options{
		Color:      opts.Color,
		PrintLines: opts.PrintLines,
		PrintKind:  opts.PrintKind,
	})

	switch format {
	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil

	case OutputIssues:
		writeIssues(reporter, result)

	case OutputSummary:
		writeSummary(w, reporter.UseColors(), result)

	case OutputFull:
		writeIssues(reporter, result)
		writeSummary(w, reporter.UseColors(), result)
	}

	if !result.HasErrors() {
		report.NewSummaryReporter(w, reporter.UseColors()).PrintResult(result.Output, result.Written)
	}
	return nil
}

func writeIssues(reporter *report.Reporter, result *BuildResult) {
	if len(result.Issues) == 0 {
		return
	}
	reporter.PrintIssues(result.Issues)
	reporter.PrintSummary(result.Issues)
}

func writeSummary(w io.Writer, useColors bool, result *BuildResult) {
	summary := report.NewSummaryReporter(w, useColors)
	if !result.UpToDate {
		summary.PrintStatistics(result.Output, result.Stats, result.Templates, result.Groups)
		summary.PrintCompression(result.Stats)
	}
	summary.PrintWarnings(result.Warnings)
	fmt.Fprintln(w, "")
}
