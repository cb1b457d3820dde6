package stylesheet

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput is the --format json schema.
type JSONOutput struct {
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Output    string      `json:"output"`
	UpToDate  bool        `json:"up_to_date"`
	Written   bool        `json:"written"`
	Summary   JSONSummary `json:"summary"`
	Stats     JSONStats   `json:"stats"`
	Issues    []JSONIssue `json:"issues"`
	Warnings  []string    `json:"warnings"`
}

// JSONSummary holds the issue counts.
type JSONSummary struct {
	TotalIssues int `json:"total_issues"`
	Errors      int `json:"errors"`
	Warnings    int `json:"warnings"`
}

// JSONStats holds the compile counters.
type JSONStats struct {
	SourcesMerged  int     `json:"sources_merged"`
	SourcesSkipped int     `json:"sources_skipped"`
	SourcesEmpty   int     `json:"sources_empty"`
	Templates      int     `json:"templates"`
	ClassGroups    int     `json:"class_groups"`
	UtilityRules   int     `json:"utility_rules"`
	Selectors      int     `json:"selectors"`
	BytesIn        int     `json:"bytes_in"`
	BytesOut       int     `json:"bytes_out"`
	SavedPercent   float64 `json:"saved_percent"`
}

// JSONIssue is one diagnostic.
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
	Severity string `json:"severity"`
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Source   string `json:"source,omitempty"`
}

// WriteJSON writes result as indented JSON.
func WriteJSON(w io.Writer, result *BuildResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildJSONOutput(result))
}

func buildJSONOutput(result *BuildResult) JSONOutput {
	var errs, warnings int
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errs++
		case SeverityWarning:
			warnings++
		}
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Offset:   issue.Pos.Offset,
			Severity: issue.Severity,
			Kind:     issue.FromStage,
			Message:  issue.Text,
			Source:   source,
		}
	}

	warningsList := result.Warnings
	if warningsList == nil {
		warningsList = []string{}
	}

	return JSONOutput{
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Output:    result.Output,
		UpToDate:  result.UpToDate,
		Written:   result.Written,
		Summary: JSONSummary{
			TotalIssues: len(result.Issues),
			Errors:      errs,
			Warnings:    warnings,
		},
		Stats: JSONStats{
			SourcesMerged:  result.Stats.Sources,
			SourcesSkipped: result.Stats.Skipped,
			SourcesEmpty:   result.Stats.Empty,
			Templates:      result.Templates,
			ClassGroups:    result.Groups,
			UtilityRules:   result.Stats.Utilities,
			Selectors:      result.Stats.Selectors,
			BytesIn:        result.Stats.BytesIn,
			BytesOut:       result.Stats.BytesOut,
			SavedPercent:   result.Stats.Saved(),
		},
		Issues:   issues,
		Warnings: warningsList,
	}
}
