package stylesheet

import "github.com/yacobolo/stylesheet/internal/report"

// Issue is one compile diagnostic in golangci-lint shape.
type Issue = report.Issue

// IssuePos locates an Issue.
type IssuePos = report.IssuePos

// Issue severities.
const (
	SeverityError   = report.SeverityError
	SeverityWarning = report.SeverityWarning
)
