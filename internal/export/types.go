// Package export renders analysis reports to PDF via headless Chrome.
package export

import (
	"errors"
	"time"
)

// QuestionInfo holds the question metadata the exporter needs.
type QuestionInfo struct {
	ID       string
	Content  string
	ReportID string
}

// ReportInfo holds the report fields rendered into the export.
type ReportInfo struct {
	ID             string
	QuestionType   string
	Topic          string
	Summary        string
	Recommendation string
	Thought        string
	Details        map[string]any
	CreatedAt      time.Time
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrReportNotReady indicates the question has no finished report to export.
	ErrReportNotReady = errors.New("export report not ready")
	// ErrPDFDependencyMissing indicates PDF export runtime dependencies are unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
)
