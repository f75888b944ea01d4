package export

import (
	"context"
	"fmt"
)

// DataStore defines the data access the exporter needs.
type DataStore interface {
	GetQuestionInfo(ctx context.Context, questionID string) (QuestionInfo, error)
	GetReportInfo(ctx context.Context, reportID string) (ReportInfo, error)
}

// Service renders a question's finished report to PDF.
type Service struct {
	store DataStore
}

// NewService creates an export service.
func NewService(store DataStore) *Service {
	return &Service{store: store}
}

// ExportReport loads the question's report and renders it to PDF. Questions
// without a linked report fail with ErrReportNotReady.
func (s *Service) ExportReport(ctx context.Context, questionID string) (*Result, error) {
	question, err := s.store.GetQuestionInfo(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if question.ReportID == "" {
		return nil, ErrReportNotReady
	}

	report, err := s.store.GetReportInfo(ctx, question.ReportID)
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}

	data := TemplateData{
		Topic:          report.Topic,
		QuestionType:   report.QuestionType,
		Question:       question.Content,
		Summary:        report.Summary,
		Recommendation: report.Recommendation,
		Thought:        report.Thought,
		DetailsHTML:    renderDetails(report.Details),
		GeneratedAt:    report.CreatedAt,
	}

	html, err := RenderReportHTML(data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	return exportPDF(html, report.Topic)
}
