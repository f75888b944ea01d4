package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"insintesi/api/internal/store"
	"insintesi/api/internal/util"
)

var (
	// ErrUnsupportedCategory is returned when Analyze is asked to run a
	// pipeline for an unknown question type.
	ErrUnsupportedCategory = errors.New("unsupported question type")

	// ErrInvalidClassification is returned when the model classifies a
	// question outside the supported set.
	ErrInvalidClassification = errors.New("invalid classification")
)

// ReportStore persists pipeline outcomes.
type ReportStore interface {
	SaveReport(ctx context.Context, report store.AnalysisReport) error
}

// Dispatcher routes an analysis request to the category's pipeline and
// persists the outcome.
type Dispatcher struct {
	llm     Completer
	reports ReportStore
}

// NewDispatcher builds a dispatcher over a completion gateway and a report
// store.
func NewDispatcher(llm Completer, reports ReportStore) *Dispatcher {
	return &Dispatcher{llm: llm, reports: reports}
}

// Classify determines the question type from the question content with a
// single structured call. The answer must be exactly one of the supported
// categories.
func (d *Dispatcher) Classify(ctx context.Context, content string) (string, error) {
	out, err := d.llm.CompleteJSON(ctx, classificationPrompt(content), defaultTemperature)
	if err != nil {
		return "", err
	}
	obj, ok := out.(map[string]any)
	if !ok {
		return "", ErrInvalidClassification
	}
	category, _ := obj["type"].(string)
	category = strings.TrimSpace(category)
	if !ValidCategory(category) {
		return "", fmt.Errorf("%w: %q", ErrInvalidClassification, category)
	}
	return category, nil
}

func classificationPrompt(content string) string {
	var b strings.Builder
	b.WriteString("You are an assistant that classifies questions into analytical categories.\n")
	b.WriteString("Analyze the question below and return its most appropriate type.\n\n")
	b.WriteString("Available types:\n")
	for _, category := range Categories {
		fmt.Fprintf(&b, "- %s: %s\n", category, categoryDescriptions[category])
	}
	fmt.Fprintf(&b, "\nQuestion: %q\n\n", content)
	fmt.Fprintf(&b, "Respond ONLY in this JSON format:\n{\"type\": \"<one_of: %s>\"}", strings.Join(Categories, " | "))
	return b.String()
}

// Analyze runs the category's pipeline over the opinions and persists the
// outcome. questionID may be empty for standalone runs; otherwise the saved
// report claims the question's report link, and a question that already has
// one fails with store.ErrReportClaimed. The returned envelope carries the
// common report fields plus the category-specific ones flattened in.
func (d *Dispatcher) Analyze(ctx context.Context, category, topic string, opinions []string, questionID string) (map[string]any, error) {
	stepsFor, ok := pipelines[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCategory, category)
	}

	result, err := execute(ctx, d.llm, topic, opinions, stepsFor())
	if err != nil {
		return nil, err
	}

	details := make(map[string]any, len(result.Details))
	for key, value := range result.Details {
		details[key] = Unwrap(value, key)
	}

	now := time.Now().UTC()
	report := store.AnalysisReport{
		ID:             util.NewID("rpt"),
		QuestionID:     questionID,
		QuestionType:   category,
		Topic:          topic,
		RawInputs:      opinions,
		Summary:        result.Summary,
		Recommendation: result.Recommendation,
		Thought:        result.Thought,
		Details:        details,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := d.reports.SaveReport(ctx, report); err != nil {
		return nil, err
	}
	return Envelope(report), nil
}

// Envelope flattens a report into the response payload: the common fields
// plus every category-specific detail at the top level.
func Envelope(report store.AnalysisReport) map[string]any {
	payload := map[string]any{
		"id":             report.ID,
		"question_type":  report.QuestionType,
		"topic":          report.Topic,
		"summary":        report.Summary,
		"recommendation": report.Recommendation,
		"ai_thought":     report.Thought,
		"created_at":     report.CreatedAt,
		"updated_at":     report.UpdatedAt,
	}
	for key, value := range report.Details {
		payload[key] = value
	}
	return payload
}
