package store

import "time"

// Lead is a team lead account. Leads own teams, users, and questions.
type Lead struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is a team member invited to answer questions. Users have no login.
type User struct {
	ID        string
	LeadID    string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Team struct {
	ID        string
	LeadID    string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Question struct {
	ID           string
	LeadID       string
	Content      string
	QuestionType string
	ReportID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Answer struct {
	ID         string
	QuestionID string
	Content    string
	CreatedAt  time.Time
}

// AnswerToken grants access to answer a question. Universal tokens have
// Used == nil and may be redeemed any number of times; individual tokens
// carry Used and optionally the user they were issued to.
type AnswerToken struct {
	Value      string
	QuestionID string
	UserID     *string
	ExpiresAt  *time.Time
	Used       *bool
	CreatedAt  time.Time
}

// AnalysisReport is a persisted pipeline result. QuestionID is empty for
// standalone runs that are not linked to a stored question. Details carries
// the category-specific fields as a JSON object.
type AnalysisReport struct {
	ID             string
	QuestionID     string
	QuestionType   string
	Topic          string
	RawInputs      []string
	Summary        string
	Recommendation string
	Thought        string
	Details        map[string]any
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
