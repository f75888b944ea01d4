package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrReportClaimed is returned when a question already has a report linked.
var ErrReportClaimed = errors.New("question already has a report")

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ── Leads ──

func (s *PostgresStore) CreateLead(ctx context.Context, lead Lead) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leads (id, name, email, password_hash)
		VALUES ($1, $2, $3, $4)
	`, lead.ID, lead.Name, lead.Email, lead.PasswordHash)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetLeadByEmail(ctx context.Context, email string) (Lead, error) {
	var lead Lead
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM leads WHERE email = $1
	`, email).Scan(&lead.ID, &lead.Name, &lead.Email, &lead.PasswordHash, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

func (s *PostgresStore) GetLeadByID(ctx context.Context, id string) (Lead, error) {
	var lead Lead
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM leads WHERE id = $1
	`, id).Scan(&lead.ID, &lead.Name, &lead.Email, &lead.PasswordHash, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// ── Users ──

func (s *PostgresStore) CreateUser(ctx context.Context, user User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, lead_id, name, email)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.LeadID, user.Name, user.Email)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, leadID, userID string) (User, error) {
	var user User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, lead_id, name, email, created_at, updated_at
		FROM users WHERE id = $1 AND lead_id = $2
	`, userID, leadID).Scan(&user.ID, &user.LeadID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context, leadID string) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lead_id, name, email, created_at, updated_at
		FROM users WHERE lead_id = $1
		ORDER BY created_at
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.LeadID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ── Teams ──

func (s *PostgresStore) CreateTeam(ctx context.Context, team Team) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (id, lead_id, name)
		VALUES ($1, $2, $3)
	`, team.ID, team.LeadID, team.Name)
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetTeam(ctx context.Context, leadID, teamID string) (Team, error) {
	var team Team
	err := s.db.QueryRowContext(ctx, `
		SELECT id, lead_id, name, created_at, updated_at
		FROM teams WHERE id = $1 AND lead_id = $2
	`, teamID, leadID).Scan(&team.ID, &team.LeadID, &team.Name, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return Team{}, err
	}
	return team, nil
}

func (s *PostgresStore) ListTeams(ctx context.Context, leadID string) ([]Team, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lead_id, name, created_at, updated_at
		FROM teams WHERE lead_id = $1
		ORDER BY created_at
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]Team, 0)
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.LeadID, &team.Name, &team.CreatedAt, &team.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *PostgresStore) AddUserToTeam(ctx context.Context, teamID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_memberships (team_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, user_id) DO NOTHING
	`, teamID, userID)
	if err != nil {
		return fmt.Errorf("add user to team: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListTeamUsers(ctx context.Context, teamID string) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.lead_id, u.name, u.email, u.created_at, u.updated_at
		FROM users u
		JOIN team_memberships tm ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY u.created_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list team users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.LeadID, &user.Name, &user.Email, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan team user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// ── Questions ──

func (s *PostgresStore) CreateQuestion(ctx context.Context, question Question) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, lead_id, content, question_type)
		VALUES ($1, $2, $3, $4)
	`, question.ID, question.LeadID, question.Content, question.QuestionType)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetQuestion(ctx context.Context, questionID string) (Question, error) {
	var question Question
	err := s.db.QueryRowContext(ctx, `
		SELECT id, lead_id, content, question_type, report_id, created_at, updated_at
		FROM questions WHERE id = $1
	`, questionID).Scan(&question.ID, &question.LeadID, &question.Content, &question.QuestionType, &question.ReportID, &question.CreatedAt, &question.UpdatedAt)
	if err != nil {
		return Question{}, err
	}
	return question, nil
}

func (s *PostgresStore) ListQuestions(ctx context.Context, leadID string) ([]Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lead_id, content, question_type, report_id, created_at, updated_at
		FROM questions WHERE lead_id = $1
		ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := make([]Question, 0)
	for rows.Next() {
		var question Question
		if err := rows.Scan(&question.ID, &question.LeadID, &question.Content, &question.QuestionType, &question.ReportID, &question.CreatedAt, &question.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

func (s *PostgresStore) DeleteQuestion(ctx context.Context, leadID, questionID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1 AND lead_id = $2`, questionID, leadID)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ── Answers ──

func (s *PostgresStore) CreateAnswer(ctx context.Context, answer Answer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, question_id, content)
		VALUES ($1, $2, $3)
	`, answer.ID, answer.QuestionID, answer.Content)
	if err != nil {
		return fmt.Errorf("insert answer: %w", err)
	}
	return nil
}

func (s *PostgresStore) CountAnswers(ctx context.Context, questionID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM answers WHERE question_id = $1`, questionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count answers: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) ListAnswerContents(ctx context.Context, questionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT content FROM answers WHERE question_id = $1 ORDER BY created_at
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	contents := make([]string, 0)
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		contents = append(contents, content)
	}
	return contents, rows.Err()
}

// ── Answer tokens ──

func (s *PostgresStore) CreateAnswerToken(ctx context.Context, token AnswerToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answer_tokens (token_value, question_id, user_id, expires_at, used)
		VALUES ($1, $2, $3, $4, $5)
	`, token.Value, token.QuestionID, token.UserID, token.ExpiresAt, token.Used)
	if err != nil {
		return fmt.Errorf("insert answer token: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetAnswerToken(ctx context.Context, value string) (AnswerToken, error) {
	var token AnswerToken
	err := s.db.QueryRowContext(ctx, `
		SELECT token_value, question_id, user_id, expires_at, used, created_at
		FROM answer_tokens WHERE token_value = $1
	`, value).Scan(&token.Value, &token.QuestionID, &token.UserID, &token.ExpiresAt, &token.Used, &token.CreatedAt)
	if err != nil {
		return AnswerToken{}, err
	}
	return token, nil
}

func (s *PostgresStore) MarkTokenUsed(ctx context.Context, value string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE answer_tokens SET used = TRUE WHERE token_value = $1 AND used IS NOT NULL
	`, value)
	if err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListQuestionTokens(ctx context.Context, questionID string) ([]AnswerToken, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token_value, question_id, user_id, expires_at, used, created_at
		FROM answer_tokens WHERE question_id = $1
		ORDER BY created_at
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("list question tokens: %w", err)
	}
	defer rows.Close()

	tokens := make([]AnswerToken, 0)
	for rows.Next() {
		var token AnswerToken
		if err := rows.Scan(&token.Value, &token.QuestionID, &token.UserID, &token.ExpiresAt, &token.Used, &token.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan answer token: %w", err)
		}
		tokens = append(tokens, token)
	}
	return tokens, rows.Err()
}

// ── Analysis reports ──

// SaveReport persists a report. When the report belongs to a stored question
// it also claims questions.report_id in the same transaction; the claim only
// succeeds if report_id is still NULL, so a concurrent run loses with
// ErrReportClaimed and its insert is rolled back.
func (s *PostgresStore) SaveReport(ctx context.Context, report AnalysisReport) error {
	rawInputs, err := json.Marshal(report.RawInputs)
	if err != nil {
		return fmt.Errorf("marshal raw inputs: %w", err)
	}
	details, err := json.Marshal(report.Details)
	if err != nil {
		return fmt.Errorf("marshal details: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin report tx: %w", err)
	}
	defer tx.Rollback()

	var questionID any
	if report.QuestionID != "" {
		questionID = report.QuestionID
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO analysis_reports (id, question_id, question_type, topic, raw_inputs, summary, recommendation, ai_thought, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, report.ID, questionID, report.QuestionType, report.Topic, rawInputs, report.Summary, report.Recommendation, report.Thought, details); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	if report.QuestionID != "" {
		result, err := tx.ExecContext(ctx, `
			UPDATE questions SET report_id = $2, updated_at = NOW()
			WHERE id = $1 AND report_id IS NULL
		`, report.QuestionID, report.ID)
		if err != nil {
			return fmt.Errorf("claim question report: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("claim question report: %w", err)
		}
		if affected == 0 {
			return ErrReportClaimed
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetReport(ctx context.Context, reportID string) (AnalysisReport, error) {
	var report AnalysisReport
	var questionID sql.NullString
	var rawInputs, details []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, question_id, question_type, topic, raw_inputs, summary, recommendation, ai_thought, details, created_at, updated_at
		FROM analysis_reports WHERE id = $1
	`, reportID).Scan(&report.ID, &questionID, &report.QuestionType, &report.Topic, &rawInputs, &report.Summary, &report.Recommendation, &report.Thought, &details, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return AnalysisReport{}, err
	}
	report.QuestionID = questionID.String
	if err := json.Unmarshal(rawInputs, &report.RawInputs); err != nil {
		return AnalysisReport{}, fmt.Errorf("unmarshal raw inputs: %w", err)
	}
	if err := json.Unmarshal(details, &report.Details); err != nil {
		return AnalysisReport{}, fmt.Errorf("unmarshal details: %w", err)
	}
	return report, nil
}

// ReleaseQuestionReport clears the report link for a question and removes the
// previous report row, making room for a forced re-analysis.
func (s *PostgresStore) ReleaseQuestionReport(ctx context.Context, questionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin release tx: %w", err)
	}
	defer tx.Rollback()

	var reportID sql.NullString
	if err := tx.QueryRowContext(ctx, `SELECT report_id FROM questions WHERE id = $1 FOR UPDATE`, questionID).Scan(&reportID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE questions SET report_id = NULL, updated_at = NOW() WHERE id = $1`, questionID); err != nil {
		return fmt.Errorf("clear question report: %w", err)
	}
	if reportID.Valid {
		if _, err := tx.ExecContext(ctx, `DELETE FROM analysis_reports WHERE id = $1`, reportID.String); err != nil {
			return fmt.Errorf("delete stale report: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit release tx: %w", err)
	}
	return nil
}
