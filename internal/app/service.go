package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"insintesi/api/internal/analysis"
	"insintesi/api/internal/auth"
	"insintesi/api/internal/authpw"
	"insintesi/api/internal/config"
	"insintesi/api/internal/email"
	"insintesi/api/internal/export"
	"insintesi/api/internal/search"
	"insintesi/api/internal/session"
	"insintesi/api/internal/store"
	"insintesi/api/internal/util"
)

// Session is an authenticated lead session backed by an access token.
type Session struct {
	Token        string
	RefreshToken string
	LeadID       string
	LeadName     string
	Email        string
	JTI          string
	ExpiresAt    time.Time
}

// CreateQuestionInput is the payload for creating a question. A universal
// question gets one shareable token; otherwise individual tokens are issued
// per user, resolved from UserIDs and/or TeamID.
type CreateQuestionInput struct {
	Content       string   `json:"content"`
	Universal     bool     `json:"universal"`
	ExpiresInDays int      `json:"expiresInDays"`
	UserIDs       []string `json:"userIds"`
	TeamID        string   `json:"teamId"`
}

// StandaloneAnalysisInput is the payload for an analysis run that is not
// attached to a stored question.
type StandaloneAnalysisInput struct {
	QuestionType string   `json:"questionType"`
	Topic        string   `json:"topic"`
	Opinions     []string `json:"opinions"`
}

type dataStore interface {
	Ping(context.Context) error

	CreateLead(context.Context, store.Lead) error
	GetLeadByEmail(context.Context, string) (store.Lead, error)
	GetLeadByID(context.Context, string) (store.Lead, error)

	CreateUser(context.Context, store.User) error
	GetUser(ctx context.Context, leadID, userID string) (store.User, error)
	ListUsers(context.Context, string) ([]store.User, error)

	CreateTeam(context.Context, store.Team) error
	GetTeam(ctx context.Context, leadID, teamID string) (store.Team, error)
	ListTeams(context.Context, string) ([]store.Team, error)
	AddUserToTeam(ctx context.Context, teamID, userID string) error
	ListTeamUsers(context.Context, string) ([]store.User, error)

	CreateQuestion(context.Context, store.Question) error
	GetQuestion(context.Context, string) (store.Question, error)
	ListQuestions(context.Context, string) ([]store.Question, error)
	DeleteQuestion(ctx context.Context, leadID, questionID string) error

	CreateAnswer(context.Context, store.Answer) error
	CountAnswers(context.Context, string) (int, error)
	ListAnswerContents(context.Context, string) ([]string, error)

	CreateAnswerToken(context.Context, store.AnswerToken) error
	GetAnswerToken(context.Context, string) (store.AnswerToken, error)
	MarkTokenUsed(context.Context, string) error
	ListQuestionTokens(context.Context, string) ([]store.AnswerToken, error)

	GetReport(context.Context, string) (store.AnalysisReport, error)
	ReleaseQuestionReport(context.Context, string) error
}

type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash string, lead store.Lead, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.Lead, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
	Ping(ctx context.Context) error
}

type analyzer interface {
	Classify(ctx context.Context, content string) (string, error)
	Analyze(ctx context.Context, category, topic string, opinions []string, questionID string) (map[string]any, error)
}

type searchIndex interface {
	Search(q search.Query) search.Response
	IndexQuestion(record search.QuestionRecord)
	DeleteQuestion(id string)
}

type reportExporter interface {
	ExportReport(ctx context.Context, questionID string) (*export.Result, error)
}

type emailer interface {
	IsConfigured() bool
	SendInvitationEmail(to, userName, question, answerURL string) error
}

type Service struct {
	cfg      config.Config
	store    dataStore
	sessions sessionStore
	authpw   *authpw.Service
	analyzer analyzer
	search   searchIndex
	exporter reportExporter
	email    emailer
}

func New(cfg config.Config, dataStore *store.PostgresStore, sessions *session.RedisStore, dispatcher *analysis.Dispatcher, searchService *search.Service, emailService *email.Service) *Service {
	return &Service{
		cfg:      cfg,
		store:    dataStore,
		sessions: sessions,
		authpw:   authpw.NewService(dataStore),
		analyzer: dispatcher,
		search:   searchService,
		exporter: export.NewService(exportStore{store: dataStore}),
		email:    emailService,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) PingSessions(ctx context.Context) error {
	return s.sessions.Ping(ctx)
}

// ── Auth ──

func (s *Service) Register(ctx context.Context, name, email, password string) (map[string]any, error) {
	lead, err := s.authpw.Register(ctx, authpw.RegisterRequest{
		Name:     SanitizeText(name),
		Email:    email,
		Password: password,
	})
	if err != nil {
		if errors.Is(err, authpw.ErrEmailTaken) {
			return nil, domainError(http.StatusConflict, "EMAIL_EXISTS", "Email already registered", nil)
		}
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
	}
	return map[string]any{"lead": leadPayload(lead)}, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	lead, err := s.authpw.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, domainError(http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password", nil)
	}
	return s.issueSession(ctx, lead)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	lead, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, lead)
}

func (s *Service) issueSession(ctx context.Context, lead store.Lead) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.JWTSecret), auth.Claims{
		Sub:   lead.ID,
		Email: lead.Email,
		Name:  lead.Name,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), lead, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		LeadID:       lead.ID,
		LeadName:     lead.Name,
		Email:        lead.Email,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.JWTSecret), token)
	if err != nil {
		return Session{}, err
	}

	lead, err := s.store.GetLeadByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		LeadID:    lead.ID,
		LeadName:  lead.Name,
		Email:     lead.Email,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

// ── Questions ──

func (s *Service) CreateQuestion(ctx context.Context, session Session, input CreateQuestionInput) (map[string]any, error) {
	content := SanitizeText(input.Content)
	if content == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "content is required", nil)
	}

	category, err := s.analyzer.Classify(ctx, content)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidClassification) {
			return nil, domainError(http.StatusUnprocessableEntity, "INVALID_CLASSIFICATION", "Question could not be classified", nil)
		}
		return nil, fmt.Errorf("classify question: %w", err)
	}

	question := store.Question{
		ID:           util.NewID("qst"),
		LeadID:       session.LeadID,
		Content:      content,
		QuestionType: category,
	}
	if err := s.store.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}
	s.search.IndexQuestion(search.QuestionRecord{
		ID:           question.ID,
		Content:      question.Content,
		QuestionType: question.QuestionType,
		LeadID:       question.LeadID,
	})

	var expiresAt *time.Time
	if input.ExpiresInDays > 0 {
		t := time.Now().AddDate(0, 0, input.ExpiresInDays)
		expiresAt = &t
	}

	tokens := make([]map[string]any, 0)
	if input.Universal {
		token := store.AnswerToken{
			Value:      util.NewID("ans"),
			QuestionID: question.ID,
			ExpiresAt:  expiresAt,
		}
		if err := s.store.CreateAnswerToken(ctx, token); err != nil {
			return nil, err
		}
		tokens = append(tokens, tokenPayload(token, s.answerURL(token.Value)))
	} else {
		recipients, err := s.resolveRecipients(ctx, session, input)
		if err != nil {
			return nil, err
		}
		if len(recipients) == 0 {
			return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "userIds or teamId required for individual tokens", nil)
		}
		for _, user := range recipients {
			used := false
			userID := user.ID
			token := store.AnswerToken{
				Value:      util.NewID("ans"),
				QuestionID: question.ID,
				UserID:     &userID,
				ExpiresAt:  expiresAt,
				Used:       &used,
			}
			if err := s.store.CreateAnswerToken(ctx, token); err != nil {
				return nil, err
			}
			answerURL := s.answerURL(token.Value)
			tokens = append(tokens, tokenPayload(token, answerURL))
			if s.email.IsConfigured() {
				if err := s.email.SendInvitationEmail(user.Email, user.Name, content, answerURL); err != nil {
					log.Printf("question %s: invitation to %s failed: %v", question.ID, user.Email, err)
				}
			}
		}
	}

	return map[string]any{
		"question": questionPayload(question),
		"tokens":   tokens,
	}, nil
}

// resolveRecipients collects the distinct users addressed by UserIDs and
// TeamID, all scoped to the session's lead.
func (s *Service) resolveRecipients(ctx context.Context, session Session, input CreateQuestionInput) ([]store.User, error) {
	seen := make(map[string]struct{})
	recipients := make([]store.User, 0)

	add := func(user store.User) {
		if _, dup := seen[user.ID]; dup {
			return
		}
		seen[user.ID] = struct{}{}
		recipients = append(recipients, user)
	}

	if input.TeamID != "" {
		team, err := s.store.GetTeam(ctx, session.LeadID, input.TeamID)
		if err != nil {
			return nil, err
		}
		members, err := s.store.ListTeamUsers(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			add(member)
		}
	}

	for _, userID := range input.UserIDs {
		user, err := s.store.GetUser(ctx, session.LeadID, userID)
		if err != nil {
			return nil, err
		}
		add(user)
	}

	return recipients, nil
}

func (s *Service) answerURL(token string) string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/answer/" + token
}

func (s *Service) ListQuestions(ctx context.Context, session Session) (map[string]any, error) {
	questions, err := s.store.ListQuestions(ctx, session.LeadID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(questions))
	for _, question := range questions {
		items = append(items, questionPayload(question))
	}
	return map[string]any{"questions": items}, nil
}

func (s *Service) GetQuestion(ctx context.Context, session Session, questionID string) (map[string]any, error) {
	question, err := s.ownedQuestion(ctx, session, questionID)
	if err != nil {
		return nil, err
	}
	tokens, err := s.store.ListQuestionTokens(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	tokenItems := make([]map[string]any, 0, len(tokens))
	for _, token := range tokens {
		tokenItems = append(tokenItems, tokenPayload(token, s.answerURL(token.Value)))
	}
	payload := questionPayload(question)
	payload["tokens"] = tokenItems
	return map[string]any{"question": payload}, nil
}

func (s *Service) DeleteQuestion(ctx context.Context, session Session, questionID string) error {
	if err := s.store.DeleteQuestion(ctx, session.LeadID, questionID); err != nil {
		return err
	}
	s.search.DeleteQuestion(questionID)
	return nil
}

func (s *Service) AnswersCount(ctx context.Context, session Session, questionID string) (map[string]any, error) {
	question, err := s.ownedQuestion(ctx, session, questionID)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountAnswers(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"questionId": question.ID, "count": count}, nil
}

// ── Answers ──

// QuestionForToken resolves the question behind an answer token. Unknown
// tokens are indistinguishable from deleted questions, both are 404.
func (s *Service) QuestionForToken(ctx context.Context, tokenValue string) (map[string]any, error) {
	token, err := s.store.GetAnswerToken(ctx, tokenValue)
	if err != nil {
		return nil, err
	}
	if err := validateToken(token); err != nil {
		return nil, err
	}
	question, err := s.store.GetQuestion(ctx, token.QuestionID)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"question": map[string]any{
			"id":           question.ID,
			"content":      question.Content,
			"questionType": question.QuestionType,
		},
	}, nil
}

func (s *Service) SubmitAnswer(ctx context.Context, tokenValue, content string) (map[string]any, error) {
	clean := SanitizeText(content)
	if clean == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "content is required", nil)
	}

	token, err := s.store.GetAnswerToken(ctx, tokenValue)
	if err != nil {
		return nil, err
	}
	if err := validateToken(token); err != nil {
		return nil, err
	}

	answer := store.Answer{
		ID:         util.NewID("asw"),
		QuestionID: token.QuestionID,
		Content:    clean,
	}
	if err := s.store.CreateAnswer(ctx, answer); err != nil {
		return nil, err
	}
	// No-op for universal tokens, they stay redeemable.
	if err := s.store.MarkTokenUsed(ctx, token.Value); err != nil {
		return nil, err
	}
	return map[string]any{"ok": true, "answerId": answer.ID}, nil
}

func validateToken(token store.AnswerToken) error {
	if token.ExpiresAt != nil && time.Now().After(*token.ExpiresAt) {
		return domainError(http.StatusForbidden, "TOKEN_EXPIRED", "Answer token expired", nil)
	}
	if token.Used != nil && *token.Used {
		return domainError(http.StatusForbidden, "TOKEN_USED", "Answer token already used", nil)
	}
	return nil
}

// ── Analysis ──

func (s *Service) AnalyzeQuestion(ctx context.Context, session Session, questionID string, force bool) (map[string]any, error) {
	question, err := s.ownedQuestion(ctx, session, questionID)
	if err != nil {
		return nil, err
	}
	if question.ReportID != nil {
		if !force {
			return nil, domainError(http.StatusConflict, "REPORT_EXISTS", "Question already has a report", nil)
		}
		if err := s.store.ReleaseQuestionReport(ctx, question.ID); err != nil {
			return nil, err
		}
	}

	opinions, err := s.store.ListAnswerContents(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	if len(opinions) == 0 {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "question has no answers to analyze", nil)
	}

	envelope, err := s.analyzer.Analyze(ctx, question.QuestionType, question.Content, opinions, question.ID)
	if err != nil {
		if errors.Is(err, store.ErrReportClaimed) {
			return nil, domainError(http.StatusConflict, "REPORT_EXISTS", "Question already has a report", nil)
		}
		return nil, err
	}
	return envelope, nil
}

func (s *Service) AnalyzeStandalone(ctx context.Context, input StandaloneAnalysisInput) (map[string]any, error) {
	if !analysis.ValidCategory(input.QuestionType) {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", fmt.Sprintf("unsupported question type %q", input.QuestionType), nil)
	}
	topic := SanitizeText(input.Topic)
	if topic == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "topic is required", nil)
	}
	opinions := SanitizeAll(input.Opinions)
	if len(opinions) == 0 {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "opinions are required", nil)
	}
	return s.analyzer.Analyze(ctx, input.QuestionType, topic, opinions, "")
}

// ReportStatus distinguishes three states: pending when the question has no
// report link yet, missing when the link points at a vanished row, and ready
// with the full report otherwise.
func (s *Service) ReportStatus(ctx context.Context, session Session, questionID string) (map[string]any, error) {
	question, err := s.ownedQuestion(ctx, session, questionID)
	if err != nil {
		return nil, err
	}
	if question.ReportID == nil {
		return map[string]any{"status": "pending"}, nil
	}
	report, err := s.store.GetReport(ctx, *question.ReportID)
	if errors.Is(err, sql.ErrNoRows) {
		return map[string]any{"status": "missing"}, nil
	}
	if err != nil {
		return nil, err
	}
	return map[string]any{"status": "ready", "report": analysis.Envelope(report)}, nil
}

// ── Search ──

func (s *Service) Search(ctx context.Context, session Session, text string, limit, offset int) (search.Response, error) {
	return s.search.Search(search.Query{
		Text:   text,
		LeadID: session.LeadID,
		Limit:  limit,
		Offset: offset,
	}), nil
}

// ── Export ──

func (s *Service) ExportReport(ctx context.Context, session Session, questionID string) (*export.Result, error) {
	if _, err := s.ownedQuestion(ctx, session, questionID); err != nil {
		return nil, err
	}
	result, err := s.exporter.ExportReport(ctx, questionID)
	if err != nil {
		if errors.Is(err, export.ErrReportNotReady) {
			return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "question has no finished report", nil)
		}
		if errors.Is(err, export.ErrPDFDependencyMissing) {
			return nil, domainError(http.StatusServiceUnavailable, "EXPORT_UNAVAILABLE", "PDF export is not available", nil)
		}
		return nil, err
	}
	return result, nil
}

// ── Teams ──

func (s *Service) CreateTeam(ctx context.Context, session Session, name string) (map[string]any, error) {
	clean := SanitizeText(name)
	if clean == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required", nil)
	}
	team := store.Team{
		ID:     util.NewID("team"),
		LeadID: session.LeadID,
		Name:   clean,
	}
	if err := s.store.CreateTeam(ctx, team); err != nil {
		return nil, err
	}
	return map[string]any{"team": teamPayload(team)}, nil
}

func (s *Service) ListTeams(ctx context.Context, session Session) (map[string]any, error) {
	teams, err := s.store.ListTeams(ctx, session.LeadID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(teams))
	for _, team := range teams {
		items = append(items, teamPayload(team))
	}
	return map[string]any{"teams": items}, nil
}

func (s *Service) GetTeam(ctx context.Context, session Session, teamID string) (map[string]any, error) {
	team, err := s.store.GetTeam(ctx, session.LeadID, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.store.ListTeamUsers(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	memberItems := make([]map[string]any, 0, len(members))
	for _, member := range members {
		memberItems = append(memberItems, userPayload(member))
	}
	payload := teamPayload(team)
	payload["members"] = memberItems
	return map[string]any{"team": payload}, nil
}

func (s *Service) AddTeamMember(ctx context.Context, session Session, teamID, userID string) (map[string]any, error) {
	team, err := s.store.GetTeam(ctx, session.LeadID, teamID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, session.LeadID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddUserToTeam(ctx, team.ID, user.ID); err != nil {
		return nil, err
	}
	return map[string]any{"ok": true}, nil
}

// ── Users ──

func (s *Service) CreateUser(ctx context.Context, session Session, name, emailAddr string) (map[string]any, error) {
	cleanName := SanitizeText(name)
	cleanEmail := strings.ToLower(strings.TrimSpace(emailAddr))
	if cleanName == "" || cleanEmail == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name and email are required", nil)
	}
	user := store.User{
		ID:     util.NewID("usr"),
		LeadID: session.LeadID,
		Name:   cleanName,
		Email:  cleanEmail,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return map[string]any{"user": userPayload(user)}, nil
}

func (s *Service) ListUsers(ctx context.Context, session Session) (map[string]any, error) {
	users, err := s.store.ListUsers(ctx, session.LeadID)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(users))
	for _, user := range users {
		items = append(items, userPayload(user))
	}
	return map[string]any{"users": items}, nil
}

func (s *Service) GetUser(ctx context.Context, session Session, userID string) (map[string]any, error) {
	user, err := s.store.GetUser(ctx, session.LeadID, userID)
	if err != nil {
		return nil, err
	}
	return map[string]any{"user": userPayload(user)}, nil
}

// ── Helpers ──

// ownedQuestion loads a question and hides other leads' questions behind 404.
func (s *Service) ownedQuestion(ctx context.Context, session Session, questionID string) (store.Question, error) {
	question, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return store.Question{}, err
	}
	if question.LeadID != session.LeadID {
		return store.Question{}, domainError(http.StatusNotFound, "NOT_FOUND", "Not found", nil)
	}
	return question, nil
}

func leadPayload(lead store.Lead) map[string]any {
	return map[string]any{
		"id":        lead.ID,
		"name":      lead.Name,
		"email":     lead.Email,
		"createdAt": lead.CreatedAt,
	}
}

func userPayload(user store.User) map[string]any {
	return map[string]any{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	}
}

func teamPayload(team store.Team) map[string]any {
	return map[string]any{
		"id":        team.ID,
		"name":      team.Name,
		"createdAt": team.CreatedAt,
	}
}

func questionPayload(question store.Question) map[string]any {
	payload := map[string]any{
		"id":           question.ID,
		"content":      question.Content,
		"questionType": question.QuestionType,
		"createdAt":    question.CreatedAt,
		"updatedAt":    question.UpdatedAt,
	}
	if question.ReportID != nil {
		payload["reportId"] = *question.ReportID
	}
	return payload
}

func tokenPayload(token store.AnswerToken, answerURL string) map[string]any {
	payload := map[string]any{
		"token":     token.Value,
		"answerUrl": answerURL,
		"universal": token.Used == nil,
	}
	if token.UserID != nil {
		payload["userId"] = *token.UserID
	}
	if token.ExpiresAt != nil {
		payload["expiresAt"] = *token.ExpiresAt
	}
	return payload
}

// exportStore adapts the data store to the exporter's view of questions and
// reports.
type exportStore struct {
	store dataStore
}

func (a exportStore) GetQuestionInfo(ctx context.Context, questionID string) (export.QuestionInfo, error) {
	question, err := a.store.GetQuestion(ctx, questionID)
	if err != nil {
		return export.QuestionInfo{}, err
	}
	info := export.QuestionInfo{ID: question.ID, Content: question.Content}
	if question.ReportID != nil {
		info.ReportID = *question.ReportID
	}
	return info, nil
}

func (a exportStore) GetReportInfo(ctx context.Context, reportID string) (export.ReportInfo, error) {
	report, err := a.store.GetReport(ctx, reportID)
	if err != nil {
		return export.ReportInfo{}, err
	}
	return export.ReportInfo{
		ID:             report.ID,
		QuestionType:   report.QuestionType,
		Topic:          report.Topic,
		Summary:        report.Summary,
		Recommendation: report.Recommendation,
		Thought:        report.Thought,
		Details:        report.Details,
		CreatedAt:      report.CreatedAt,
	}, nil
}
