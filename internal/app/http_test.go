package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"insintesi/api/internal/store"
)

func signedInServer(t *testing.T, fs *fakeStore) (*HTTPServer, *Service, string) {
	t.Helper()
	lead := store.Lead{ID: "lead-1", Name: "Avery", Email: "avery@example.com"}
	if fs.getLeadByIDFn == nil {
		fs.getLeadByIDFn = func(_ context.Context, leadID string) (store.Lead, error) {
			if leadID != lead.ID {
				return store.Lead{}, sql.ErrNoRows
			}
			return lead, nil
		}
	}
	svc := newTestService(fs)
	session, err := svc.issueSession(context.Background(), lead)
	if err != nil {
		t.Fatalf("issueSession() error = %v", err)
	}
	return NewHTTPServer(svc, "*"), svc, session.Token
}

func doJSON(t *testing.T, server *HTTPServer, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = bytes.NewBufferString("{}")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

func parseBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response %q: %v", rr.Body.String(), err)
	}
	return payload
}

func TestRegisterAndSignInContract(t *testing.T) {
	var saved *store.Lead
	fs := &fakeStore{
		createLeadFn: func(_ context.Context, lead store.Lead) error {
			saved = &lead
			return nil
		},
		getLeadByEmailFn: func(_ context.Context, email string) (store.Lead, error) {
			if saved != nil && saved.Email == email {
				return *saved, nil
			}
			return store.Lead{}, sql.ErrNoRows
		},
	}
	svc := newTestService(fs)
	server := NewHTTPServer(svc, "*")

	rr := doJSON(t, server, http.MethodPost, "/api/auth/register", "",
		`{"name":"Avery","email":"Avery@Example.com","password":"hunter2hunter2"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload := parseBody(t, rr)
	leadPayload, _ := payload["lead"].(map[string]any)
	if leadPayload["email"] != "avery@example.com" {
		t.Fatalf("expected lowercased email, got %v", leadPayload["email"])
	}

	rr = doJSON(t, server, http.MethodPost, "/api/auth/token", "",
		`{"email":"avery@example.com","password":"hunter2hunter2"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload = parseBody(t, rr)
	accessToken, _ := payload["accessToken"].(string)
	refreshToken, _ := payload["refreshToken"].(string)
	if accessToken == "" || refreshToken == "" {
		t.Fatalf("expected both tokens, got %v", payload)
	}
	if payload["leadName"] != "Avery" {
		t.Fatalf("expected leadName Avery, got %v", payload["leadName"])
	}

	rr = doJSON(t, server, http.MethodPost, "/api/auth/refresh", "",
		`{"refreshToken":"`+refreshToken+`"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on refresh, got %d body=%s", rr.Code, rr.Body.String())
	}

	// The old refresh token was rotated away.
	rr = doJSON(t, server, http.MethodPost, "/api/auth/refresh", "",
		`{"refreshToken":"`+refreshToken+`"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for rotated token, got %d", rr.Code)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	fs := &fakeStore{
		getLeadByEmailFn: func(_ context.Context, email string) (store.Lead, error) {
			return store.Lead{ID: "lead-1", Email: email}, nil
		},
	}
	server := NewHTTPServer(newTestService(fs), "*")

	rr := doJSON(t, server, http.MethodPost, "/api/auth/register", "",
		`{"name":"Avery","email":"avery@example.com","password":"hunter2hunter2"}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["code"] != "EMAIL_EXISTS" {
		t.Fatalf("expected EMAIL_EXISTS, got %s", rr.Body.String())
	}
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	rr := doJSON(t, server, http.MethodPost, "/api/auth/token", "",
		`{"email":"avery@example.com","password":"wrong"}`)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if parseBody(t, rr)["code"] != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS, got %s", rr.Body.String())
	}
}

func TestProtectedRoutesRequireBearer(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	for _, path := range []string{"/api/questions", "/api/teams", "/api/users", "/api/search?q=x"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		server.Handler().ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, rr.Code)
		}
		if parseBody(t, rr)["code"] != "UNAUTHORIZED" {
			t.Fatalf("%s: expected UNAUTHORIZED, got %s", path, rr.Body.String())
		}
	}
}

func TestAnswerRoutesArePublic(t *testing.T) {
	fs := &fakeStore{
		getAnswerTokenFn: func(_ context.Context, value string) (store.AnswerToken, error) {
			if value != "ans_public" {
				return store.AnswerToken{}, sql.ErrNoRows
			}
			return store.AnswerToken{Value: value, QuestionID: "qst-1"}, nil
		},
		getQuestionFn: func(_ context.Context, questionID string) (store.Question, error) {
			return store.Question{ID: questionID, LeadID: "lead-1", Content: "Keep standups?", QuestionType: "stance_analysis"}, nil
		},
	}
	server := NewHTTPServer(newTestService(fs), "*")

	req := httptest.NewRequest(http.MethodGet, "/api/answers/question/ans_public", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload := parseBody(t, rr)
	question, _ := payload["question"].(map[string]any)
	if question["content"] != "Keep standups?" {
		t.Fatalf("expected question content, got %v", payload)
	}

	rr = doJSON(t, server, http.MethodPost, "/api/answers/ans_public", "",
		`{"content":"Yes, keep them short."}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload = parseBody(t, rr)
	if payload["ok"] != true {
		t.Fatalf("expected ok, got %v", payload)
	}
	if answerID, _ := payload["answerId"].(string); !strings.HasPrefix(answerID, "asw_") {
		t.Fatalf("expected answer ID, got %v", payload["answerId"])
	}
}

func TestUnknownAnswerTokenIsNotFound(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	req := httptest.NewRequest(http.MethodGet, "/api/answers/question/ans_missing", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestCreateQuestionEndpoint(t *testing.T) {
	fs := &fakeStore{}
	server, _, token := signedInServer(t, fs)

	rr := doJSON(t, server, http.MethodPost, "/api/questions", token,
		`{"content":"Should we adopt trunk-based development?","universal":true}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload := parseBody(t, rr)
	question, _ := payload["question"].(map[string]any)
	if question["questionType"] != "stance_analysis" {
		t.Fatalf("expected classified type, got %v", question["questionType"])
	}
	tokens, _ := payload["tokens"].([]any)
	if len(tokens) != 1 {
		t.Fatalf("expected one token, got %v", payload["tokens"])
	}
}

func TestAnalyzeEndpointsConflictAndForce(t *testing.T) {
	reportID := "rpt-1"
	fs := &fakeStore{
		getQuestionFn: func(_ context.Context, questionID string) (store.Question, error) {
			return store.Question{ID: questionID, LeadID: "lead-1", Content: "Keep standups?", QuestionType: "stance_analysis", ReportID: &reportID}, nil
		},
		listAnswerContentsFn: func(_ context.Context, _ string) ([]string, error) {
			return []string{"Yes", "No"}, nil
		},
	}
	server, _, token := signedInServer(t, fs)

	rr := doJSON(t, server, http.MethodPost, "/api/analyze/qst-1", token, "")
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["code"] != "REPORT_EXISTS" {
		t.Fatalf("expected REPORT_EXISTS, got %s", rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPut, "/api/analyze/qst-1", token, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on force, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["id"] != "rpt_test" {
		t.Fatalf("expected report envelope, got %s", rr.Body.String())
	}
}

func TestStandaloneAnalyzeEndpoint(t *testing.T) {
	server, _, token := signedInServer(t, &fakeStore{})

	rr := doJSON(t, server, http.MethodPost, "/api/analyze", token,
		`{"questionType":"idea_generation","topic":"Improve onboarding","opinions":["More pairing","Better docs"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["question_type"] != "idea_generation" {
		t.Fatalf("expected envelope, got %s", rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodPost, "/api/analyze", token,
		`{"questionType":"poetry_analysis","topic":"x","opinions":["y"]}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestReportStatusEndpoint(t *testing.T) {
	fs := &fakeStore{
		getQuestionFn: func(_ context.Context, questionID string) (store.Question, error) {
			return store.Question{ID: questionID, LeadID: "lead-1"}, nil
		},
	}
	server, _, token := signedInServer(t, fs)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze/report/qst-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["status"] != "pending" {
		t.Fatalf("expected pending, got %s", rr.Body.String())
	}
}

func TestSearchValidatesPagination(t *testing.T) {
	server, _, token := signedInServer(t, &fakeStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=standups&limit=abc", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["code"] != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %s", rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/search?q=standups", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if parseBody(t, rr)["query"] != "standups" {
		t.Fatalf("expected query echoed, got %s", rr.Body.String())
	}
}

func TestExportSetsDownloadHeaders(t *testing.T) {
	fs := &fakeStore{
		getQuestionFn: func(_ context.Context, questionID string) (store.Question, error) {
			return store.Question{ID: questionID, LeadID: "lead-1"}, nil
		},
	}
	server, _, token := signedInServer(t, fs)

	req := httptest.NewRequest(http.MethodGet, "/api/questions/qst-1/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if got := rr.Header().Get("Content-Disposition"); !strings.Contains(got, "report.pdf") {
		t.Fatalf("expected attachment filename, got %q", got)
	}
	if !bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF bytes, got %q", rr.Body.String())
	}
}

func TestReadyReportsRedisOutage(t *testing.T) {
	svc := newTestService(&fakeStore{})
	svc.sessions = &fakeSessions{leads: map[string]store.Lead{}, pingErr: context.DeadlineExceeded}
	server := NewHTTPServer(svc, "*")

	req := httptest.NewRequest(http.MethodGet, "/api/ready", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", rr.Code, rr.Body.String())
	}
	payload := parseBody(t, rr)
	if payload["status"] != "not_ready" {
		t.Fatalf("expected not_ready, got %v", payload["status"])
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	rr = httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 before routing unknown paths, got %d", rr.Code)
	}
}

func TestRequestIDPropagatesToResponse(t *testing.T) {
	server := NewHTTPServer(newTestService(&fakeStore{}), "*")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("expected request ID echoed, got %q", got)
	}

	rr = httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected generated request ID")
	}
}
