package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"assessment_engine/internal/config"
	"assessment_engine/internal/model"
	"assessment_engine/internal/service"
	"assessment_engine/internal/testutil"
	"assessment_engine/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "app-test-secret-0123456789abcdef"
	studentID    = uint(1)
	instructorID = uint(10)
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Reason  string          `json:"reason"`
}

type testServer struct {
	t   *testing.T
	app *App
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: "test"},
		Database:  config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "assessment.db"), LogLevel: "silent"},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		Storage:   config.StorageConfig{Type: "local", LocalPath: filepath.Join(dir, "uploads")},
		Log:       config.LogConfig{Level: "error", File: filepath.Join(dir, "app.log")},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
	}
	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := a.DB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return &testServer{t: t, app: a}
}

func (s *testServer) do(method, path string, userID uint, role model.UserRole, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		token, err := util.GenerateJWT(userID, role, testSecret, time.Hour)
		require.NoError(s.t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func answers(selections map[uint][]uint) service.SubmitRequest {
	var req service.SubmitRequest
	for qid, ids := range selections {
		req.Answers = append(req.Answers, service.AnswerInput{QuestionID: qid, SelectedOptionIDs: ids})
	}
	return req
}

func seed(t *testing.T, s *testServer) model.Evaluation {
	db := s.app.DB
	section := testutil.Course(t, db, "GO-101", false)
	testutil.Enroll(t, db, studentID, "GO-101", model.EnrollmentActive, model.PaymentPending)
	testutil.Instructor(t, db, instructorID, "GO-101")
	return testutil.Evaluation(t, db, section.ID, testutil.EvaluationOpts{
		PassingScore:      60,
		MaxAttempts:       testutil.IntPtr(1),
		MultipleQuestions: 1,
		BooleanQuestions:  1,
	})
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/health", 0, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "cache")

	w, _ = s.do(http.MethodGet, "/metrics", 0, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestRoutesRequireAuthentication(t *testing.T) {
	s := newTestServer(t)
	e := seed(t, s)

	w, _ := s.do(http.MethodGet, fmt.Sprintf("/api/evaluations/%d", e.ID), 0, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/teacher/evaluations/%d/stats", e.ID), studentID, model.Student, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodGet, "/api/evaluations/abc", studentID, model.Student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTakeReopenAndRetake(t *testing.T) {
	s := newTestServer(t)
	e := seed(t, s)

	w, env := s.do(http.MethodGet, fmt.Sprintf("/api/evaluations/%d", e.ID), studentID, model.Student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), "isCorrect")

	// 第一次作答全部答错
	wrong := map[uint][]uint{}
	for _, q := range e.Questions {
		for _, o := range q.Options {
			if !o.IsCorrect {
				wrong[q.ID] = []uint{o.ID}
			}
		}
	}
	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/evaluations/%d/take", e.ID), studentID, model.Student, answers(wrong))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var first service.ScoreResult
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.False(t, first.Passed)
	assert.Equal(t, fmt.Sprintf("/api/attempts/%d/result", first.AttemptID), w.Header().Get("Location"))

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/evaluations/%d/take", e.ID), studentID, model.Student, answers(wrong))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "quota_exceeded", env.Reason)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/evaluations/%d/request-reopen", e.ID), studentID, model.Student,
		map[string]string{"justification": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", env.Reason)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/evaluations/%d/request-reopen", e.ID), studentID, model.Student,
		map[string]string{"justification": "power outage during the quiz"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var request model.EvaluationReopenRequest
	require.NoError(t, json.Unmarshal(env.Data, &request))
	assert.Equal(t, model.ReopenPending, request.Status)

	w, _ = s.do(http.MethodPost, fmt.Sprintf("/api/teacher/reopen-requests/%d/approve", request.ID), instructorID, model.Teacher,
		map[string]string{"note": "ok"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/evaluations/%d/eligibility", e.ID), studentID, model.Student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var eligibility service.Eligibility
	require.NoError(t, json.Unmarshal(env.Data, &eligibility))
	assert.True(t, eligibility.CanAttempt)
	assert.Equal(t, 1, eligibility.BonusAttempts)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/evaluations/%d/take", e.ID), studentID, model.Student, answers(testutil.CorrectAnswers(e)))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var second service.ScoreResult
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.True(t, second.Passed)
	assert.Equal(t, 2, second.Sequence)
	assert.Equal(t, float64(100), second.Score)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/attempts/%d/result", second.AttemptID), studentID, model.Student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var result service.AttemptResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Len(t, result.Questions, 2)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/teacher/evaluations/%d/stats", e.ID), instructorID, model.Teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats service.EvaluationStats
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.EqualValues(t, 2, stats.SubmittedAttempts)
	assert.EqualValues(t, 1, stats.PassedAttempts)

	w, env = s.do(http.MethodPost, fmt.Sprintf("/api/teacher/evaluations/%d/attempts/export", e.ID), instructorID, model.Teacher, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var export service.ExportResult
	require.NoError(t, json.Unmarshal(env.Data, &export))
	assert.Equal(t, 2, export.Rows)
}

func TestTeacherCatalogRoutes(t *testing.T) {
	s := newTestServer(t)
	e := seed(t, s)

	w, env := s.do(http.MethodPost, fmt.Sprintf("/api/teacher/sections/%d/evaluations", e.SectionID), instructorID, model.Teacher,
		map[string]interface{}{
			"title":       "Final",
			"maxAttempts": 2,
			"questions": []map[string]interface{}{
				{"type": model.QuestionBoolean, "text": "Go has generics", "answer": true},
			},
		})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Evaluation
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Questions, 1)
	assert.Len(t, created.Questions[0].Options, 2)

	w, env = s.do(http.MethodGet, fmt.Sprintf("/api/teacher/sections/%d/evaluations", e.SectionID), instructorID, model.Teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		List  []model.Evaluation `json:"list"`
		Total int64              `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.List, 2)
	assert.EqualValues(t, 2, page.Total)

	// 非授课教师
	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/teacher/evaluations/%d", created.ID), 11, model.Teacher, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodDelete, fmt.Sprintf("/api/teacher/evaluations/%d", created.ID), instructorID, model.Teacher, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, fmt.Sprintf("/api/teacher/evaluations/%d", created.ID), instructorID, model.Teacher, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
