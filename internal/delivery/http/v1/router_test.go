package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"recruiter-pipeline-backend/config"
	v1 "recruiter-pipeline-backend/internal/delivery/http/v1"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/internal/repository/memory"
	"recruiter-pipeline-backend/internal/usecase"
	"recruiter-pipeline-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Errors    []string        `json:"errors"`
	Retryable bool            `json:"retryable"`
	RequestID string          `json:"request_id"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	repo   domain.ApplicationRepository
}

func newTestServer(t *testing.T, healthy bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewApplicationRepository()
	storeCheck := usecase.Pinger(repo.Ping)
	if !healthy {
		storeCheck = func(context.Context) error { return errors.New("down") }
	}

	router := v1.NewRouter(v1.RouterDeps{
		ApplicationUC: usecase.NewApplicationUsecase(repo, validation.New()),
		AnalyticsUC:   usecase.NewAnalyticsUsecase(repo, 30*time.Second),
		HealthUC:      usecase.NewHealthUsecase(map[string]usecase.Pinger{"store": storeCheck}),
		Config: &config.Config{
			GinMode:     gin.TestMode,
			JWTSecret:   testSecret,
			FrontendURL: "http://localhost:3000",
		},
	})
	return &testServer{t: t, router: router, repo: repo}
}

func token(t *testing.T, owner string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": owner,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func (s *testServer) do(method, path, owner string, body interface{}) (*httptest.ResponseRecorder, envelope) {
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
	if owner != "" {
		req.Header.Set("Authorization", "Bearer "+token(s.t, owner))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *testServer) create(owner, name, role string, years float64, status string) domain.Application {
	s.t.Helper()
	body := map[string]interface{}{"candidateName": name, "role": role, "yearsOfExperience": years}
	if status != "" {
		body["status"] = status
	}
	w, env := s.do(http.MethodPost, "/v1/applications", owner, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var app domain.Application
	require.NoError(s.t, json.Unmarshal(env.Data, &app))
	return app
}

func TestHealth(t *testing.T) {
	w, env := newTestServer(t, true).do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	w, env = newTestServer(t, false).do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","store":"unavailable"}`, string(env.Data))
}

func TestRequiresToken(t *testing.T) {
	s := newTestServer(t, true)
	for _, path := range []string{"/v1/applications", "/v1/analytics/dashboard", "/v1/analytics/timeline"} {
		w, _ := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestApplicationLifecycle(t *testing.T) {
	s := newTestServer(t, true)

	app := s.create("owner-a", "Ada Lovelace", "Backend Engineer", 7, "")
	assert.Equal(t, domain.StatusApplied, app.Status)

	w, env := s.do(http.MethodGet, "/v1/applications/"+app.ID, "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var fetched domain.Application
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, domain.StatusApplied, fetched.Status)

	w, env = s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", "owner-a", map[string]string{"status": "offer"})
	require.Equal(t, http.StatusOK, w.Code)
	var moved domain.Application
	require.NoError(t, json.Unmarshal(env.Data, &moved))
	assert.Equal(t, domain.StatusOffer, moved.Status)
	assert.True(t, moved.LastUpdated.After(fetched.LastUpdated))

	// backwards moves are allowed
	w, _ = s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", "owner-a", map[string]string{"status": "applied"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodPut, "/v1/applications/"+app.ID, "owner-a", map[string]string{"notes": "strong systems design"})
	require.Equal(t, http.StatusOK, w.Code)
	var updated domain.Application
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "strong systems design", updated.Notes)
	assert.Equal(t, "Ada Lovelace", updated.CandidateName)

	w, _ = s.do(http.MethodDelete, "/v1/applications/"+app.ID, "owner-a", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/v1/applications/"+app.ID, "owner-a", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusTransitionErrors(t *testing.T) {
	s := newTestServer(t, true)
	app := s.create("owner-a", "Grace Hopper", "Compiler Engineer", 12, "interview")

	w, env := s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", "owner-a", map[string]string{"status": "hired"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, env.Errors)

	// another owner cannot tell the record exists
	w, foreign := s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", "owner-b", map[string]string{"status": "offer"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, missing := s.do(http.MethodPatch, "/v1/applications/2f1c7a8e-6a61-4f0e-9a35-1c1f4c0e8b11/status", "owner-a", map[string]string{"status": "offer"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, missing.Message, foreign.Message)

	w, _ = s.do(http.MethodPatch, "/v1/applications/"+app.ID+"/status", "owner-a", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateValidation(t *testing.T) {
	s := newTestServer(t, true)

	w, env := s.do(http.MethodPost, "/v1/applications", "owner-a", map[string]interface{}{
		"candidateName":     "",
		"yearsOfExperience": -1,
		"status":            "hired",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.GreaterOrEqual(t, len(env.Errors), 3)
}

func TestListFiltersAndPaging(t *testing.T) {
	s := newTestServer(t, true)
	s.create("owner-a", "Alan Turing", "Backend Engineer", 10, "interview")
	s.create("owner-a", "Barbara Liskov", "Frontend Engineer", 3, "")
	s.create("owner-a", "Ken Thompson", "Backend Engineer", 20, "")
	s.create("owner-b", "Linus Torvalds", "Backend Engineer", 25, "")

	w, env := s.do(http.MethodGet, "/v1/applications?role=backend&sortBy=yearsOfExperience&sortOrder=asc", "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list domain.ApplicationList
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Applications, 2)
	assert.Equal(t, "Alan Turing", list.Applications[0].CandidateName)
	assert.Equal(t, int64(2), list.Pagination.TotalItems)

	w, env = s.do(http.MethodGet, "/v1/applications?limit=1&page=2", "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list.Applications, 1)
	assert.Equal(t, domain.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 3, ItemsPerPage: 1}, list.Pagination)

	for _, q := range []string{"page=abc", "page=0", "limit=500", "experienceMin=lots", "sortBy=salary"} {
		w, _ = s.do(http.MethodGet, "/v1/applications?"+q, "owner-a", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestExport(t *testing.T) {
	s := newTestServer(t, true)
	s.create("owner-a", "Alan Turing", "Backend Engineer", 10, "")

	w, _ := s.do(http.MethodGet, "/v1/applications/export?format=csv", "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")
	assert.Contains(t, w.Body.String(), "Alan Turing")

	w, _ = s.do(http.MethodGet, "/v1/applications/export?format=pdf", "owner-a", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t, true)
	for i, status := range []string{"applied", "applied", "applied", "applied", "applied", "interview", "interview", "interview", "offer", "rejected"} {
		s.create("owner-a", "Candidate "+string(rune('A'+i)), "Backend Engineer", float64(i), status)
	}

	w, env := s.do(http.MethodGet, "/v1/analytics/dashboard", "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"rejectionRate":20.0`)
	assert.Contains(t, string(env.Data), `"appliedToInterview":60.0`)
	assert.Contains(t, string(env.Data), `"interviewToOffer":33.3`)
	assert.Contains(t, string(env.Data), `"refreshIntervalSeconds":30`)

	w, env = s.do(http.MethodGet, "/v1/analytics/dashboard", "owner-b", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"statusCounts":[]`)
}

func TestTimelineEndpoint(t *testing.T) {
	s := newTestServer(t, true)
	s.create("owner-a", "Alan Turing", "Backend Engineer", 10, "")

	today := time.Now().UTC().Format("2006-01-02")

	w, env := s.do(http.MethodGet, "/v1/analytics/timeline?period=daily&startDate="+today+"&endDate="+today, "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var res domain.TimelineResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.Len(t, res.TimelineData, 1)
	assert.Equal(t, today, res.TimelineData[0].Key)
	assert.Equal(t, int64(1), res.TimelineData[0].StatusCounts.Applied)

	for _, q := range []string{"period=hourly", "startDate=yesterday", "startDate=2024-02-01&endDate=2024-01-01"} {
		w, _ = s.do(http.MethodGet, "/v1/analytics/timeline?"+q, "owner-a", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestRoleAndExperienceEndpoints(t *testing.T) {
	s := newTestServer(t, true)
	s.create("owner-a", "Alan Turing", "Backend Engineer", 1, "")
	s.create("owner-a", "Barbara Liskov", "Frontend Engineer", 31, "offer")

	w, env := s.do(http.MethodGet, "/v1/analytics/roles?role=front", "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roles []domain.RoleAnalytics
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	require.Len(t, roles, 1)
	assert.Equal(t, int64(1), roles[0].StatusCounts.Offer)

	w, env = s.do(http.MethodGet, "/v1/analytics/experience", "owner-a", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var buckets []domain.ExperienceBucket
	require.NoError(t, json.Unmarshal(env.Data, &buckets))
	require.Len(t, buckets, 2)
	assert.Equal(t, []string{"Alan Turing"}, buckets[0].Candidates)
	assert.Equal(t, "30+", buckets[1].Label)
	assert.Nil(t, buckets[1].Max)
}
