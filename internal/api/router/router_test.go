package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testhub/internal/pkg/config"
	"testhub/internal/pkg/database"
	"testhub/internal/repository"
	"testhub/internal/service"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Database: ":memory:", LogLevel: "silent"},
		Auth: config.AuthConfig{
			JWT:     config.JWTConfig{Secret: "router-test-secret", Issuer: "testhub"},
			Session: config.SessionConfig{CookieName: "testhub_session", TTL: 3600},
			Admin: config.AdminSeedConfig{
				Enabled:   true,
				Username:  "admin",
				Email:     "admin@example.com",
				Password:  "admin-password",
				FirstName: "Ada",
				LastName:  "Admin",
			},
		},
	}

	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	authService := service.NewAuthService(&cfg.Auth, db, repository.NewUserRepository(db), repository.NewSessionRepository(db))
	require.NoError(t, authService.EnsureAdmin(&cfg.Auth.Admin))

	return &testServer{t: t, engine: Setup(cfg, db)}
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) login(login, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": login, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(s.t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(http.MethodGet, "/api/v1/requirements", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/requirements", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSetsCookie(t *testing.T) {
	s := newTestServer(t)
	w, _ := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"login": "admin", "password": "admin-password"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "testhub_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInvitationRegistrationFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login("admin", "admin-password")

	w, env := s.do(http.MethodPost, "/api/v1/admin/invitations", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var invitation struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &invitation))

	w, env = s.do(http.MethodGet, "/api/v1/invitations/"+invitation.Code+"/validate", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":true}`, string(env.Data))

	register := map[string]string{
		"invitation_code": invitation.Code,
		"email":           "tess@example.com",
		"password":        "tester-password",
		"first_name":      "Tess",
		"last_name":       "Ter",
	}
	w, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", register)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, _ = s.do(http.MethodPost, "/api/v1/auth/register", "", register)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	userToken := s.login("tess", "tester-password")

	w, _ = s.do(http.MethodGet, "/api/v1/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(http.MethodPost, "/api/v1/admin/invitations", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/auth/logout", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/api/v1/auth/me", userToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirementAndTestCaseRoutes(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "admin-password")

	w, env := s.do(http.MethodPost, "/api/v1/requirements", token, map[string]interface{}{
		"title": "", "priority": "Urgent",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Errors, "title is required")
	assert.Contains(t, env.Errors, "Invalid priority. Must be one of: High, Medium, Low")

	w, env = s.do(http.MethodPost, "/api/v1/requirements", token, map[string]interface{}{
		"title":       "Login",
		"description": "users can log in",
		"category":    "Auth",
		"priority":    "High",
		"status":      "Draft",
		"tags":        []string{"regression"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var requirement struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &requirement))

	w, _ = s.do(http.MethodPost, "/api/v1/test-cases", token, map[string]interface{}{
		"title":           "Login with password",
		"description":     "happy path",
		"type":            "Functional",
		"priority":        "High",
		"status":          "Draft",
		"steps":           []map[string]string{{"action": "submit", "expected_result": "dashboard"}},
		"requirement_ids": []int64{requirement.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = s.do(http.MethodGet, "/api/v1/test-cases?keyword=LOGIN&page=1&page_size=10", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)

	w, _ = s.do(http.MethodGet, "/api/v1/requirements/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(http.MethodDelete, "/api/v1/requirements/999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPost, "/api/v1/tags", token, map[string]string{"name": "regression"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(http.MethodGet, "/api/v1/reports/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		CoveragePercent float64 `json:"coverage_percent"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 100.0, summary.CoveragePercent)
}

func TestThemeSettings(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "admin-password")

	w, env := s.do(http.MethodGet, "/api/v1/settings/theme", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"light"}`, string(env.Data))

	w, _ = s.do(http.MethodPut, "/api/v1/settings/theme", token, map[string]string{"theme": "purple"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodPut, "/api/v1/settings/theme", token, map[string]string{"theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, string(env.Data))
}
