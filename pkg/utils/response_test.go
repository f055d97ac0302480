package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testhub/pkg/errors"
)

func render(t *testing.T, write func(c *gin.Context)) (int, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"validation", errors.NewValidationError("tag", "name is required"), http.StatusBadRequest, errors.CodeValidationError},
		{"not found", errors.NotFound("Tag"), http.StatusNotFound, errors.CodeNotFound},
		{"conflict", errors.Conflict("tag name already exists"), http.StatusConflict, errors.CodeConflict},
		{"auth", errors.ErrInvalidCredentials, http.StatusUnauthorized, errors.CodeAuthError},
		{"forbidden", errors.ErrForbidden, http.StatusForbidden, errors.CodeForbidden},
		{"wrapped", fmt.Errorf("load: %w", errors.ErrSessionExpired), http.StatusUnauthorized, errors.CodeUnauthorized},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError, errors.CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := render(t, func(c *gin.Context) { Error(c, tt.err) })
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, resp.Code)
		})
	}

	_, resp := render(t, func(c *gin.Context) {
		Error(c, errors.NewValidationError("tag", "name is required", "Tag name cannot exceed 50 characters"))
	})
	assert.Equal(t, []string{"name is required", "Tag name cannot exceed 50 characters"}, resp.Errors)
}

func TestSuccess(t *testing.T) {
	status, resp := render(t, func(c *gin.Context) { Success(c, gin.H{"total": 3}) })
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, errors.CodeSuccess, resp.Code)
	assert.JSONEq(t, `{"total":3}`, string(mustJSON(t, resp.Data)))
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
