package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenithly-hr/payroll-backend-go/internal/pkg/jwt"
)

func newProtectedHandler(jwtService jwt.Service) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return jwtauth.Verifier(jwtService.JWTAuth())(AuthRequired(jwtService)(next))
}

func doRequest(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestAuthRequired_ValidToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	handler := newProtectedHandler(jwtService)

	token, _, err := jwtService.GenerateAccessToken("user-1", "org-1", "payroll_admin")
	require.NoError(t, err)

	w := doRequest(handler, token)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRequired_NoToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	handler := newProtectedHandler(jwtService)

	w := doRequest(handler, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_WrongTokenType(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	handler := newProtectedHandler(jwtService)

	_, token, err := jwtService.JWTAuth().Encode(map[string]interface{}{
		"user_id": "user-1",
		"type":    "refresh",
	})
	require.NoError(t, err)

	w := doRequest(handler, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", "15m")
	handler := newProtectedHandler(jwtService)

	token, _, err := jwtService.GenerateAccessToken("user-1", "org-1", "payroll_admin")
	require.NoError(t, err)

	w := doRequest(handler, token)
	require.Equal(t, http.StatusOK, w.Code)

	jwtService.RevokeToken(token)

	w = doRequest(handler, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
