package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"dinesmart/domain"
	"dinesmart/internal/middleware"
	"dinesmart/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	utils.InitJWT("test-secret", time.Hour)
	os.Exit(m.Run())
}

type stubValidator struct {
	sessions map[string]string
}

func (s *stubValidator) ValidateTokenFromRedis(_ context.Context, token string) (string, error) {
	userID, ok := s.sessions[token]
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return userID, nil
}

func doRequest(t *testing.T, validator *stubValidator, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured echo.Context
	handler := middleware.Auth(validator)(func(c echo.Context) error {
		captured = c
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, captured
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	token, err := utils.GenerateJWT("42", domain.RoleCustomer, "ana@example.com")
	require.NoError(t, err)

	validator := &stubValidator{sessions: map[string]string{token: "42"}}
	rec, c := doRequest(t, validator, "Bearer "+token)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(42), c.Get("user_id"))
	assert.Equal(t, domain.RoleCustomer, c.Get("role"))
	assert.Equal(t, "ana@example.com", c.Get("email"))
	assert.Equal(t, token, c.Get("token"))
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := doRequest(t, &stubValidator{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	rec, _ := doRequest(t, &stubValidator{}, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_GarbageToken(t *testing.T) {
	rec, _ := doRequest(t, &stubValidator{}, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_RevokedSession(t *testing.T) {
	token, err := utils.GenerateJWT("42", domain.RoleCustomer, "ana@example.com")
	require.NoError(t, err)

	rec, _ := doRequest(t, &stubValidator{sessions: map[string]string{}}, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_SessionUserMismatch(t *testing.T) {
	token, err := utils.GenerateJWT("42", domain.RoleCustomer, "ana@example.com")
	require.NoError(t, err)

	validator := &stubValidator{sessions: map[string]string{token: "7"}}
	rec, _ := doRequest(t, validator, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()

	run := func(role interface{}, allowed ...string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}

		handler := middleware.RequireRole(allowed...)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, run(domain.RoleAdmin, "ADMIN"))
	assert.Equal(t, http.StatusOK, run("seller", "SELLER"), "role comparison is case insensitive")
	assert.Equal(t, http.StatusForbidden, run(domain.RoleCustomer, "ADMIN"))
	assert.Equal(t, http.StatusForbidden, run(nil, "ADMIN"))
}
