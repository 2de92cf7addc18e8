package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"ratereview/config"
	"ratereview/internal/domain/service"
	"ratereview/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, service.TokenService) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc, cfg), tokenSvc
}

func performAuthenticated(m *AuthMiddleware, authHeader string, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/stores", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.Authenticate(next)(c)

	return rec, err
}

func TestAuthenticate_SetsIdentityFromClaims(t *testing.T) {
	m, tokenSvc := newTestAuthMiddleware(t)

	accountID := uuid.New()
	accessToken, _, err := tokenSvc.GenerateTokens(accountID, "owner", "owner@example.com")
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotRole, gotEmail string
	next := func(c echo.Context) error {
		gotID, _ = c.Get("accountID").(uuid.UUID)
		gotRole, _ = c.Get("role").(string)
		gotEmail, _ = c.Get("email").(string)

		return c.NoContent(http.StatusOK)
	}

	rec, err := performAuthenticated(m, "Bearer "+accessToken, next)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, accountID, gotID)
	assert.Equal(t, "owner", gotRole)
	assert.Equal(t, "owner@example.com", gotEmail)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	rec, err := performAuthenticated(m, "", func(c echo.Context) error {
		t.Fatal("next handler should not run")

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	rec, err := performAuthenticated(m, "Basic abc123", func(c echo.Context) error {
		t.Fatal("next handler should not run")

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_RejectsRefreshSecretToken(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	// A token signed with a different secret must not pass the access gate.
	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "some-other-secret"
	otherCfg.SecretKey.Refresh = "refresh-secret"
	otherSvc, err := auth.NewJWTService(otherCfg)
	require.NoError(t, err)

	accessToken, _, err := otherSvc.GenerateTokens(uuid.New(), "user", "ann.lee@example.com")
	require.NoError(t, err)

	rec, err := performAuthenticated(m, "Bearer "+accessToken, func(c echo.Context) error {
		t.Fatal("next handler should not run")

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/stores", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "owner")

	called := false
	err := m.RequireRole("owner", "admin")(func(c echo.Context) error {
		called = true

		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/stores", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("role", "user")

	err := m.RequireRole("owner", "admin")(func(c echo.Context) error {
		t.Fatal("next handler should not run")

		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRole_MissingRole(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/stores", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.RequireRole("admin")(func(c echo.Context) error {
		t.Fatal("next handler should not run")

		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
