package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"growthmarket/internal/config"
	"growthmarket/internal/middleware"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

// =====================
// レスポンス確認用
// =====================

type mwErrorResponse struct {
	Error string `json:"error"`
}

type mwOKResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub any, role string, exp time.Time, signingMethod jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  exp.Unix(),
	}

	s, err := jwt.NewWithClaims(signingMethod, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func newProtectedEcho(mws ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, mwOKResponse{
			UserID: c.Get(middleware.CtxUserIDKey).(string),
			Role:   c.Get(middleware.CtxUserRoleKey).(string),
		})
	}, mws...)
	return e
}

func runRequest(t *testing.T, e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeMWError(t *testing.T, rec *httptest.ResponseRecorder) mwErrorResponse {
	t.Helper()
	var r mwErrorResponse
	_ = json.NewDecoder(rec.Body).Decode(&r)
	return r
}

// =====================
// AuthJWT
// =====================

func TestMiddleware_AuthJWT_Unauthorized(t *testing.T) {
	future := time.Now().Add(time.Hour)

	cases := map[string]string{
		"no header":     "",
		"bad scheme":    "Token abc.def.ghi",
		"empty token":   "Bearer   ",
		"garbage":       "Bearer not-a-jwt",
		"wrong secret":  "Bearer " + mustMakeJWT(t, "other", "u1", "USER", future, jwt.SigningMethodHS256),
		"expired":       "Bearer " + mustMakeJWT(t, testSecret, "u1", "USER", time.Now().Add(-time.Minute), jwt.SigningMethodHS256),
		"other alg":     "Bearer " + mustMakeJWT(t, testSecret, "u1", "USER", future, jwt.SigningMethodHS512),
		"numeric sub":   "Bearer " + mustMakeJWT(t, testSecret, 42, "USER", future, jwt.SigningMethodHS256),
		"missing role":  "Bearer " + mustMakeJWT(t, testSecret, "u1", "", future, jwt.SigningMethodHS256),
		"blank subject": "Bearer " + mustMakeJWT(t, testSecret, " ", "USER", future, jwt.SigningMethodHS256),
	}

	e := newProtectedEcho(middleware.AuthJWT(config.JWT{Secret: testSecret}))
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := runRequest(t, e, header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "unauthorized", decodeMWError(t, rec).Error)
		})
	}
}

func TestMiddleware_AuthJWT_OK_SetsContext(t *testing.T) {
	e := newProtectedEcho(middleware.AuthJWT(config.JWT{Secret: testSecret}))

	token := mustMakeJWT(t, testSecret, "user-123", "USER", time.Now().Add(time.Hour), jwt.SigningMethodHS256)
	rec := runRequest(t, e, "bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body mwOKResponse
	_ = json.NewDecoder(rec.Body).Decode(&body)
	assert.Equal(t, "user-123", body.UserID)
	assert.Equal(t, "USER", body.Role)
}

// =====================
// AdminRoleGuard
// =====================

func TestMiddleware_AdminRoleGuard(t *testing.T) {
	e := newProtectedEcho(middleware.AuthJWT(config.JWT{Secret: testSecret}), middleware.AdminRoleGuard())
	future := time.Now().Add(time.Hour)

	rec := runRequest(t, e, "Bearer "+mustMakeJWT(t, testSecret, "u1", "USER", future, jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "admin only", decodeMWError(t, rec).Error)

	rec = runRequest(t, e, "Bearer "+mustMakeJWT(t, testSecret, "a1", "ADMIN", future, jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddleware_AdminRoleGuard_WithoutAuth(t *testing.T) {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, middleware.AdminRoleGuard())

	rec := runRequest(t, e, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
