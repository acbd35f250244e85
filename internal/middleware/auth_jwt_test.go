package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pharmacy/internal/config"
	"pharmacy/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-jwt-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(method, claims)
	signed, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func doRequest(authz string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	cfg := config.Config{JWTSecret: testSecret}

	var gotUsername string
	h := middleware.AuthJWT(cfg)(func(c echo.Context) error {
		gotUsername, _ = c.Get(middleware.CtxUsernameKey).(string)
		return c.String(http.StatusOK, gotUsername)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()

	err := h(e.NewContext(req, rec))
	return rec, err
}

func TestAuthJWT_ValidToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})

	rec, err := doRequest("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	rec, err := doRequest("")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	rec, err := doRequest("Token abcdef")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	now := time.Now()
	token := signToken(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})

	rec, err := doRequest("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	now := time.Now()
	token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"iat": now.Add(-2 * time.Hour).Unix(),
		"exp": now.Add(-time.Hour).Unix(),
	})

	rec, err := doRequest("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_MissingSubClaim(t *testing.T) {
	now := time.Now()
	token := signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})

	rec, err := doRequest("Bearer " + token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
