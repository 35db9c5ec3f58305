package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

const secret = "test-secret"

func newRouter(t *testing.T) (*gin.Engine, **auth.Principal) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen *auth.Principal
	r := gin.New()
	r.Use(AuthMiddleware(&config.Config{JWTSecret: secret}))
	r.GET("/me", func(c *gin.Context) {
		seen = PrincipalFrom(c)
		fromCtx, _ := auth.FromContext(c.Request.Context())
		assert.Equal(t, seen, fromCtx)
		c.Status(http.StatusNoContent)
	})
	return r, &seen
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware_SetsPrincipal(t *testing.T) {
	r, seen := newRouter(t)
	want := auth.Principal{UserID: "user-1", SalonID: uuid.New(), Role: auth.RoleManager}

	token, err := SignToken(secret, want, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	rec := get(r, "Bearer "+token)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, *seen)
	assert.Equal(t, want, **seen)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	p := auth.Principal{UserID: "user-1", SalonID: uuid.New(), Role: auth.RoleOwner}

	expired, err := SignToken(secret, p, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)
	wrongKey, err := SignToken("other", p, jwt.RegisteredClaims{})
	require.NoError(t, err)
	noSalon, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	cases := map[string]struct {
		header string
		code   string
	}{
		"missing":   {"", "missing_authorization_header"},
		"scheme":    {"Basic abc", "invalid_authorization_header"},
		"garbage":   {"Bearer not-a-token", "invalid_token"},
		"expired":   {"Bearer " + expired, "invalid_token"},
		"wrong key": {"Bearer " + wrongKey, "invalid_token"},
		"no salon":  {"Bearer " + noSalon, "invalid_token_payload"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r, seen := newRouter(t)

			rec := get(r, tc.header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.code)
			assert.Nil(t, *seen)
		})
	}
}

func TestCORSMiddleware_AllowsConfiguredOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.POST("/appointments", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/appointments", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/appointments", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(logger.FromZap(zap.New(core))))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/bad", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	all := logs.All()
	require.Len(t, all, 3)
	assert.Equal(t, zapcore.InfoLevel, all[0].Level)
	assert.Equal(t, zapcore.WarnLevel, all[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, all[2].Level)
	assert.Equal(t, "/boom", all[2].ContextMap()["path"])
}
