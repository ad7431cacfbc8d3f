package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruiter-pipeline-backend/config"
	"recruiter-pipeline-backend/internal/delivery/http/response"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(AuthMiddleware(nil, &config.Config{JWTSecret: testSecret}))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(string(domain.KeyOwnerID)))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := authRouter()

	t.Run("Should set owner from sub claim", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"sub": "owner-1", "exp": time.Now().Add(time.Hour).Unix()})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "owner-1", w.Body.String())
	})

	t.Run("Should match bearer scheme case-insensitively", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"sub": "owner-3"})
		for _, scheme := range []string{"bearer", "BEARER", "BeArEr"} {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			req.Header.Set("Authorization", scheme+" "+token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, scheme)
			assert.Equal(t, "owner-3", w.Body.String())
		}
	})

	t.Run("Should accept auth_token cookie", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"sub": "owner-2"})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "owner-2", w.Body.String())
	})

	cases := map[string]string{
		"missing":    "",
		"garbage":    "Bearer not-a-token",
		"wrong key":  "Bearer " + func() string { s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"}).SignedString([]byte("other")); return s }(),
		"no subject": "Bearer " + func() string { s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@b.c"}).SignedString([]byte(testSecret)); return s }(),
		"expired":    "Bearer " + func() string { s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x", "exp": time.Now().Add(-time.Hour).Unix()}).SignedString([]byte(testSecret)); return s }(),
	}
	for name, header := range cases {
		t.Run("Should reject "+name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decode(t, w)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID))) })

	const id = "9b2d5f0e-3c4a-4c8e-8e0b-6a3f1d2c4b5a"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())
	assert.Equal(t, id, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
	assert.Len(t, w.Body.String(), 36)
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.Use(ErrorHandler())
	r.GET("/validation", func(c *gin.Context) {
		_ = c.Error(apperror.Validation([]string{"Role: is required"}))
	})
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Application not found"))
	})
	r.GET("/timeout", func(c *gin.Context) {
		_ = c.Error(apperror.Timeout(errors.New("store aggregate: deadline")))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: relation applications does not exist"))
	})

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := serve("/validation")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []string{"Role: is required"}, decode(t, w).Errors)

	w = serve("/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Application not found", decode(t, w).Message)

	w = serve("/timeout")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, decode(t, w).Retryable)

	w = serve("/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestRateLimitMemoryFallback(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(RateLimitConfig{
		Limit:     2,
		Window:    time.Minute,
		KeyPrefix: "rl:test:",
		Client:    func() *goredis.Client { return nil },
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.True(t, decode(t, w).Retryable)
}

func TestRateLimitKeysByOwner(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyOwnerID), c.GetHeader("X-Owner"))
		c.Next()
	})
	r.Use(RateLimitMiddleware(RateLimitConfig{
		Limit:  1,
		Window: time.Minute,
		Client: func() *goredis.Client { return nil },
	}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	hit := func(owner string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Owner", owner)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, hit("a"))
	assert.Equal(t, http.StatusTooManyRequests, hit("a"))
	assert.Equal(t, http.StatusOK, hit("b"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("https://app.example.com", true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://app.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("http://localhost:3000")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
