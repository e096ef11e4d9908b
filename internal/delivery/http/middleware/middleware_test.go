package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard-backend/config"
	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) GetCurrentUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	authUC := new(MockAuthUC)
	authUC.On("GetCurrentUser", mock.Anything, "alice").
		Return(&domain.User{ID: 7, Username: "alice", Email: "alice@example.com"}, nil)
	authUC.On("GetCurrentUser", mock.Anything, "ghost").
		Return(nil, apperror.Unauthorized("User not found"))

	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/me", AuthMiddleware(auth.NewProvider("", nil), cfg, authUC), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":       c.GetInt64(string(domain.KeyUserID)),
			"username": c.GetString(string(domain.KeyUsername)),
		})
	})

	serve := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("missing token", func(t *testing.T) {
		w := serve("")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		assert.Equal(t, "Not authenticated", decode(t, w).Message)
	})

	t.Run("access_token cookie is ignored", func(t *testing.T) {
		token := signHS256(t, "test-secret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authenticated", decode(t, w).Message)
	})

	t.Run("non-bearer scheme", func(t *testing.T) {
		w := serve("Basic YWxpY2U6cHc=")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Not authenticated", decode(t, w).Message)
	})

	t.Run("valid token", func(t *testing.T) {
		token := signHS256(t, "test-secret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})
		w := serve("Bearer " + token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":7,"username":"alice"}`, w.Body.String())
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signHS256(t, "other-secret", jwt.MapClaims{"sub": "alice"})
		w := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Could not validate credentials", decode(t, w).Message)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signHS256(t, "test-secret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(-time.Minute).Unix()})
		w := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		token := signHS256(t, "test-secret", jwt.MapClaims{"sub": "ghost"})
		w := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "User not found", decode(t, w).Message)
	})

	t.Run("RS256 without key set is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "alice"})
		unsigned, err := token.SigningString()
		require.NoError(t, err)
		w := serve("Bearer " + unsigned + ".c2ln")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/app", func(c *gin.Context) { c.Error(apperror.NotFound("Job not found")) })
	r.GET("/raw", func(c *gin.Context) { c.Error(errors.New("pq: password leaked in message")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Job not found", body.Message)
	assert.NotEmpty(t, body.RequestID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(string(domain.KeyRequestID))) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	const incoming = "7b0f6b4e-3c1a-4f43-9d0e-2d8b1b7f5a10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://jobs.example.com"}, true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://jobs.example.com")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://jobs.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("http://localhost:3000")
	assert.Equal(t, http.StatusForbidden, w.Code, "dev origins are not allowed in release mode")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitInMemory(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	cfg.Limit = 2

	r := gin.New()
	r.Use(RateLimitMiddleware(cfg, nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
		if i == 2 {
			assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := DefaultRateLimitConfig()
	cfg.Limit = 1
	cfg.KeyFunc = func(*gin.Context) string { return "tester" }

	r := gin.New()
	r.Use(RateLimitMiddleware(cfg, client))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := mr.Get("rl:ip:tester")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
	assert.True(t, mr.TTL("rl:ip:tester") > 0)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// Window expiry resets the counter
	mr.FastForward(2 * time.Minute)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitFailClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	cfg := DefaultRateLimitConfig()
	cfg.FailClosed = true

	r := gin.New()
	r.Use(RateLimitMiddleware(cfg, client))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMemoryLimiterSweepsExpiredEntries(t *testing.T) {
	cfg := RateLimitConfig{Limit: 5, Window: time.Minute}
	store := &memoryLimiter{}
	start := time.Now()

	count, _ := store.hit("a", cfg, start)
	assert.Equal(t, 1, count)
	count, _ = store.hit("a", cfg, start.Add(time.Second))
	assert.Equal(t, 2, count)

	// "a" has expired by the next sweep; "b" is fresh
	later := start.Add(memoryLimiterSweepEvery + time.Minute)
	count, _ = store.hit("b", cfg, later)
	assert.Equal(t, 1, count)

	_, stillThere := store.entries.Load("a")
	assert.False(t, stillThere)
	_, kept := store.entries.Load("b")
	assert.True(t, kept)

	// A new window restarts the count
	count, _ = store.hit("a", cfg, later)
	assert.Equal(t, 1, count)
}
