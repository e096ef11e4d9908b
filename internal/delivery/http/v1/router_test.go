package v1

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard-backend/config"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

const routerSecret = "router-secret"

func newRealRouter(t *testing.T, uc domain.ApplicationUsecase) *gin.Engine {
	t.Helper()
	authUC := new(MockAuthUC)
	authUC.On("GetCurrentUser", mock.Anything, "alice").
		Return(&domain.User{ID: testUserID, Username: "alice", Email: "alice@example.com"}, nil)

	return NewRouter(RouterDeps{
		AuthUC:        authUC,
		ApplicationUC: uc,
		HealthUC:      stubHealth{status: map[string]string{"status": "ok"}, healthy: true},
		JWKSProvider:  auth.NewProvider("", nil),
		Config: &config.Config{
			FrontendURL:              "https://jobs.example.com",
			JWTSecret:                routerSecret,
			RateLimitWindowSeconds:   60,
			RateLimitGlobalThreshold: 1000,
		},
	})
}

func bearer(t *testing.T) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(routerSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestRouterPublicResumeRoutes(t *testing.T) {
	uc := new(MockApplicationUC)
	uc.On("DownloadResume", mock.Anything, int64(1)).Return(&domain.ResumeFile{
		Filename:    "cv.pdf",
		ContentType: domain.ResumeContentType,
		Size:        2,
		Content:     io.NopCloser(strings.NewReader("ok")),
	}, nil)
	uc.On("ViewResumeDetails", mock.Anything, int64(1)).Return(&domain.ResumeDetail{ID: 1, Skills: []string{}, Keywords: []string{}}, nil)
	r := newRealRouter(t, uc)

	w := do(r, http.MethodGet, "/v1/applications/download-resume/1", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = do(r, http.MethodGet, "/v1/applications/view-resume/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterProtectedRoutesNeedToken(t *testing.T) {
	uc := new(MockApplicationUC)
	r := newRealRouter(t, uc)

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/v1/applications/apply", `{"job_id":1,"resume_id":1}`},
		{http.MethodGet, "/v1/applications/my-applications", ""},
		{http.MethodGet, "/v1/applications/check/1", ""},
		{http.MethodGet, "/v1/auth/me", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := do(r, tc.method, tc.path, tc.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "Not authenticated", envelope(t, w).Message)
		})
	}
	uc.AssertNotCalled(t, "ApplyToJob", mock.Anything, mock.Anything)
}

func TestRouterRejectsCookieOnlyFormPost(t *testing.T) {
	uc := new(MockApplicationUC)
	r := newRealRouter(t, uc)

	token := strings.TrimPrefix(bearer(t), "Bearer ")
	req := httptest.NewRequest(http.MethodPost, "/v1/applications/apply",
		strings.NewReader(`{"job_id":1,"resume_id":1}`))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Origin", "https://evil.example")
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	uc.AssertNotCalled(t, "ApplyToJob", mock.Anything, mock.Anything)
}

func TestRouterAppliesWithBearerToken(t *testing.T) {
	uc := new(MockApplicationUC)
	uc.On("ApplyToJob", mock.Anything, domain.ApplyInput{UserID: testUserID, JobID: 1, ResumeID: 2}).
		Return(&domain.ApplicationSummary{ID: 9, JobID: 1, Status: domain.ApplicationStatusPending}, nil)
	r := newRealRouter(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/v1/applications/apply", strings.NewReader(`{"job_id":1,"resume_id":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
	uc.AssertExpectations(t)
}
