package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cjex-salaj/site-api/internal/models"
	"github.com/cjex-salaj/site-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	svc := service.NewAuthService(service.NewMemoryAttemptStore(), nil, nil, service.AuthServiceConfig{
		PasswordHash: "parola123",
		TokenSecret:  "test-secret",
		SessionTTL:   time.Hour,
	})
	token, _, err := svc.Login(context.Background(), models.LoginRequest{Password: "parola123"}, "test")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/protected", Session(svc, "dashboard_session"), func(c *gin.Context) {
		claims := SessionFromContext(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"sid": claims.SessionID})
	})
	return r, token
}

func TestSessionAllowsValidCookie(t *testing.T) {
	r, token := newSessionTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "dashboard_session", Value: token})
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sid")
}

func TestSessionRejectsMissingCookie(t *testing.T) {
	r, _ := newSessionTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionRejectsTamperedToken(t *testing.T) {
	r, token := newSessionTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "dashboard_session", Value: token + "x"})
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
