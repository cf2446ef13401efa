package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/models"
	"github.com/cjex-salaj/site-api/internal/service"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

// AuthHandler manages dashboard sign-in and sign-out.
type AuthHandler struct {
	service    *service.AuthService
	cookieName string
	secure     bool
}

// NewAuthHandler constructs the handler. secure controls the cookie's
// Secure attribute and should be true in production.
func NewAuthHandler(authService *service.AuthService, cookieName string, secure bool) *AuthHandler {
	if cookieName == "" {
		cookieName = "dashboard_session"
	}
	return &AuthHandler{service: authService, cookieName: cookieName, secure: secure}
}

// Login godoc
// @Summary Dashboard sign-in
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request"))
		return
	}

	token, result, err := h.service.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, token, int(h.service.SessionTTL().Seconds()), "/", "", h.secure, true)

	response.JSON(c, http.StatusOK, result)
}

// Logout godoc
// @Summary Dashboard sign-out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, "", -1, "/", "", h.secure, true)
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}
