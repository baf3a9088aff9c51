package handler

import (
	"net/http"

	"socialtrackr/internal/logger"
	"socialtrackr/internal/middleware"
	"socialtrackr/internal/model"
	"socialtrackr/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth  *service.AuthService
	state *service.StateService
}

func NewAuthHandler(auth *service.AuthService, state *service.StateService) *AuthHandler {
	return &AuthHandler{auth: auth, state: state}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	a, err := h.auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		logger.Warn("register.failed", "email", req.Email, "err", err)
		fail(c, err)
		return
	}
	logger.Info("register.ok", "email", a.Email)
	h.respondAuth(c, a)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	a, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("login.failed", "email", req.Email)
		fail(c, err)
		return
	}
	logger.Info("login.ok", "email", a.Email, "name", a.Name)
	h.respondAuth(c, a)
}

// Logout exists for the client to report sign-out; the token is stateless
// so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	logger.Info("logout", "email", c.GetString("email"))
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me routes a returning session: onboarded accounts land on the
// dashboard, everyone else restarts onboarding at their saved step.
func (h *AuthHandler) Me(c *gin.Context) {
	email := c.GetString("email")
	a, err := h.auth.Get(c.Request.Context(), email)
	if err != nil || a == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	st, err := h.state.Get(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":      model.User{ID: a.ID, Name: a.Name, Email: a.Email},
		"onboarded": st.Onboarded(),
		"step":      st.Step,
	})
}

func (h *AuthHandler) respondAuth(c *gin.Context, a *model.Account) {
	token, err := middleware.IssueToken(a.Email, a.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}
	st, err := h.state.Get(c.Request.Context(), a.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.AuthResponse{
		Token:     token,
		User:      model.User{ID: a.ID, Name: a.Name, Email: a.Email},
		Onboarded: st.Onboarded(),
	})
}
