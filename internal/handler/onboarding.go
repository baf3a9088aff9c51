package handler

import (
	"net/http"

	"socialtrackr/internal/model"
	"socialtrackr/internal/service"

	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	svc *service.OnboardingService
}

func NewOnboardingHandler(svc *service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{svc: svc}
}

// GET /api/onboarding
func (h *OnboardingHandler) View(c *gin.Context) {
	view, err := h.svc.View(c.Request.Context(), c.GetString("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/onboarding/select  body: {"field":"platform","value":"instagram"}
func (h *OnboardingHandler) Select(c *gin.Context) {
	var req model.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := h.svc.Select(c.Request.Context(), c.GetString("email"), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"preferences": st.Preferences,
		"step":        st.Step,
		"onboarded":   st.Onboarded(),
	})
}

// POST /api/onboarding/next
func (h *OnboardingHandler) Next(c *gin.Context) {
	step, err := h.svc.Next(c.Request.Context(), c.GetString("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}

// POST /api/onboarding/back
func (h *OnboardingHandler) Back(c *gin.Context) {
	step, err := h.svc.Back(c.Request.Context(), c.GetString("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": step})
}
