package handler

import (
	"net/http"

	"socialtrackr/internal/logger"
	"socialtrackr/internal/metrics"
	"socialtrackr/internal/model"
	"socialtrackr/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	planner *service.PlannerService
	state   *service.StateService
	col     *metrics.Collector
}

func NewChatHandler(planner *service.PlannerService, state *service.StateService, col *metrics.Collector) *ChatHandler {
	return &ChatHandler{planner: planner, state: state, col: col}
}

// POST /api/chat  body: {"message":"..."}
// Stateless: the transcript stays on the client, each call carries the
// user's preference/metrics context server-side.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	email := c.GetString("email")
	ctx := c.Request.Context()
	st, err := h.state.Get(ctx, email)
	if err != nil {
		fail(c, err)
		return
	}

	reply, err := h.planner.Chat(ctx, req.Message, st.Preferences, h.state.ComputeStats(st))
	if err != nil {
		logger.Error("chat.failed", "email", email, "err", err)
		h.col.RecordChat("failure")
		fail(c, err)
		return
	}
	h.col.RecordChat("success")
	c.JSON(http.StatusOK, model.ChatResponse{Reply: reply})
}

// GET /api/chat/chips
func (h *ChatHandler) Chips(c *gin.Context) {
	st, err := h.state.Get(c.Request.Context(), c.GetString("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chips": service.ChatChips(st.Preferences.Niche)})
}
