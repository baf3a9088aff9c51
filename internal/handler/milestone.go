package handler

import (
	"net/http"

	"socialtrackr/internal/logger"
	"socialtrackr/internal/metrics"
	"socialtrackr/internal/model"
	"socialtrackr/internal/service"

	"github.com/gin-gonic/gin"
)

type MilestoneHandler struct {
	mail *service.MailService
	col  *metrics.Collector
}

func NewMilestoneHandler(mail *service.MailService, col *metrics.Collector) *MilestoneHandler {
	return &MilestoneHandler{mail: mail, col: col}
}

// POST /api/milestone  body: {"email":"...","name":"...","streak":7}
func (h *MilestoneHandler) Send(c *gin.Context) {
	var req model.MilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	skipped, err := h.mail.SendMilestone(c.Request.Context(), req.Email, req.Name, req.Streak)
	if err != nil {
		logger.Error("milestone.failed", "to", req.Email, "err", err)
		h.col.RecordEmail("failure")
		fail(c, err)
		return
	}
	if skipped {
		h.col.RecordEmail("skipped")
		c.JSON(http.StatusOK, gin.H{"ok": true, "skipped": true, "message": "email skipped (no API key)"})
		return
	}
	h.col.RecordEmail("success")
	logger.Info("milestone.sent", "to", req.Email, "streak", req.Streak)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
