package handler

import (
	"net/http"
	"strconv"
	"sync"

	"socialtrackr/internal/logger"
	"socialtrackr/internal/metrics"
	"socialtrackr/internal/model"
	"socialtrackr/internal/service"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	planner  *service.PlannerService
	state    *service.StateService
	col      *metrics.Collector
	inflight sync.Map // email -> struct{}, serializes generation per user
}

func NewCalendarHandler(planner *service.PlannerService, state *service.StateService, col *metrics.Collector) *CalendarHandler {
	return &CalendarHandler{planner: planner, state: state, col: col}
}

// POST /api/calendar/generate  body: {"year":2026,"month":8}
// A second generation for the same user while one is running is rejected
// rather than raced; on any failure the stored calendar is untouched and
// the client goes back to onboarding.
func (h *CalendarHandler) Generate(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	email := c.GetString("email")

	if _, busy := h.inflight.LoadOrStore(email, struct{}{}); busy {
		fail(c, model.NewGenerationBusyError())
		return
	}
	defer h.inflight.Delete(email)

	ctx := c.Request.Context()
	st, err := h.state.Get(ctx, email)
	if err != nil {
		fail(c, err)
		return
	}

	logger.Info("generate.start", "email", email, "year", req.Year, "month", req.Month, "frequency", st.Preferences.Frequency)
	posts, err := h.planner.GenerateMonthlyPlan(ctx, st.Preferences, req.Year, req.Month)
	if err != nil {
		logger.Error("generate.failed", "email", email, "err", err)
		h.col.RecordGeneration("failure")
		fail(c, err)
		return
	}

	st, err = h.state.ApplyPlan(ctx, email, posts)
	if err != nil {
		fail(c, err)
		return
	}
	h.col.RecordGeneration("success")
	logger.Info("generate.ok", "email", email, "posts", len(posts))

	c.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"stats": h.state.ComputeStats(st),
	})
}

// GET /api/calendar?year=2026&month=8
func (h *CalendarHandler) Month(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Query("year"))
	month, err2 := strconv.Atoi(c.Query("month"))
	if err1 != nil || err2 != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year and month are required"})
		return
	}
	view, err := h.state.Month(c.Request.Context(), c.GetString("email"), year, month)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/posts/:date
func (h *CalendarHandler) GetPost(c *gin.Context) {
	detail, err := h.state.GetPost(c.Request.Context(), c.GetString("email"), c.Param("date"))
	if err != nil {
		if apiErr, ok := model.AsAPIError(err); ok && apiErr.Code == model.ErrCodePostNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": apiErr.Message, "code": apiErr.Code})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// PUT /api/posts/:date  body: {"caption":"...","notes":"..."}
func (h *CalendarHandler) SaveEdit(c *gin.Context) {
	var edit model.Edit
	if err := c.ShouldBindJSON(&edit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.state.SaveEdit(c.Request.Context(), c.GetString("email"), c.Param("date"), edit); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/posts/:date/toggle
func (h *CalendarHandler) Toggle(c *gin.Context) {
	done, stats, err := h.state.ToggleDone(c.Request.Context(), c.GetString("email"), c.Param("date"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": done, "stats": stats})
}
