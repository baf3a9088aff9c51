package handler

import (
	"net/http"

	"socialtrackr/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	state *service.StateService
}

func NewAnalyticsHandler(state *service.StateService) *AnalyticsHandler {
	return &AnalyticsHandler{state: state}
}

// mockEngagement is the static weekly series shown on the analytics page;
// nothing beyond mock data is collected.
var mockEngagement = []int{40, 65, 45, 80, 55, 90, 70}

// GET /api/analytics
func (h *AnalyticsHandler) View(c *gin.Context) {
	st, err := h.state.Get(c.Request.Context(), c.GetString("email"))
	if err != nil {
		fail(c, err)
		return
	}
	stats := h.state.ComputeStats(st)
	c.JSON(http.StatusOK, gin.H{
		"platform":        st.Preferences.Platform,
		"niche":           st.Preferences.Niche,
		"consistency_pct": stats.CompletionPct,
		"total_published": stats.Done,
		"streak":          stats.Streak,
		"best_streak":     stats.BestStreak,
		"engagement":      mockEngagement,
		"metrics":         st.Metrics,
	})
}
