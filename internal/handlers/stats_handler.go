package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/stats"
)

type StatsHandler struct {
	get       *stats.GetLifetimeStats
	recompute *stats.RecomputeStats
	dashboard *stats.GetDashboard
	log       *logger.Logger
}

func NewStatsHandler(
	get *stats.GetLifetimeStats,
	recompute *stats.RecomputeStats,
	dashboard *stats.GetDashboard,
	log *logger.Logger,
) *StatsHandler {
	return &StatsHandler{get: get, recompute: recompute, dashboard: dashboard, log: log.With("handler", "stats")}
}

func (h *StatsHandler) Get(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	out, err := h.get.Execute(c.Request.Context(), p, salonOf(p))
	if err != nil {
		fail(c, h.log, err, "failed_to_get_stats")
		return
	}

	httpresp.OK(c, out)
}

func (h *StatsHandler) Recompute(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	out, err := h.recompute.Execute(c.Request.Context(), p, salonOf(p))
	if err != nil {
		fail(c, h.log, err, "failed_to_recompute_stats")
		return
	}

	httpresp.OK(c, out)
}

func (h *StatsHandler) Dashboard(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	out, err := h.dashboard.Execute(c.Request.Context(), p, salonOf(p))
	if err != nil {
		fail(c, h.log, err, "failed_to_get_dashboard")
		return
	}

	httpresp.OK(c, out)
}
