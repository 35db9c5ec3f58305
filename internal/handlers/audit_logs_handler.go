package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
	log  *logger.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log *logger.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log.With("handler", "audit_logs")}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if !p.CanManageSalon() {
		httperr.Respond(c, httperr.Unauthorized("audit_logs_not_allowed"))
		return
	}

	f := audit.ListFilter{
		SalonID: p.SalonID,
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		Page:    intQuery(c, "page", 1),
		Limit:   intQuery(c, "limit", 50),
	}

	// --------------------------------------------------
	// Optional date range, whole days in UTC
	// --------------------------------------------------

	if from, err := time.Parse(dateLayout, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(dateLayout, c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	rows, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.log, err, "audit_list_failed")
		return
	}

	httpresp.OK(c, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  rows,
	})
}
