package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/customer"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
)

type CustomerHandler struct {
	list  *customer.ListCustomers
	stats *customer.GetCustomerStats
	log   *logger.Logger
}

func NewCustomerHandler(list *customer.ListCustomers, stats *customer.GetCustomerStats, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{list: list, stats: stats, log: log.With("handler", "customers")}
}

func (h *CustomerHandler) List(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		httperr.Respond(c, httperr.Unauthorized("authentication_required"))
		return
	}

	out, err := h.list.Execute(c.Request.Context(), domain.ListFilter{
		SalonID:  p.SalonID,
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", 0),
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_list_customers")
		return
	}

	httpresp.OK(c, out)
}

func (h *CustomerHandler) Stats(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p == nil {
		httperr.Respond(c, httperr.Unauthorized("authentication_required"))
		return
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, h.log, err, "invalid_id")
		return
	}

	out, err := h.stats.Execute(c.Request.Context(), p.SalonID, id)
	if err != nil {
		fail(c, h.log, err, "failed_to_get_customer_stats")
		return
	}

	httpresp.OK(c, out)
}
