package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/salon"
)

type MeHandler struct {
	profile      *salon.GetProfile
	openingHours *salon.ReplaceOpeningHours
	log          *logger.Logger
}

func NewMeHandler(profile *salon.GetProfile, openingHours *salon.ReplaceOpeningHours, log *logger.Logger) *MeHandler {
	return &MeHandler{profile: profile, openingHours: openingHours, log: log.With("handler", "me")}
}

type OpeningHoursUpdateRequest struct {
	Days []domain.Day `json:"days" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	out, err := h.profile.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		fail(c, h.log, err, "failed_to_get_profile")
		return
	}

	httpresp.OK(c, out)
}

func (h *MeHandler) UpdateOpeningHours(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	var req OpeningHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	rows, err := h.openingHours.Execute(c.Request.Context(), p, salonOf(p), req.Days)
	if err != nil {
		fail(c, h.log, err, "failed_to_save_opening_hours")
		return
	}

	httpresp.OK(c, gin.H{"opening_hours": rows})
}
