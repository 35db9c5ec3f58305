package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	updateStatus *appointment.UpdateAppointmentStatus
	remove       *appointment.DeleteAppointment
	listByDate   *appointment.ListAppointmentsByDate
	listByMonth  *appointment.ListAppointmentsByMonth
	availability *appointment.CheckAvailability
	freeSlots    *appointment.ListFreeSlots
	log          *logger.Logger
}

type AppointmentUseCases struct {
	Create       *appointment.CreateAppointment
	UpdateStatus *appointment.UpdateAppointmentStatus
	Delete       *appointment.DeleteAppointment
	ListByDate   *appointment.ListAppointmentsByDate
	ListByMonth  *appointment.ListAppointmentsByMonth
	Availability *appointment.CheckAvailability
	FreeSlots    *appointment.ListFreeSlots
}

func NewAppointmentHandler(uc AppointmentUseCases, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		create:       uc.Create,
		updateStatus: uc.UpdateStatus,
		remove:       uc.Delete,
		listByDate:   uc.ListByDate,
		listByMonth:  uc.ListByMonth,
		availability: uc.Availability,
		freeSlots:    uc.FreeSlots,
		log:          log.With("handler", "appointments"),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StaffID       uuid.UUID `json:"staff_id" binding:"required"`
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	CustomerEmail string    `json:"customer_email"`
	StartsAt      time.Time `json:"starts_at" binding:"required"`
}

func (r CreateAppointmentRequest) input(salonID uuid.UUID) appointment.CreateAppointmentInput {
	return appointment.CreateAppointmentInput{
		SalonID:   salonID,
		StaffID:   r.StaffID,
		ServiceID: r.ServiceID,
		Contact: domain.Contact{
			Name:  r.CustomerName,
			Phone: r.CustomerPhone,
			Email: r.CustomerEmail,
		},
		StartsAt: r.StartsAt,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func salonOf(p *auth.Principal) uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return p.SalonID
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), p, req.input(salonOf(p)))
	if err != nil {
		fail(c, h.log, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// STATUS / DELETE
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, h.log, err, "invalid_id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), p, appointment.UpdateStatusInput{
		SalonID:       salonOf(p),
		AppointmentID: id,
		Status:        req.Status,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_update_status")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	id, err := uuidParam(c, "id")
	if err != nil {
		fail(c, h.log, err, "invalid_id")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), p, salonOf(p), id); err != nil {
		fail(c, h.log, err, "failed_to_delete_appointment")
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	staffID, err := optionalUUIDQuery(c, "staff_id")
	if err != nil {
		fail(c, h.log, err, "invalid_staff_id")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), p, salonOf(p), staffID, c.Query("date"))
	if err != nil {
		fail(c, h.log, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	staffID, err := optionalUUIDQuery(c, "staff_id")
	if err != nil {
		fail(c, h.log, err, "invalid_staff_id")
		return
	}

	year := intQuery(c, "year", 0)
	month := intQuery(c, "month", 0)

	items, err := h.listByMonth.Execute(c.Request.Context(), p, salonOf(p), staffID, year, month)
	if err != nil {
		fail(c, h.log, err, "failed_to_list_appointments")
		return
	}

	httpresp.OK(c, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	p := middleware.PrincipalFrom(c)

	staffID, err := requiredUUIDQuery(c, "staff_id")
	if err != nil {
		fail(c, h.log, err, "invalid_staff_id")
		return
	}
	start, err := timeQuery(c, "start")
	if err != nil {
		fail(c, h.log, err, "invalid_start")
		return
	}
	end, err := timeQuery(c, "end")
	if err != nil {
		fail(c, h.log, err, "invalid_end")
		return
	}

	res, err := h.availability.Execute(c.Request.Context(), appointment.AvailabilityWindow{
		SalonID: salonOf(p),
		StaffID: staffID,
		Start:   start,
		End:     end,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_check_availability")
		return
	}

	httpresp.OK(c, res)
}

func (h *AppointmentHandler) FreeSlots(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	listFreeSlots(c, h.freeSlots, h.log, salonOf(p))
}

// listFreeSlots serves both the staff and the public slot listing.
func listFreeSlots(c *gin.Context, uc *appointment.ListFreeSlots, log *logger.Logger, salonID uuid.UUID) {
	staffID, err := requiredUUIDQuery(c, "staff_id")
	if err != nil {
		fail(c, log, err, "invalid_staff_id")
		return
	}
	serviceID, err := requiredUUIDQuery(c, "service_id")
	if err != nil {
		fail(c, log, err, "invalid_service_id")
		return
	}
	date, err := dateQuery(c, "date")
	if err != nil {
		fail(c, log, err, "invalid_date")
		return
	}

	slots, err := uc.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:   salonID,
		StaffID:   staffID,
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		fail(c, log, err, "failed_to_list_slots")
		return
	}

	httpresp.List(c, slots)
}
