package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the unauthenticated booking page.
type PublicHandler struct {
	create    *appointment.CreateAppointment
	busy      *appointment.ListPublicBusy
	freeSlots *appointment.ListFreeSlots
	lookup    *appointment.LookupGuestBooking
	log       *logger.Logger
}

func NewPublicHandler(
	create *appointment.CreateAppointment,
	busy *appointment.ListPublicBusy,
	freeSlots *appointment.ListFreeSlots,
	lookup *appointment.LookupGuestBooking,
	log *logger.Logger,
) *PublicHandler {
	return &PublicHandler{
		create:    create,
		busy:      busy,
		freeSlots: freeSlots,
		lookup:    lookup,
		log:       log.With("handler", "public"),
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	CreateAppointmentRequest
	Surname string `json:"surname"`
}

type PublicCreateAppointmentResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	BookingCode   string    `json:"booking_code"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
}

////////////////////////////////////////////////////////
// CREATE
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salonID, err := uuidParam(c, "salonId")
	if err != nil {
		fail(c, h.log, err, "invalid_salon_id")
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c)
		return
	}

	out, err := h.create.ExecuteGuest(c.Request.Context(), appointment.GuestAppointmentInput{
		CreateAppointmentInput: req.input(salonID),
		Surname:                req.Surname,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_create_appointment")
		return
	}

	c.JSON(http.StatusCreated, PublicCreateAppointmentResponse{
		AppointmentID: out.Appointment.ID,
		BookingCode:   out.BookingCode,
		StartsAt:      out.Appointment.StartsAt,
		EndsAt:        out.Appointment.EndsAt,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability returns busy intervals only; customer data never leaves.
func (h *PublicHandler) Availability(c *gin.Context) {
	salonID, err := uuidParam(c, "salonId")
	if err != nil {
		fail(c, h.log, err, "invalid_salon_id")
		return
	}
	from, err := timeQuery(c, "from")
	if err != nil {
		fail(c, h.log, err, "invalid_from")
		return
	}
	to, err := timeQuery(c, "to")
	if err != nil {
		fail(c, h.log, err, "invalid_to")
		return
	}

	items, err := h.busy.Execute(c.Request.Context(), salonID, from, to)
	if err != nil {
		fail(c, h.log, err, "failed_to_list_availability")
		return
	}

	httpresp.List(c, items)
}

func (h *PublicHandler) FreeSlots(c *gin.Context) {
	salonID, err := uuidParam(c, "salonId")
	if err != nil {
		fail(c, h.log, err, "invalid_salon_id")
		return
	}
	listFreeSlots(c, h.freeSlots, h.log, salonID)
}

////////////////////////////////////////////////////////
// LOOKUP
////////////////////////////////////////////////////////

func (h *PublicHandler) Lookup(c *gin.Context) {
	out, err := h.lookup.Execute(c.Request.Context(), c.Param("code"), c.Query("surname"))
	if err != nil {
		fail(c, h.log, err, "failed_to_lookup_booking")
		return
	}

	httpresp.OK(c, out)
}
