package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/events"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucCustomer "github.com/BruksfildServices01/salon-scheduler/internal/usecase/customer"
	ucSalon "github.com/BruksfildServices01/salon-scheduler/internal/usecase/salon"
	ucStats "github.com/BruksfildServices01/salon-scheduler/internal/usecase/stats"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logger.Logger
	Audit    *audit.Dispatcher
	Events   events.Publisher
	Notifier *notify.Dispatcher
	Clock    timezone.Clock

	// BcryptCost is lowered by tests; zero means the library default.
	BcryptCost int
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	if d.Log == nil {
		d.Log = logger.Nop()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware(d.Config.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	statsRepo := infraRepo.NewStatsGormRepository(d.DB)
	customerRepo := infraRepo.NewCustomerGormRepository(d.DB)
	salonRepo := infraRepo.NewSalonGormRepository(d.DB)

	// ======================================================
	// USE CASES: STATS
	// ======================================================
	aggregator := ucStats.NewAggregator(statsRepo, d.Audit, d.Log, d.Clock)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(ucAppointment.CreateAppointmentDeps{
		Repo:       appointmentRepo,
		Resolver:   ucCustomer.NewResolver(d.Log),
		Audit:      d.Audit,
		Events:     d.Events,
		Notifier:   d.Notifier,
		Log:        d.Log,
		Clock:      d.Clock,
		BcryptCost: d.BcryptCost,
	})

	listFreeSlotsUC := ucAppointment.NewListFreeSlots(appointmentRepo, d.Clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:       createAppointmentUC,
		UpdateStatus: ucAppointment.NewUpdateAppointmentStatus(appointmentRepo, aggregator, d.Audit, d.Events, d.Log, d.Clock),
		Delete:       ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit, d.Events, d.Log, d.Clock),
		ListByDate:   ucAppointment.NewListAppointmentsByDate(appointmentRepo),
		ListByMonth:  ucAppointment.NewListAppointmentsByMonth(appointmentRepo),
		Availability: ucAppointment.NewCheckAvailability(appointmentRepo),
		FreeSlots:    listFreeSlotsUC,
	}, d.Log)

	publicHandler := handlers.NewPublicHandler(
		createAppointmentUC,
		ucAppointment.NewListPublicBusy(appointmentRepo),
		listFreeSlotsUC,
		ucAppointment.NewLookupGuestBooking(appointmentRepo),
		d.Log,
	)

	statsHandler := handlers.NewStatsHandler(
		ucStats.NewGetLifetimeStats(aggregator),
		ucStats.NewRecomputeStats(aggregator, d.Audit),
		ucStats.NewGetDashboard(appointmentRepo, aggregator, d.Clock),
		d.Log,
	)

	customerHandler := handlers.NewCustomerHandler(
		ucCustomer.NewListCustomers(customerRepo),
		ucCustomer.NewGetCustomerStats(customerRepo),
		d.Log,
	)

	meHandler := handlers.NewMeHandler(
		ucSalon.NewGetProfile(salonRepo),
		ucSalon.NewReplaceOpeningHours(salonRepo, d.Audit),
		d.Log,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB), d.Log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.POST("/salons/:salonId/appointments", publicHandler.CreateAppointment)
			publicAPI.GET("/salons/:salonId/availability", publicHandler.Availability)
			publicAPI.GET("/salons/:salonId/free-slots", publicHandler.FreeSlots)
			publicAPI.GET("/bookings/:code", publicHandler.Lookup)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("", meHandler.GetMe)
			secured.PUT("/opening-hours", meHandler.UpdateOpeningHours)

			secured.GET("/availability", appointmentHandler.Availability)
			secured.GET("/free-slots", appointmentHandler.FreeSlots)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/stats", statsHandler.Get)
			secured.POST("/stats/recompute", statsHandler.Recompute)
			secured.GET("/dashboard", statsHandler.Dashboard)

			secured.GET("/customers", customerHandler.List)
			secured.GET("/customers/:id/stats", customerHandler.Stats)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
