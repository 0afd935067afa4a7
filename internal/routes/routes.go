package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	"github.com/BruksfildServices01/workshop-scheduler/internal/config"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/handlers"
	"github.com/BruksfildServices01/workshop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/workshop-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

// Store is what the HTTP surface needs from the storage collaborator.
type Store interface {
	domain.Repository
	audit.Store
}

// RegisterRoutes wires use cases over deps and mounts them. deps.Repo is
// replaced by store. m may be nil when metrics are disabled.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	store Store,
	deps ucAppointment.Deps,
	m *metrics.Metrics,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	if m != nil {
		r.Use(m.GinMiddleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	deps.Repo = store

	// ======================================================
	// USE CASES
	// ======================================================
	listServicesUC := ucAppointment.NewListServices(deps)
	getAvailabilityUC := ucAppointment.NewGetAvailability(deps)

	createWebReservationUC := ucAppointment.NewCreateWebReservation(deps)
	deleteReservationUC := ucAppointment.NewDeleteReservation(deps)
	submitReviewUC := ucAppointment.NewSubmitReview(deps)

	createWalkInUC := ucAppointment.NewCreateWalkIn(deps)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(deps)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(deps)
	deleteWalkInUC := ucAppointment.NewDeleteWalkIn(deps)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(deps)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(deps)
	workshopSummaryUC := ucAppointment.NewGetWorkshopSummary(deps)
	listMechanicsUC := ucAppointment.NewListMechanics(deps)
	createMechanicUC := ucAppointment.NewCreateMechanic(deps)
	renameMechanicUC := ucAppointment.NewRenameMechanic(deps)
	setMechanicActiveUC := ucAppointment.NewSetMechanicActive(deps)

	// ======================================================
	// HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(listServicesUC, getAvailabilityUC)

	reservationHandler := handlers.NewReservationHandler(
		createWebReservationUC,
		deleteReservationUC,
		submitReviewUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createWalkInUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		deleteWalkInUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	workshopHandler := handlers.NewWorkshopHandler(workshopSummaryUC)
	mechanicHandler := handlers.NewMechanicHandler(
		listMechanicsUC,
		createMechanicUC,
		renameMechanicUC,
		setMechanicActiveUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(store)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/workshops/:id")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/availability", publicHandler.Availability)
		}

		// ------------------------------
		// CLIENT (web reservations)
		// ------------------------------
		client := api.Group("/client")
		client.Use(middleware.AuthMiddleware(cfg))
		{
			client.POST("/workshops/:id/appointments", reservationHandler.Create)
			client.DELETE("/appointments/:id", reservationHandler.Delete)
			client.POST("/appointments/:id/review", reservationHandler.Review)
		}

		// ------------------------------
		// WORKSHOP ADMIN
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(cfg), middleware.RequireWorkshop(store))
		{
			secured.GET("/workshop", workshopHandler.GetMeWorkshop)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/mechanics", mechanicHandler.List)
			secured.POST("/mechanics", mechanicHandler.Create)
			secured.PATCH("/mechanics/:id", mechanicHandler.Update)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
