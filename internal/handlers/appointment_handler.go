package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workshop-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler is the workshop admin agenda. Routes run behind
// AuthMiddleware and RequireWorkshop.
type AppointmentHandler struct {
	createWalkIn walkInCreator
	complete     appointmentCompleter
	cancel       appointmentCanceller
	deleteWalkIn walkInDeleter
	listByDate   dayLister
	listByMonth  monthLister
}

func NewAppointmentHandler(
	createWalkIn walkInCreator,
	complete appointmentCompleter,
	cancel appointmentCanceller,
	deleteWalkIn walkInDeleter,
	listByDate dayLister,
	listByMonth monthLister,
) *AppointmentHandler {
	return &AppointmentHandler{
		createWalkIn: createWalkIn,
		complete:     complete,
		cancel:       cancel,
		deleteWalkIn: deleteWalkIn,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateWalkInRequest struct {
	// Service id or free text.
	Service      string `json:"service"`
	ClientName   string `json:"client_name" binding:"required"`
	VehicleModel string `json:"vehicle_model"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// actor returns the acting workshop and the owner performing the action.
func actor(c *gin.Context) (uuid.UUID, *uuid.UUID) {
	workshopID, _ := middleware.WorkshopID(c)
	if userID, ok := middleware.UserID(c); ok {
		return workshopID, &userID
	}
	return workshopID, nil
}

// ======================================================
// CREATE (walk-in)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	workshopID, actorID := actor(c)

	var req CreateWalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	in := ucAppointment.CreateWalkInInput{
		WorkshopID:   workshopID,
		Service:      req.Service,
		ClientName:   req.ClientName,
		VehicleModel: req.VehicleModel,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	}
	if actorID != nil {
		in.ActorID = *actorID
	}

	ap, err := h.createWalkIn.Execute(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	workshopID, _ := actor(c)

	items, err := h.listByDate.Execute(c.Request.Context(), workshopID, c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	workshopID, _ := actor(c)

	year, month, ok := monthQuery(c)
	if !ok {
		httperr.BadRequest(c, "invalid_date_format", "Parámetros year y month inválidos.")
		return
	}

	days, err := h.listByMonth.Execute(c.Request.Context(), workshopID, year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, days)
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	workshopID, actorID := actor(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), workshopID, actorID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	workshopID, actorID := actor(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	// body is optional
	var req CancelAppointmentRequest
	_ = c.ShouldBindJSON(&req)

	ap, err := h.cancel.Execute(c.Request.Context(), workshopID, actorID, id, req.Reason)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	workshopID, actorID := actor(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteWalkIn.Execute(c.Request.Context(), workshopID, actorID, id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}
