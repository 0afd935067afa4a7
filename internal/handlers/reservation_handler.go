package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workshop-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// ReservationHandler serves authenticated clients booking on the web.
type ReservationHandler struct {
	create   webReservationCreator
	withdraw reservationDeleter
	review   reviewSubmitter
}

func NewReservationHandler(
	create webReservationCreator,
	withdraw reservationDeleter,
	review reviewSubmitter,
) *ReservationHandler {
	return &ReservationHandler{
		create:   create,
		withdraw: withdraw,
		review:   review,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ServiceID    string `json:"service_id"`
	Date         string `json:"date" binding:"required"` // YYYY-MM-DD
	Time         string `json:"time" binding:"required"` // HH:mm
	VehicleModel string `json:"vehicle_model" binding:"required"`
	Notes        string `json:"notes"`
}

type SubmitReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	clientID, _ := middleware.UserID(c)

	workshopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateWebReservationInput{
		WorkshopID:   workshopID,
		ClientID:     clientID,
		ServiceID:    req.ServiceID,
		Date:         req.Date,
		Time:         req.Time,
		VehicleModel: req.VehicleModel,
		Notes:        req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// WITHDRAW
// ======================================================

func (h *ReservationHandler) Delete(c *gin.Context) {
	clientID, _ := middleware.UserID(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.withdraw.Execute(c.Request.Context(), clientID, id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// REVIEW
// ======================================================

func (h *ReservationHandler) Review(c *gin.Context) {
	clientID, _ := middleware.UserID(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	review, err := h.review.Execute(c.Request.Context(), ucAppointment.SubmitReviewInput{
		AppointmentID: id,
		ClientID:      clientID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, review)
}
