package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

// MechanicHandler manages the roster that drives slot capacity.
type MechanicHandler struct {
	list      rosterLister
	create    mechanicCreator
	rename    mechanicRenamer
	setActive mechanicActivator
}

func NewMechanicHandler(
	list rosterLister,
	create mechanicCreator,
	rename mechanicRenamer,
	setActive mechanicActivator,
) *MechanicHandler {
	return &MechanicHandler{
		list:      list,
		create:    create,
		rename:    rename,
		setActive: setActive,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateMechanicRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateMechanicRequest renames, toggles, or both.
type UpdateMechanicRequest struct {
	Name   *string `json:"name"`
	Active *bool   `json:"active"`
}

// ======================================================
// ACTIONS
// ======================================================

func (h *MechanicHandler) List(c *gin.Context) {
	workshopID, _ := actor(c)

	roster, err := h.list.Execute(c.Request.Context(), workshopID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, roster)
}

func (h *MechanicHandler) Create(c *gin.Context) {
	workshopID, actorID := actor(c)

	var req CreateMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "El nombre es requerido.")
		return
	}

	m, err := h.create.Execute(c.Request.Context(), workshopID, actorID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, m)
}

func (h *MechanicHandler) Update(c *gin.Context) {
	workshopID, actorID := actor(c)

	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Name == nil && req.Active == nil) {
		httperr.BadRequest(c, "invalid_request", "Indique nombre o estado.")
		return
	}

	var (
		m   *models.Mechanic
		err error
	)
	if req.Name != nil {
		if m, err = h.rename.Execute(c.Request.Context(), workshopID, actorID, id, *req.Name); err != nil {
			writeError(c, err)
			return
		}
	}
	if req.Active != nil {
		if m, err = h.setActive.Execute(c.Request.Context(), workshopID, actorID, id, *req.Active); err != nil {
			writeError(c, err)
			return
		}
	}

	httpresp.OK(c, m)
}
