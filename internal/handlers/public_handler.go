package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httpresp"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	services     serviceLister
	availability availabilityGetter
}

func NewPublicHandler(services serviceLister, availability availabilityGetter) *PublicHandler {
	return &PublicHandler{
		services:     services,
		availability: availability,
	}
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	workshopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	services, err := h.services.Execute(c.Request.Context(), workshopID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability: GET /api/public/workshops/:id/availability?date=YYYY-MM-DD
func (h *PublicHandler) Availability(c *gin.Context) {
	workshopID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.availability.Execute(c.Request.Context(), workshopID, c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
