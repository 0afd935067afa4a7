package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/middleware"
)

type WorkshopHandler struct {
	summary summaryGetter
}

func NewWorkshopHandler(summary summaryGetter) *WorkshopHandler {
	return &WorkshopHandler{summary: summary}
}

func (h *WorkshopHandler) GetMeWorkshop(c *gin.Context) {
	workshopID, _ := middleware.WorkshopID(c)

	out, err := h.summary.Execute(c.Request.Context(), workshopID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
