package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/workshop-scheduler/internal/middleware"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
}

func NewAuditLogsHandler(store audit.Store) *AuditLogsHandler {
	return &AuditLogsHandler{store: store}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	workshopID, _ := middleware.WorkshopID(c)

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "50")

	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	// --------------------------------------------------
	// Query (always scoped to the caller's workshop)
	// --------------------------------------------------

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), audit.Filter{
		WorkshopID: workshopID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
