package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
)

type errorMapping struct {
	status  int
	message string
}

var businessErrors = map[string]errorMapping{
	"invalid_request":         {http.StatusBadRequest, "Datos inválidos."},
	"invalid_date_format":     {http.StatusBadRequest, "Fecha inválida, use AAAA-MM-DD."},
	"invalid_time_format":     {http.StatusBadRequest, "Hora inválida, use HH:mm."},
	"not_found":               {http.StatusNotFound, "Recurso no encontrado."},
	"not_authorized":          {http.StatusForbidden, "No autorizado."},
	"slot_already_booked":     {http.StatusConflict, "El horario ya está reservado."},
	"slot_in_past":            {http.StatusConflict, "El horario ya pasó."},
	"outside_operating_hours": {http.StatusConflict, "Fuera del horario de atención."},
	"invalid_transition":      {http.StatusConflict, "La cita no admite esta operación en su estado actual."},
	"already_reviewed":        {http.StatusConflict, "La cita ya fue calificada."},
	"no_services_configured":  {http.StatusUnprocessableEntity, "El taller no tiene servicios configurados."},
	"no_active_mechanic":      {http.StatusUnprocessableEntity, "El taller no tiene mecánicos activos."},
	"capacity_exceeded":       {http.StatusUnprocessableEntity, "Su plan no admite más mecánicos activos."},
}

// writeError is the single place where use case errors become HTTP responses.
func writeError(c *gin.Context, err error) {
	if httperr.IsStore(err) {
		httperr.Unavailable(c, "store_unavailable", "Servicio no disponible, intente nuevamente.")
		return
	}

	code, ok := httperr.Code(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Error interno.")
		return
	}

	m, ok := businessErrors[code]
	if !ok {
		httperr.BadRequest(c, code, "Solicitud rechazada.")
		return
	}
	httperr.Write(c, m.status, code, m.message)
}
