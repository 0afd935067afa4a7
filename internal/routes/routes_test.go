package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/workshop-scheduler/internal/audit"
	"github.com/BruksfildServices01/workshop-scheduler/internal/config"
	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/workshop-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/workshop-scheduler/internal/usecase/appointment"
)

// emptyStore knows no workshops. Methods not overridden panic if reached.
type emptyStore struct {
	domain.Repository
}

func (emptyStore) GetWorkshop(context.Context, uuid.UUID) (*models.Workshop, error) {
	return nil, domain.ErrNotFound
}

func (emptyStore) CreateAuditLog(context.Context, *models.AuditLog) error { return nil }

func (emptyStore) ListAuditLogs(context.Context, audit.Filter) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &config.Config{JWTSecret: "s"}, emptyStore{}, ucAppointment.Deps{}, metrics.New(prometheus.NewRegistry()))
	return r
}

func TestRoutes(t *testing.T) {
	r := newEngine()
	shop := uuid.NewString()

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/public/workshops/" + shop + "/availability?date=2024-05-20", http.StatusNotFound},
		{http.MethodGet, "/api/public/workshops/" + shop + "/availability?date=20-05-2024", http.StatusBadRequest},
		{http.MethodGet, "/api/public/workshops/" + shop + "/services", http.StatusNotFound},
		{http.MethodPost, "/api/client/workshops/" + shop + "/appointments", http.StatusUnauthorized},
		{http.MethodGet, "/api/me/workshop", http.StatusUnauthorized},
		{http.MethodDelete, "/api/me/appointments/" + uuid.NewString(), http.StatusUnauthorized},
		{http.MethodGet, "/api/me/mechanics", http.StatusUnauthorized},
		{http.MethodPost, "/api/me/mechanics", http.StatusUnauthorized},
		{http.MethodPatch, "/api/me/mechanics/" + uuid.NewString(), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRoutes_MetricsExposeRequests(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "workshop_scheduler_http_request_duration_seconds")
}
