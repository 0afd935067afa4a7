package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		allowed []string
		origin  string
		method  string
		status  int
		allow   string
	}{
		{"any origin", nil, "https://taller.pe", http.MethodGet, http.StatusOK, "https://taller.pe"},
		{"listed origin", []string{"https://taller.pe"}, "https://taller.pe", http.MethodGet, http.StatusOK, "https://taller.pe"},
		{"unlisted origin", []string{"https://taller.pe"}, "https://evil.example", http.MethodGet, http.StatusOK, ""},
		{"preflight", nil, "https://taller.pe", http.MethodOptions, http.StatusNoContent, "https://taller.pe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tt.allowed))
			r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/x", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.allow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
