package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsByRouteAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/bookings/:id", func(c *gin.Context) {
		c.String(http.StatusOK, `{"id":%q}`, c.Param("id"))
	})
	r.POST("/bookings/:id/cancel", func(c *gin.Context) {
		c.Status(http.StatusNoContent) // no body, size stays -1
	})

	baseGet := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/bookings/:id", "200"))
	baseMiss := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil),
		httptest.NewRequest(http.MethodGet, "/bookings/b-2", nil),
		httptest.NewRequest(http.MethodPost, "/bookings/b-1/cancel", nil),
		httptest.NewRequest(http.MethodGet, "/nope", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
	}

	// Both GETs collapse onto the registered route label, not the raw URL.
	got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/bookings/:id", "200"))
	if got != baseGet+2 {
		t.Fatalf("counter GET /bookings/:id 200 = %v; want %v", got, baseGet+2)
	}

	// Unmatched routes fall back to the raw path.
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404")); got != baseMiss+1 {
		t.Fatalf("counter 404 fallback = %v; want %v", got, baseMiss+1)
	}

	// Gauge returns to zero once requests finish.
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
