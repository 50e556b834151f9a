package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareRecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New("test")

	r := gin.New()
	r.Use(Middleware(m))
	r.GET("/api/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(Handler(m)))

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/"+id, nil))
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/products/:id", "200"))
	if got != 2 {
		t.Fatalf("expected 2 requests recorded, got %v", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "test_http_requests_total") {
		t.Fatalf("metrics endpoint missing counter: %d", w.Code)
	}
}

func TestDomainCountersAndNilSafety(t *testing.T) {
	m := New("")
	m.RecordQuote("sent")
	m.RecordUpload("success", 3)
	m.RecordUpload("success", 0)
	if got := testutil.ToFloat64(m.QuotesSubmitted.WithLabelValues("sent")); got != 1 {
		t.Fatalf("unexpected quote count %v", got)
	}
	if got := testutil.ToFloat64(m.UploadsTotal.WithLabelValues("success")); got != 3 {
		t.Fatalf("unexpected upload count %v", got)
	}

	var nilMetrics *Metrics
	nilMetrics.RecordLogin("success")
	nilMetrics.RecordGeneration("error")
	if nilMetrics.Registry() != nil {
		t.Fatalf("nil metrics should have no registry")
	}
}
