package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_ExposesCollectors(t *testing.T) {
	PurchasesTotal.Inc()
	ResetRequestsTotal.WithLabelValues(ResetSent).Inc()
	HTTPRequestsTotal.WithLabelValues(http.MethodGet, "200").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "cursos_purchases_total")
	assert.Contains(t, body, `cursos_reset_requests_total{outcome="sent"}`)
	assert.Contains(t, body, `cursos_http_requests_total{method="GET",status="200"}`)
}
