package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequestCountsByStatus(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.ObserveRequest("GET", "/api/v1/cart", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/api/v1/cart", 200, 7*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/cart", 409, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/cart", "200")); got != 2 {
		t.Fatalf("expected 2 GET requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/cart", "409")); got != 1 {
		t.Fatalf("expected 1 conflicting POST, got %v", got)
	}
}

func TestObserveRequestNilSafe(t *testing.T) {
	t.Parallel()

	var m *HTTPMetrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.ObserveRequest("GET", "", 200, time.Millisecond)
}
