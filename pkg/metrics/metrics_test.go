package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegistry("shop-booking", prometheus.NewRegistry())

	m.IncBookingsCreated("recurring", 3)
	m.IncBookingsCreated("recurring", 0)
	m.IncBookingsCancelled("future", 4)
	m.IncSlotClaimConflict()
	m.ObserveHTTPRequest("GET", "/api/v1/shops/{shopId}/available-slots", 200, 15*time.Millisecond)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.bookingsCreated.WithLabelValues("shop-booking", "recurring")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.bookingsCancelled.WithLabelValues("shop-booking", "future")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slotClaimConflicts.WithLabelValues("shop-booking")))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.httpRequestsTotal.WithLabelValues("shop-booking", "GET", "/api/v1/shops/{shopId}/available-slots", "200")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingsCreated("primary", 1)
		m.IncRecurringNotCreated("conflict", 2)
		m.IncSlotCache("hit")
		m.ObserveDBQuery("query", time.Millisecond)
		m.SetDBOpenConnections(3)
	})
}
