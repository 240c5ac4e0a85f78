package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "appointments")

	m.RecordAppointmentCreated()
	m.RecordAppointmentCreated()
	m.RecordStatusChange("approved")
	m.RecordBookingConflict("already_booked")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppointmentsCreated.WithLabelValues("appointments")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StatusChanges.WithLabelValues("appointments", "approved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingConflicts.WithLabelValues("appointments", "already_booked")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordAppointmentCreated()
		m.RecordStatusChange("denied")
		m.RecordBookingConflict("unavailable")
	})
	assert.Equal(t, "", m.ServiceName())
}
