package domain

// Stats is a read-time summary of slot and appointment counts
type Stats struct {
	TotalSlots        int
	Pending           int
	Approved          int
	Denied            int
	TotalAppointments int
}

// ComputeStats counts slots and appointments by status
func ComputeStats(slots []*TimeSlot, appointments []*Appointment) Stats {
	stats := Stats{
		TotalSlots:        len(slots),
		TotalAppointments: len(appointments),
	}

	for _, a := range appointments {
		switch a.Status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusDenied:
			stats.Denied++
		}
	}

	return stats
}
