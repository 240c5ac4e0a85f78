package domain

import (
	"errors"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending  AppointmentStatus = "pending"
	StatusApproved AppointmentStatus = "approved"
	StatusDenied   AppointmentStatus = "denied"
)

// AppointmentStatuses lists every valid status in display order
var AppointmentStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
	StatusDenied,
}

// ErrUnknownStatus is returned when a string is not a valid appointment status
var ErrUnknownStatus = errors.New("domain: unknown appointment status")

// ParseAppointmentStatus converts a raw string into an AppointmentStatus
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// IsValid returns true for pending, approved and denied
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	default:
		return false
	}
}

// IsDecision returns true for statuses an administrator can set
func (s AppointmentStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusDenied
}

// Appointment is a customer's request to occupy a slot
type Appointment struct {
	ID            string
	SlotID        string
	CustomerName  string
	CustomerEmail string
	Reason        string
	Status        AppointmentStatus
	BookedAt      time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusDenied
}

// CanTransitionTo returns true if the appointment may move to target.
// Only pending appointments can be decided, and only to approved or denied.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	return a.Status == StatusPending && target.IsDecision()
}

// NewAppointment holds the customer-provided fields of a booking request
type NewAppointment struct {
	SlotID        string
	CustomerName  string
	CustomerEmail string
	Reason        string
}
