package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotwise/backend/internal/domain"
)

const (
	TypeAppointmentBooked      = "appointment.booked.v1"
	TypeAppointmentRescheduled = "appointment.rescheduled.v1"
	TypeAppointmentCancelled   = "appointment.cancelled.v1"
)

// Event is one change to a tenant's calendar.
type Event struct {
	ID         uuid.UUID
	Type       string
	OccurredAt time.Time
	Payload    AppointmentPayload
}

type AppointmentPayload struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	TenantID      string    `json:"tenant_id"`
	ServiceID     uuid.UUID `json:"service_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Status        string    `json:"status"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NewAppointmentEvent builds an event for appt. appt.Service must be loaded
// for the end time to be set.
func NewAppointmentEvent(eventType string, appt domain.Appointment, at time.Time) (Event, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Event{}, err
	}
	at = at.UTC()
	payload := AppointmentPayload{
		AppointmentID: appt.ID,
		TenantID:      appt.TenantID,
		ServiceID:     appt.ServiceID,
		CustomerName:  appt.CustomerName,
		CustomerPhone: appt.CustomerPhone,
		Status:        string(appt.Status),
		StartTime:     appt.StartTime.UTC(),
		OccurredAt:    at,
	}
	if end := appt.EndTime(); !end.IsZero() {
		payload.EndTime = end.UTC()
	}
	return Event{ID: id, Type: eventType, OccurredAt: at, Payload: payload}, nil
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
