package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
)

// CalendarTx is the set of operations available inside a tenant-locked transaction.
type CalendarTx interface {
	InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error)
	GetAppointmentForUpdate(ctx context.Context, tenantID string, appointmentID uuid.UUID) (domain.Appointment, error)
	ListOccupied(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]availability.OccupiedInterval, error)
}
