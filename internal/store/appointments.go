package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
)

// AppointmentRepository persists appointments. Create and Reschedule re-check
// the requested interval against booked appointments while holding the
// tenant's calendar lock and fail with ErrSlotConflict on overlap.
type AppointmentRepository interface {
	Create(ctx context.Context, appt domain.Appointment, duration time.Duration) (domain.Appointment, error)
	Reschedule(ctx context.Context, appt domain.Appointment, duration time.Duration) (domain.Appointment, error)
	// Cancel stamps CancelledAt with at.
	Cancel(ctx context.Context, tenantID string, appointmentID uuid.UUID, at time.Time) (domain.Appointment, error)
	Get(ctx context.Context, tenantID string, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]domain.Appointment, error)

	// ListOccupied returns the intervals of booked appointments intersecting
	// the window, ordered by start.
	ListOccupied(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]availability.OccupiedInterval, error)
}
