package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a booking of one service for one customer. The end time is
// not stored; it follows from the linked service's duration.
type Appointment struct {
	bun.BaseModel `bun:"table:appointments,alias:a"`

	ID            uuid.UUID         `bun:"id,pk,type:uuid"`
	TenantID      string            `bun:"tenant_id,notnull"`
	ServiceID     uuid.UUID         `bun:"service_id,notnull,type:uuid"`
	CustomerName  string            `bun:"customer_name,notnull"`
	CustomerPhone string            `bun:"customer_phone"`
	Notes         string            `bun:"notes"`
	StartTime     time.Time         `bun:"start_time,notnull"`
	Status        AppointmentStatus `bun:"status,notnull"`
	CancelledAt   *time.Time        `bun:"cancelled_at"`
	CreatedAt     time.Time         `bun:"created_at,notnull"`
	UpdatedAt     time.Time         `bun:"updated_at,notnull"`

	Service *Service `bun:"rel:belongs-to,join:service_id=id"`
}

// EndTime is StartTime plus the duration of the loaded service. It is the
// zero time when the service relation was not loaded.
func (a Appointment) EndTime() time.Time {
	if a.Service == nil {
		return time.Time{}
	}
	return a.StartTime.Add(a.Service.Duration())
}

func (a *Appointment) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if a.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return err
			}
			a.ID = id
		}
		if a.Status == "" {
			a.Status = AppointmentStatusBooked
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		if a.UpdatedAt.IsZero() {
			a.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		a.UpdatedAt = now
	}
	return nil
}
