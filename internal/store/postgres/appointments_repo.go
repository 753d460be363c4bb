package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/uptrace/bun"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/store"
)

// appointmentEndExpr derives an appointment's end from its joined service.
const appointmentEndExpr = "a.start_time + make_interval(mins => service.duration_minutes)"

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

type calendarTx struct {
	tx bun.Tx
}

func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment, duration time.Duration) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InTenantTransaction(ctx, appt.TenantID, func(ctx context.Context, tx store.CalendarTx) error {
		if appt.ID != uuid.Nil {
			existing, err := tx.GetAppointmentForUpdate(ctx, appt.TenantID, appt.ID)
			if err == nil {
				if !sameBooking(existing, appt) {
					return store.ErrIdempotencyConflict
				}
				out = existing
				return nil
			}
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		candidate := availability.Interval{Start: appt.StartTime, End: appt.StartTime.Add(duration)}
		if err := ensureSlotFree(ctx, tx, appt.TenantID, candidate, nil); err != nil {
			return err
		}

		a, err := tx.InsertAppointment(ctx, appt)
		if err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *AppointmentRepo) Reschedule(ctx context.Context, appt domain.Appointment, duration time.Duration) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InTenantTransaction(ctx, appt.TenantID, func(ctx context.Context, tx store.CalendarTx) error {
		existing, err := tx.GetAppointmentForUpdate(ctx, appt.TenantID, appt.ID)
		if err != nil {
			return err
		}
		if existing.Status != domain.AppointmentStatusBooked {
			return store.ErrNotFound
		}

		editing := &availability.EditExclusion{
			AppointmentID: existing.ID,
			Start:         existing.StartTime,
			End:           existing.EndTime(),
		}
		candidate := availability.Interval{Start: appt.StartTime, End: appt.StartTime.Add(duration)}
		if err := ensureSlotFree(ctx, tx, appt.TenantID, candidate, editing); err != nil {
			return err
		}

		if existing.ServiceID != appt.ServiceID {
			existing.Service = appt.Service
		}
		existing.ServiceID = appt.ServiceID
		existing.StartTime = appt.StartTime
		existing.Notes = appt.Notes
		updated, err := tx.UpdateAppointment(ctx, existing)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

// Cancel marks the appointment cancelled. Cancelling twice is a no-op.
func (r *AppointmentRepo) Cancel(ctx context.Context, tenantID string, appointmentID uuid.UUID, at time.Time) (domain.Appointment, error) {
	var out domain.Appointment
	err := r.InTenantTransaction(ctx, tenantID, func(ctx context.Context, tx store.CalendarTx) error {
		existing, err := tx.GetAppointmentForUpdate(ctx, tenantID, appointmentID)
		if err != nil {
			return err
		}
		if existing.Status == domain.AppointmentStatusCancelled {
			out = existing
			return nil
		}

		cancelledAt := at.UTC()
		existing.Status = domain.AppointmentStatusCancelled
		existing.CancelledAt = &cancelledAt
		updated, err := tx.UpdateAppointment(ctx, existing)
		if err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		return domain.Appointment{}, err
	}
	return out, nil
}

func (r *AppointmentRepo) Get(ctx context.Context, tenantID string, appointmentID uuid.UUID) (domain.Appointment, error) {
	var appt domain.Appointment
	err := r.db.NewSelect().
		Model(&appt).
		Relation("Service").
		Where("a.tenant_id = ?", tenantID).
		Where("a.id = ?", appointmentID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (r *AppointmentRepo) List(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	var rows []domain.Appointment
	err := r.db.NewSelect().
		Model(&rows).
		Relation("Service").
		Where("a.tenant_id = ?", tenantID).
		Where("a.start_time < ?", windowEnd).
		Where(appointmentEndExpr+" > ?", windowStart).
		OrderExpr("a.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *AppointmentRepo) ListOccupied(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]availability.OccupiedInterval, error) {
	return listOccupied(ctx, r.db, tenantID, windowStart, windowEnd)
}

func (r *AppointmentRepo) InTenantTransaction(ctx context.Context, tenantID string, fn func(ctx context.Context, tx store.CalendarTx) error) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := lockTenantCalendar(ctx, tx, tenantID); err != nil {
			return err
		}
		return fn(ctx, calendarTx{tx: tx})
	})
}

func lockTenantCalendar(ctx context.Context, tx bun.Tx, tenantID string) error {
	_, err := tx.NewRaw("SELECT pg_advisory_xact_lock(hashtext(?))", "slotwise:"+tenantID).Exec(ctx)
	return err
}

func listOccupied(ctx context.Context, db bun.IDB, tenantID string, windowStart, windowEnd time.Time) ([]availability.OccupiedInterval, error) {
	var rows []domain.Appointment
	err := db.NewSelect().
		Model(&rows).
		Relation("Service").
		Where("a.tenant_id = ?", tenantID).
		Where("a.status = ?", domain.AppointmentStatusBooked).
		Where("a.start_time < ?", windowEnd).
		Where(appointmentEndExpr+" > ?", windowStart).
		OrderExpr("a.start_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]availability.OccupiedInterval, 0, len(rows))
	for _, a := range rows {
		out = append(out, availability.OccupiedInterval{
			AppointmentID: a.ID,
			Interval: availability.Interval{
				Start: a.StartTime.UTC(),
				End:   a.EndTime().UTC(),
			},
		})
	}
	return out, nil
}

func (r calendarTx) InsertAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := domain.Appointment{
		ID:            appt.ID,
		TenantID:      appt.TenantID,
		ServiceID:     appt.ServiceID,
		CustomerName:  appt.CustomerName,
		CustomerPhone: appt.CustomerPhone,
		Notes:         appt.Notes,
		StartTime:     appt.StartTime,
		Status:        appt.Status,
		CreatedAt:     appt.CreatedAt,
		UpdatedAt:     appt.UpdatedAt,
	}

	_, err := r.tx.NewInsert().Model(&m).Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapWriteError(err)
	}
	return m, nil
}

func (r calendarTx) UpdateAppointment(ctx context.Context, appt domain.Appointment) (domain.Appointment, error) {
	m := appt
	m.Service = nil

	res, err := r.tx.NewUpdate().
		Model(&m).
		Column("service_id", "start_time", "notes", "status", "cancelled_at", "updated_at").
		Where("a.tenant_id = ?", appt.TenantID).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Appointment{}, mapWriteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Appointment{}, err
	}
	if affected == 0 {
		return domain.Appointment{}, store.ErrNotFound
	}
	m.Service = appt.Service
	return m, nil
}

func (r calendarTx) GetAppointmentForUpdate(ctx context.Context, tenantID string, appointmentID uuid.UUID) (domain.Appointment, error) {
	var appt domain.Appointment
	err := r.tx.NewSelect().
		Model(&appt).
		Relation("Service").
		Where("a.tenant_id = ?", tenantID).
		Where("a.id = ?", appointmentID).
		For("UPDATE OF a").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Appointment{}, store.ErrNotFound
		}
		return domain.Appointment{}, err
	}
	return appt, nil
}

func (r calendarTx) ListOccupied(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]availability.OccupiedInterval, error) {
	return listOccupied(ctx, r.tx, tenantID, windowStart, windowEnd)
}

// ensureSlotFree is the write-time availability check. It runs inside the
// tenant lock so no other writer can book the interval concurrently.
func ensureSlotFree(ctx context.Context, tx store.CalendarTx, tenantID string, candidate availability.Interval, editing *availability.EditExclusion) error {
	occupied, err := tx.ListOccupied(ctx, tenantID, candidate.Start, candidate.End)
	if err != nil {
		return err
	}
	if availability.Conflicts(candidate, occupied, editing) {
		return store.ErrSlotConflict
	}
	return nil
}

func sameBooking(existing, appt domain.Appointment) bool {
	return existing.TenantID == appt.TenantID &&
		existing.ServiceID == appt.ServiceID &&
		existing.CustomerName == appt.CustomerName &&
		existing.CustomerPhone == appt.CustomerPhone &&
		existing.Notes == appt.Notes &&
		existing.StartTime.Equal(appt.StartTime)
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return store.ErrIdempotencyConflict
		case pgForeignKeyViolation:
			return store.ErrNotFound
		}
	}
	return err
}
