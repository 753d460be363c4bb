package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/events"
	"slotwise/backend/internal/store"
)

const (
	maxCustomerNameLen = 200
	maxNotesLen        = 2000
	maxIdempotencyKey  = 256
	maxListWindow      = 93 * 24 * time.Hour
)

type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func validationError(msg string) error {
	return &ValidationError{msg: msg}
}

// ErrEditedAppointmentNotFound is returned by AvailableSlots when the
// appointment being edited does not exist. It matches store.ErrNotFound.
var ErrEditedAppointmentNotFound = fmt.Errorf("edited appointment: %w", store.ErrNotFound)

type Service struct {
	appointments store.AppointmentRepository
	services     store.ServiceRepository
	settings     store.SettingsRepository
	publisher    events.Publisher
	defaults     domain.BusinessSettings
	log          *slog.Logger
	now          func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithDefaultSettings sets the hours and zone used for tenants that never
// saved their own.
func WithDefaultSettings(d domain.BusinessSettings) Option {
	return func(s *Service) { s.defaults = d }
}

func NewService(appointments store.AppointmentRepository, services store.ServiceRepository, settings store.SettingsRepository, opts ...Option) *Service {
	s := &Service{
		appointments: appointments,
		services:     services,
		settings:     settings,
		publisher:    events.Nop{},
		defaults:     domain.DefaultSettings(),
		log:          slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type AvailabilityInput struct {
	TenantID             string
	ServiceID            uuid.UUID
	Date                 string
	EditingAppointmentID uuid.UUID
}

type Availability struct {
	Date     string
	TimeZone string
	Mode     availability.Mode
	Slots    []availability.TimeSlot
}

// AvailableSlots lists the start times a customer may pick for the service on
// the given date. When EditingAppointmentID is set, that appointment's own
// interval does not block its slots.
func (s *Service) AvailableSlots(ctx context.Context, in AvailabilityInput) (Availability, error) {
	if in.TenantID == "" {
		return Availability{}, validationError("tenant_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return Availability{}, validationError("service_id is required")
	}

	settings, err := store.SettingsOrDefault(ctx, s.settings, in.TenantID, s.defaults)
	if err != nil {
		return Availability{}, err
	}
	loc := settings.Location()
	day, err := availability.ParseDate(in.Date, loc)
	if err != nil {
		return Availability{}, validationError("date must be YYYY-MM-DD")
	}

	svc, err := s.activeService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return Availability{}, err
	}

	var editing *availability.EditExclusion
	if in.EditingAppointmentID != uuid.Nil {
		appt, err := s.appointments.Get(ctx, in.TenantID, in.EditingAppointmentID)
		if errors.Is(err, store.ErrNotFound) {
			return Availability{}, ErrEditedAppointmentNotFound
		}
		if err != nil {
			return Availability{}, err
		}
		if appt.Status != domain.AppointmentStatusBooked {
			return Availability{}, validationError("appointment is cancelled")
		}
		editing = &availability.EditExclusion{
			AppointmentID: appt.ID,
			Start:         appt.StartTime,
			End:           appt.EndTime(),
		}
	}

	out := Availability{
		Date:     day.Format(availability.DateFormat),
		TimeZone: loc.String(),
		Mode:     availability.ModeCreating,
		Slots:    []availability.TimeSlot{},
	}
	if editing != nil {
		out.Mode = availability.ModeEditing
	}

	now := s.now().In(loc)
	if day.Before(availability.DayWindow(now).Start) {
		return out, nil
	}

	window := availability.DayWindow(day)
	occupied, err := s.appointments.ListOccupied(ctx, in.TenantID, window.Start, window.End)
	if err != nil {
		return Availability{}, err
	}

	hours := settings.Hours()
	out.Slots = availability.AvailableSlots(availability.Request{
		Slots:    availability.GenerateTimeSlots(hours),
		Hours:    hours,
		Date:     day,
		Duration: svc.Duration(),
		Occupied: occupied,
		Now:      now,
		Editing:  editing,
	})
	return out, nil
}

type BookInput struct {
	TenantID       string
	ServiceID      uuid.UUID
	Date           string
	Slot           string
	CustomerName   string
	CustomerPhone  string
	Notes          string
	IdempotencyKey string
}

func (s *Service) Book(ctx context.Context, in BookInput) (domain.Appointment, error) {
	if in.TenantID == "" {
		return domain.Appointment{}, validationError("tenant_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Appointment{}, validationError("service_id is required")
	}
	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		return domain.Appointment{}, validationError("customer_name is required")
	}
	if len(name) > maxCustomerNameLen {
		return domain.Appointment{}, validationError("customer_name too long")
	}
	if len(in.Notes) > maxNotesLen {
		return domain.Appointment{}, validationError("notes too long")
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if len(key) > maxIdempotencyKey {
		return domain.Appointment{}, validationError("idempotency_key too long")
	}

	req, err := s.parseSlot(ctx, in.TenantID, in.Date, in.Slot)
	if err != nil {
		return domain.Appointment{}, err
	}

	appt := domain.Appointment{
		TenantID:      in.TenantID,
		ServiceID:     in.ServiceID,
		CustomerName:  name,
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Notes:         in.Notes,
		StartTime:     req.start(),
	}

	if key != "" {
		appt.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("slotwise:book_appointment:"+in.TenantID+":"+key))

		// A retry may arrive after the slot started or the service was
		// retired, so replays are answered before the slot is checked.
		existing, err := s.appointments.Get(ctx, in.TenantID, appt.ID)
		switch {
		case err == nil:
			if !sameBooking(existing, appt) {
				return domain.Appointment{}, store.ErrIdempotencyConflict
			}
			return existing, nil
		case !errors.Is(err, store.ErrNotFound):
			return domain.Appointment{}, err
		}
	}

	svc, err := s.activeService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if err := req.offered(svc, s.now()); err != nil {
		return domain.Appointment{}, err
	}

	created, err := s.appointments.Create(ctx, appt, svc.Duration())
	if err != nil {
		return domain.Appointment{}, err
	}
	if created.Service == nil {
		created.Service = &svc
	}
	s.publish(ctx, events.TypeAppointmentBooked, created, s.now())
	return created, nil
}

type RescheduleInput struct {
	TenantID      string
	AppointmentID uuid.UUID
	// ServiceID switches the appointment to another service when set.
	ServiceID uuid.UUID
	Date      string
	Slot      string
	// Notes replaces the appointment notes when non-nil.
	Notes *string
}

func (s *Service) Reschedule(ctx context.Context, in RescheduleInput) (domain.Appointment, error) {
	if in.TenantID == "" {
		return domain.Appointment{}, validationError("tenant_id is required")
	}
	if in.AppointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}
	if in.Notes != nil && len(*in.Notes) > maxNotesLen {
		return domain.Appointment{}, validationError("notes too long")
	}

	existing, err := s.appointments.Get(ctx, in.TenantID, in.AppointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if existing.Status != domain.AppointmentStatusBooked {
		return domain.Appointment{}, validationError("appointment is cancelled")
	}

	serviceID := existing.ServiceID
	if in.ServiceID != uuid.Nil {
		serviceID = in.ServiceID
	}
	svc, err := s.activeService(ctx, in.TenantID, serviceID)
	if err != nil {
		return domain.Appointment{}, err
	}
	req, err := s.parseSlot(ctx, in.TenantID, in.Date, in.Slot)
	if err != nil {
		return domain.Appointment{}, err
	}
	if err := req.offered(svc, s.now()); err != nil {
		return domain.Appointment{}, err
	}

	notes := existing.Notes
	if in.Notes != nil {
		notes = *in.Notes
	}

	updated, err := s.appointments.Reschedule(ctx, domain.Appointment{
		ID:        existing.ID,
		TenantID:  in.TenantID,
		ServiceID: svc.ID,
		StartTime: req.start(),
		Notes:     notes,
		Service:   &svc,
	}, svc.Duration())
	if err != nil {
		return domain.Appointment{}, err
	}
	updated.Service = &svc
	s.publish(ctx, events.TypeAppointmentRescheduled, updated, s.now())
	return updated, nil
}

// Cancel releases the appointment's slot. Cancelling an already cancelled
// appointment returns it unchanged.
func (s *Service) Cancel(ctx context.Context, tenantID string, appointmentID uuid.UUID) (domain.Appointment, error) {
	if tenantID == "" {
		return domain.Appointment{}, validationError("tenant_id is required")
	}
	if appointmentID == uuid.Nil {
		return domain.Appointment{}, validationError("appointment_id is required")
	}

	existing, err := s.appointments.Get(ctx, tenantID, appointmentID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if existing.Status == domain.AppointmentStatusCancelled {
		return existing, nil
	}

	now := s.now().UTC()
	cancelled, err := s.appointments.Cancel(ctx, tenantID, appointmentID, now)
	if err != nil {
		return domain.Appointment{}, err
	}
	if cancelled.Service == nil {
		cancelled.Service = existing.Service
	}
	s.publish(ctx, events.TypeAppointmentCancelled, cancelled, now)
	return cancelled, nil
}

func (s *Service) List(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]domain.Appointment, error) {
	if tenantID == "" {
		return nil, validationError("tenant_id is required")
	}

	start := windowStart.UTC()
	end := windowEnd.UTC()
	if end.Equal(start) || end.Before(start) {
		return nil, validationError("window_end must be after window_start")
	}
	if end.Sub(start) > maxListWindow {
		return nil, validationError("window too long")
	}

	return s.appointments.List(ctx, tenantID, start, end)
}

func (s *Service) activeService(ctx context.Context, tenantID string, serviceID uuid.UUID) (domain.Service, error) {
	svc, err := s.services.GetService(ctx, tenantID, serviceID)
	if err != nil {
		return domain.Service{}, err
	}
	if !svc.Active {
		return domain.Service{}, validationError("service is not active")
	}
	if svc.DurationMinutes <= 0 {
		return domain.Service{}, validationError("service has no duration")
	}
	return svc, nil
}

// slotRequest is a requested date and slot in the tenant's zone.
type slotRequest struct {
	settings domain.BusinessSettings
	day      time.Time
	slot     availability.TimeSlot
}

func (r slotRequest) start() time.Time {
	return r.slot.On(r.day).UTC()
}

func (s *Service) parseSlot(ctx context.Context, tenantID, date, slot string) (slotRequest, error) {
	settings, err := store.SettingsOrDefault(ctx, s.settings, tenantID, s.defaults)
	if err != nil {
		return slotRequest{}, err
	}
	day, err := availability.ParseDate(date, settings.Location())
	if err != nil {
		return slotRequest{}, validationError("date must be YYYY-MM-DD")
	}
	ts, err := availability.ParseTimeSlot(slot)
	if err != nil {
		return slotRequest{}, validationError("slot must be HH:mm")
	}
	return slotRequest{settings: settings, day: day, slot: ts}, nil
}

// offered checks that the slot is one the tenant offers for svc at now,
// ignoring bookings. Overlap with other appointments is checked by the
// repository under lock.
func (r slotRequest) offered(svc domain.Service, now time.Time) error {
	hours := r.settings.Hours()
	if !onGrid(availability.GenerateTimeSlots(hours), r.slot) {
		return validationError("slot is outside business hours")
	}

	now = now.In(r.settings.Location())
	if r.day.Before(availability.DayWindow(now).Start) {
		return validationError("slot is not bookable")
	}

	offered := availability.AvailableSlots(availability.Request{
		Slots:    []availability.TimeSlot{r.slot},
		Hours:    hours,
		Date:     r.day,
		Duration: svc.Duration(),
		Occupied: []availability.OccupiedInterval{},
		Now:      now,
	})
	if len(offered) == 0 {
		return validationError("slot is not bookable")
	}
	return nil
}

func onGrid(slots []availability.TimeSlot, ts availability.TimeSlot) bool {
	for _, s := range slots {
		if s == ts {
			return true
		}
	}
	return false
}

func sameBooking(existing, appt domain.Appointment) bool {
	return existing.ServiceID == appt.ServiceID &&
		existing.CustomerName == appt.CustomerName &&
		existing.CustomerPhone == appt.CustomerPhone &&
		existing.Notes == appt.Notes &&
		existing.StartTime.Equal(appt.StartTime)
}

// publish runs after the write committed, so failures are logged only.
func (s *Service) publish(ctx context.Context, eventType string, appt domain.Appointment, at time.Time) {
	evt, err := events.NewAppointmentEvent(eventType, appt, at)
	if err == nil {
		err = s.publisher.Publish(ctx, evt)
	}
	if err != nil {
		s.log.WarnContext(ctx, "publish event failed",
			"event_type", eventType,
			"tenant_id", appt.TenantID,
			"appointment_id", appt.ID.String(),
			"err", err,
		)
	}
}

