package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/service/booking"
)

type BookingServer struct {
	svc bookingService
	log *slog.Logger
}

var _ BookingServiceServer = (*BookingServer)(nil)

type bookingService interface {
	AvailableSlots(ctx context.Context, in booking.AvailabilityInput) (booking.Availability, error)
	Book(ctx context.Context, in booking.BookInput) (domain.Appointment, error)
	Reschedule(ctx context.Context, in booking.RescheduleInput) (domain.Appointment, error)
	Cancel(ctx context.Context, tenantID string, appointmentID uuid.UUID) (domain.Appointment, error)
	List(ctx context.Context, tenantID string, windowStart, windowEnd time.Time) ([]domain.Appointment, error)
}

func NewBookingServer(svc bookingService, log *slog.Logger) *BookingServer {
	if log == nil {
		log = slog.Default()
	}
	return &BookingServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.booking")),
	}
}

func (s *BookingServer) ListAvailableSlots(ctx context.Context, req *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error) {
	log := s.log.With(slog.String("rpc", "ListAvailableSlots"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}
	serviceID, err := uuid.Parse(req.ServiceId)
	if err != nil {
		return nil, invalidArgument(log, "invalid_uuid", "service_id must be a UUID", slog.String("tenant_id", req.TenantId))
	}
	var editingID uuid.UUID
	if req.EditingAppointmentId != "" {
		editingID, err = uuid.Parse(req.EditingAppointmentId)
		if err != nil {
			return nil, invalidArgument(log, "invalid_uuid", "editing_appointment_id must be a UUID", slog.String("tenant_id", req.TenantId))
		}
	}

	avail, err := s.svc.AvailableSlots(ctx, booking.AvailabilityInput{
		TenantID:             req.TenantId,
		ServiceID:            serviceID,
		Date:                 req.Date,
		EditingAppointmentID: editingID,
	})
	if err != nil {
		notFound := "service not found"
		if errors.Is(err, booking.ErrEditedAppointmentNotFound) {
			notFound = "appointment not found"
		}
		return nil, statusError(log, "availability", notFound, err,
			slog.String("tenant_id", req.TenantId),
			slog.String("service_id", req.ServiceId),
			slog.String("date", req.Date),
		)
	}

	log.Debug(
		"slots listed",
		slog.String("tenant_id", req.TenantId),
		slog.String("service_id", req.ServiceId),
		slog.String("date", avail.Date),
		slog.String("mode", string(avail.Mode)),
		slog.Int("count", len(avail.Slots)),
	)

	return &ListAvailableSlotsResponse{
		Date:     avail.Date,
		TimeZone: avail.TimeZone,
		Mode:     string(avail.Mode),
		Slots:    availability.FormatSlots(avail.Slots),
	}, nil
}

func (s *BookingServer) BookAppointment(ctx context.Context, req *BookAppointmentRequest) (*BookAppointmentResponse, error) {
	log := s.log.With(slog.String("rpc", "BookAppointment"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}
	serviceID, err := uuid.Parse(req.ServiceId)
	if err != nil {
		return nil, invalidArgument(log, "invalid_uuid", "service_id must be a UUID", slog.String("tenant_id", req.TenantId))
	}

	appt, err := s.svc.Book(ctx, booking.BookInput{
		TenantID:       req.TenantId,
		ServiceID:      serviceID,
		Date:           req.Date,
		Slot:           req.Slot,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		Notes:          req.Notes,
		IdempotencyKey: idempotencyKey(ctx),
	})
	if err != nil {
		return nil, statusError(log, "appointment book", "service not found", err,
			slog.String("tenant_id", req.TenantId),
			slog.String("service_id", req.ServiceId),
			slog.String("date", req.Date),
			slog.String("slot", req.Slot),
		)
	}

	log.Info(
		"appointment booked",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("tenant_id", appt.TenantID),
		slog.Time("start_time", appt.StartTime),
		slog.Time("end_time", appt.EndTime()),
	)

	return &BookAppointmentResponse{Appointment: toWireAppointment(appt)}, nil
}

func (s *BookingServer) RescheduleAppointment(ctx context.Context, req *RescheduleAppointmentRequest) (*RescheduleAppointmentResponse, error) {
	log := s.log.With(slog.String("rpc", "RescheduleAppointment"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}
	id, err := uuid.Parse(req.AppointmentId)
	if err != nil {
		return nil, invalidArgument(log, "invalid_uuid", "appointment_id must be a UUID", slog.String("tenant_id", req.TenantId))
	}
	var serviceID uuid.UUID
	if req.ServiceId != "" {
		serviceID, err = uuid.Parse(req.ServiceId)
		if err != nil {
			return nil, invalidArgument(log, "invalid_uuid", "service_id must be a UUID", slog.String("tenant_id", req.TenantId))
		}
	}

	appt, err := s.svc.Reschedule(ctx, booking.RescheduleInput{
		TenantID:      req.TenantId,
		AppointmentID: id,
		ServiceID:     serviceID,
		Date:          req.Date,
		Slot:          req.Slot,
		Notes:         req.Notes,
	})
	if err != nil {
		return nil, statusError(log, "appointment reschedule", "appointment not found", err,
			slog.String("tenant_id", req.TenantId),
			slog.String("appointment_id", req.AppointmentId),
			slog.String("date", req.Date),
			slog.String("slot", req.Slot),
		)
	}

	log.Info(
		"appointment rescheduled",
		slog.String("appointment_id", appt.ID.String()),
		slog.String("tenant_id", appt.TenantID),
		slog.Time("start_time", appt.StartTime),
		slog.Time("end_time", appt.EndTime()),
	)

	return &RescheduleAppointmentResponse{Appointment: toWireAppointment(appt)}, nil
}

func (s *BookingServer) CancelAppointment(ctx context.Context, req *CancelAppointmentRequest) (*CancelAppointmentResponse, error) {
	log := s.log.With(slog.String("rpc", "CancelAppointment"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}
	id, err := uuid.Parse(req.AppointmentId)
	if err != nil {
		return nil, invalidArgument(log, "invalid_uuid", "appointment_id must be a UUID", slog.String("tenant_id", req.TenantId))
	}

	appt, err := s.svc.Cancel(ctx, req.TenantId, id)
	if err != nil {
		return nil, statusError(log, "appointment cancel", "appointment not found", err,
			slog.String("tenant_id", req.TenantId),
			slog.String("appointment_id", req.AppointmentId),
		)
	}

	log.Info("appointment cancelled", slog.String("appointment_id", appt.ID.String()), slog.String("tenant_id", appt.TenantID))
	return &CancelAppointmentResponse{Appointment: toWireAppointment(appt)}, nil
}

func (s *BookingServer) ListAppointments(ctx context.Context, req *ListAppointmentsRequest) (*ListAppointmentsResponse, error) {
	log := s.log.With(slog.String("rpc", "ListAppointments"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}
	if req.WindowStart == nil || req.WindowEnd == nil {
		return nil, invalidArgument(log, "missing_window", "window_start and window_end are required", slog.String("tenant_id", req.TenantId))
	}

	appts, err := s.svc.List(ctx, req.TenantId, req.WindowStart.AsTime(), req.WindowEnd.AsTime())
	if err != nil {
		return nil, statusError(log, "appointments list", "not found", err, slog.String("tenant_id", req.TenantId))
	}

	out := make([]*Appointment, 0, len(appts))
	for _, a := range appts {
		out = append(out, toWireAppointment(a))
	}

	log.Debug(
		"appointments listed",
		slog.String("tenant_id", req.TenantId),
		slog.Int("count", len(out)),
		slog.Time("window_start", req.WindowStart.AsTime()),
		slog.Time("window_end", req.WindowEnd.AsTime()),
	)

	return &ListAppointmentsResponse{Appointments: out}, nil
}

func toWireAppointment(a domain.Appointment) *Appointment {
	out := &Appointment{
		Id:            a.ID.String(),
		TenantId:      a.TenantID,
		ServiceId:     a.ServiceID.String(),
		CustomerName:  a.CustomerName,
		CustomerPhone: a.CustomerPhone,
		Notes:         a.Notes,
		Status:        string(a.Status),
		StartTime:     timestamppb.New(a.StartTime),
		CreatedAt:     timestamppb.New(a.CreatedAt),
		UpdatedAt:     timestamppb.New(a.UpdatedAt),
	}
	if a.Service != nil {
		out.ServiceName = a.Service.Name
		out.EndTime = timestamppb.New(a.EndTime())
	}
	if a.CancelledAt != nil {
		out.CancelledAt = timestamppb.New(*a.CancelledAt)
	}
	return out
}
