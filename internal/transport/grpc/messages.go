package grpc

import "google.golang.org/protobuf/types/known/timestamppb"

// Wire messages of slotwise.v1. Field names follow the protobuf JSON mapping
// with snake_case keys.

type Appointment struct {
	Id            string                 `json:"id"`
	TenantId      string                 `json:"tenant_id"`
	ServiceId     string                 `json:"service_id"`
	ServiceName   string                 `json:"service_name,omitempty"`
	CustomerName  string                 `json:"customer_name"`
	CustomerPhone string                 `json:"customer_phone,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Status        string                 `json:"status"`
	StartTime     *timestamppb.Timestamp `json:"start_time"`
	EndTime       *timestamppb.Timestamp `json:"end_time,omitempty"`
	CancelledAt   *timestamppb.Timestamp `json:"cancelled_at,omitempty"`
	CreatedAt     *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt     *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type ListAvailableSlotsRequest struct {
	TenantId  string `json:"tenant_id"`
	ServiceId string `json:"service_id"`
	// Date is YYYY-MM-DD in the tenant's time zone.
	Date string `json:"date"`
	// EditingAppointmentId is set while rescheduling that appointment.
	EditingAppointmentId string `json:"editing_appointment_id,omitempty"`
}

type ListAvailableSlotsResponse struct {
	Date     string   `json:"date"`
	TimeZone string   `json:"time_zone"`
	Mode     string   `json:"mode"`
	Slots    []string `json:"slots"`
}

type BookAppointmentRequest struct {
	TenantId      string `json:"tenant_id"`
	ServiceId     string `json:"service_id"`
	Date          string `json:"date"`
	Slot          string `json:"slot"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type BookAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

type RescheduleAppointmentRequest struct {
	TenantId      string  `json:"tenant_id"`
	AppointmentId string  `json:"appointment_id"`
	ServiceId     string  `json:"service_id,omitempty"`
	Date          string  `json:"date"`
	Slot          string  `json:"slot"`
	Notes         *string `json:"notes,omitempty"`
}

type RescheduleAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

type CancelAppointmentRequest struct {
	TenantId      string `json:"tenant_id"`
	AppointmentId string `json:"appointment_id"`
}

type CancelAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

type ListAppointmentsRequest struct {
	TenantId    string                 `json:"tenant_id"`
	WindowStart *timestamppb.Timestamp `json:"window_start"`
	WindowEnd   *timestamppb.Timestamp `json:"window_end"`
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
}

type Service struct {
	Id              string                 `json:"id"`
	TenantId        string                 `json:"tenant_id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	DurationMinutes int32                  `json:"duration_minutes"`
	PriceCents      int64                  `json:"price_cents"`
	Active          bool                   `json:"active"`
	CreatedAt       *timestamppb.Timestamp `json:"created_at,omitempty"`
	UpdatedAt       *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

type CreateServiceRequest struct {
	TenantId        string `json:"tenant_id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	DurationMinutes int32  `json:"duration_minutes"`
	PriceCents      int64  `json:"price_cents"`
}

type CreateServiceResponse struct {
	Service *Service `json:"service"`
}

type ListServicesRequest struct {
	TenantId        string `json:"tenant_id"`
	IncludeInactive bool   `json:"include_inactive,omitempty"`
}

type ListServicesResponse struct {
	Services []*Service `json:"services"`
}

type UpdateServiceRequest struct {
	TenantId        string  `json:"tenant_id"`
	ServiceId       string  `json:"service_id"`
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes *int32  `json:"duration_minutes,omitempty"`
	PriceCents      *int64  `json:"price_cents,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

type UpdateServiceResponse struct {
	Service *Service `json:"service"`
}

type BusinessHours struct {
	TenantId    string `json:"tenant_id"`
	OpenHour    int32  `json:"open_hour"`
	CloseHour   int32  `json:"close_hour"`
	StepMinutes int32  `json:"step_minutes"`
	TimeZone    string `json:"time_zone"`
	// Slots is the start-time grid these hours produce.
	Slots []string `json:"slots"`
}

type GetBusinessHoursRequest struct {
	TenantId string `json:"tenant_id"`
}

type GetBusinessHoursResponse struct {
	BusinessHours *BusinessHours `json:"business_hours"`
}

type UpdateBusinessHoursRequest struct {
	TenantId    string `json:"tenant_id"`
	OpenHour    int32  `json:"open_hour"`
	CloseHour   int32  `json:"close_hour"`
	StepMinutes int32  `json:"step_minutes"`
	TimeZone    string `json:"time_zone"`
}

type UpdateBusinessHoursResponse struct {
	BusinessHours *BusinessHours `json:"business_hours"`
}
