package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// BookingClient calls slotwise.v1.BookingService using the JSON codec.
type BookingClient struct {
	cc grpc.ClientConnInterface
}

func NewBookingClient(cc grpc.ClientConnInterface) *BookingClient {
	return &BookingClient{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *BookingClient) ListAvailableSlots(ctx context.Context, in *ListAvailableSlotsRequest, opts ...grpc.CallOption) (*ListAvailableSlotsResponse, error) {
	return invoke[ListAvailableSlotsRequest, ListAvailableSlotsResponse](ctx, c.cc, fullMethod(bookingServiceName, "ListAvailableSlots"), in, opts)
}

func (c *BookingClient) BookAppointment(ctx context.Context, in *BookAppointmentRequest, opts ...grpc.CallOption) (*BookAppointmentResponse, error) {
	return invoke[BookAppointmentRequest, BookAppointmentResponse](ctx, c.cc, fullMethod(bookingServiceName, "BookAppointment"), in, opts)
}

func (c *BookingClient) RescheduleAppointment(ctx context.Context, in *RescheduleAppointmentRequest, opts ...grpc.CallOption) (*RescheduleAppointmentResponse, error) {
	return invoke[RescheduleAppointmentRequest, RescheduleAppointmentResponse](ctx, c.cc, fullMethod(bookingServiceName, "RescheduleAppointment"), in, opts)
}

func (c *BookingClient) CancelAppointment(ctx context.Context, in *CancelAppointmentRequest, opts ...grpc.CallOption) (*CancelAppointmentResponse, error) {
	return invoke[CancelAppointmentRequest, CancelAppointmentResponse](ctx, c.cc, fullMethod(bookingServiceName, "CancelAppointment"), in, opts)
}

func (c *BookingClient) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsRequest, ListAppointmentsResponse](ctx, c.cc, fullMethod(bookingServiceName, "ListAppointments"), in, opts)
}

// CatalogClient calls slotwise.v1.CatalogService using the JSON codec.
type CatalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) *CatalogClient {
	return &CatalogClient{cc: cc}
}

func (c *CatalogClient) CreateService(ctx context.Context, in *CreateServiceRequest, opts ...grpc.CallOption) (*CreateServiceResponse, error) {
	return invoke[CreateServiceRequest, CreateServiceResponse](ctx, c.cc, fullMethod(catalogServiceName, "CreateService"), in, opts)
}

func (c *CatalogClient) ListServices(ctx context.Context, in *ListServicesRequest, opts ...grpc.CallOption) (*ListServicesResponse, error) {
	return invoke[ListServicesRequest, ListServicesResponse](ctx, c.cc, fullMethod(catalogServiceName, "ListServices"), in, opts)
}

func (c *CatalogClient) UpdateService(ctx context.Context, in *UpdateServiceRequest, opts ...grpc.CallOption) (*UpdateServiceResponse, error) {
	return invoke[UpdateServiceRequest, UpdateServiceResponse](ctx, c.cc, fullMethod(catalogServiceName, "UpdateService"), in, opts)
}

func (c *CatalogClient) GetBusinessHours(ctx context.Context, in *GetBusinessHoursRequest, opts ...grpc.CallOption) (*GetBusinessHoursResponse, error) {
	return invoke[GetBusinessHoursRequest, GetBusinessHoursResponse](ctx, c.cc, fullMethod(catalogServiceName, "GetBusinessHours"), in, opts)
}

func (c *CatalogClient) UpdateBusinessHours(ctx context.Context, in *UpdateBusinessHoursRequest, opts ...grpc.CallOption) (*UpdateBusinessHoursResponse, error) {
	return invoke[UpdateBusinessHoursRequest, UpdateBusinessHoursResponse](ctx, c.cc, fullMethod(catalogServiceName, "UpdateBusinessHours"), in, opts)
}
