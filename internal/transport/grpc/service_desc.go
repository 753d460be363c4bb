package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	bookingServiceName = "slotwise.v1.BookingService"
	catalogServiceName = "slotwise.v1.CatalogService"
)

type BookingServiceServer interface {
	ListAvailableSlots(context.Context, *ListAvailableSlotsRequest) (*ListAvailableSlotsResponse, error)
	BookAppointment(context.Context, *BookAppointmentRequest) (*BookAppointmentResponse, error)
	RescheduleAppointment(context.Context, *RescheduleAppointmentRequest) (*RescheduleAppointmentResponse, error)
	CancelAppointment(context.Context, *CancelAppointmentRequest) (*CancelAppointmentResponse, error)
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
}

type CatalogServiceServer interface {
	CreateService(context.Context, *CreateServiceRequest) (*CreateServiceResponse, error)
	ListServices(context.Context, *ListServicesRequest) (*ListServicesResponse, error)
	UpdateService(context.Context, *UpdateServiceRequest) (*UpdateServiceResponse, error)
	GetBusinessHours(context.Context, *GetBusinessHoursRequest) (*GetBusinessHoursResponse, error)
	UpdateBusinessHours(context.Context, *UpdateBusinessHoursRequest) (*UpdateBusinessHoursResponse, error)
}

func fullMethod(service, method string) string {
	return "/" + service + "/" + method
}

// unary adapts a typed method to a grpc method handler, running the server's
// interceptor chain when one is installed.
func unary[S, Req, Resp any](method string, call func(S, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(S), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(S), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var bookingServiceDesc = grpc.ServiceDesc{
	ServiceName: bookingServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListAvailableSlots", Handler: unary(fullMethod(bookingServiceName, "ListAvailableSlots"), BookingServiceServer.ListAvailableSlots)},
		{MethodName: "BookAppointment", Handler: unary(fullMethod(bookingServiceName, "BookAppointment"), BookingServiceServer.BookAppointment)},
		{MethodName: "RescheduleAppointment", Handler: unary(fullMethod(bookingServiceName, "RescheduleAppointment"), BookingServiceServer.RescheduleAppointment)},
		{MethodName: "CancelAppointment", Handler: unary(fullMethod(bookingServiceName, "CancelAppointment"), BookingServiceServer.CancelAppointment)},
		{MethodName: "ListAppointments", Handler: unary(fullMethod(bookingServiceName, "ListAppointments"), BookingServiceServer.ListAppointments)},
	},
	Metadata: "slotwise/v1/booking.proto",
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: catalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateService", Handler: unary(fullMethod(catalogServiceName, "CreateService"), CatalogServiceServer.CreateService)},
		{MethodName: "ListServices", Handler: unary(fullMethod(catalogServiceName, "ListServices"), CatalogServiceServer.ListServices)},
		{MethodName: "UpdateService", Handler: unary(fullMethod(catalogServiceName, "UpdateService"), CatalogServiceServer.UpdateService)},
		{MethodName: "GetBusinessHours", Handler: unary(fullMethod(catalogServiceName, "GetBusinessHours"), CatalogServiceServer.GetBusinessHours)},
		{MethodName: "UpdateBusinessHours", Handler: unary(fullMethod(catalogServiceName, "UpdateBusinessHours"), CatalogServiceServer.UpdateBusinessHours)},
	},
	Metadata: "slotwise/v1/catalog.proto",
}

func RegisterBookingServiceServer(s grpc.ServiceRegistrar, srv BookingServiceServer) {
	s.RegisterService(&bookingServiceDesc, srv)
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&catalogServiceDesc, srv)
}
