package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/service/booking"
	"slotwise/backend/internal/service/catalog"
	"slotwise/backend/internal/store"
)

func startTestServer(t *testing.T, bookingSvc bookingService, catalogSvc catalogService, opts ...grpc.ServerOption) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(opts...)
	RegisterBookingServiceServer(srv, NewBookingServer(bookingSvc, quietLogger()))
	RegisterCatalogServiceServer(srv, NewCatalogServer(catalogSvc, quietLogger()))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRoundTrip_BookingOverJSONCodec(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	var gotKey string
	bookingSvc := &fakeBookingService{
		availableSlotsFn: func(ctx context.Context, in booking.AvailabilityInput) (booking.Availability, error) {
			return booking.Availability{
				Date:     in.Date,
				TimeZone: "UTC",
				Mode:     availability.ModeCreating,
				Slots:    []availability.TimeSlot{{Hour: 9, Minute: 30}},
			}, nil
		},
		bookFn: func(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
			gotKey = in.IdempotencyKey
			return domain.Appointment{
				ID:           uuid.MustParse("00000000-0000-0000-0000-000000000201"),
				TenantID:     in.TenantID,
				ServiceID:    in.ServiceID,
				CustomerName: in.CustomerName,
				StartTime:    start,
				Status:       domain.AppointmentStatusBooked,
				Service:      &domain.Service{Name: "Haircut", DurationMinutes: 30},
			}, nil
		},
	}
	conn := startTestServer(t, bookingSvc, &fakeCatalogService{})
	client := NewBookingClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	slots, err := client.ListAvailableSlots(ctx, &ListAvailableSlotsRequest{TenantId: "t1", ServiceId: testServiceID, Date: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30"}, slots.Slots)
	assert.Equal(t, "creating", slots.Mode)

	ctx = metadata.AppendToOutgoingContext(ctx, "idempotency-key", "k-42")
	resp, err := client.BookAppointment(ctx, &BookAppointmentRequest{
		TenantId:     "t1",
		ServiceId:    testServiceID,
		Date:         "2026-03-10",
		Slot:         "09:30",
		CustomerName: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, "k-42", gotKey)
	assert.Equal(t, "Ana", resp.Appointment.CustomerName)
	assert.True(t, resp.Appointment.StartTime.AsTime().Equal(start))
	assert.True(t, resp.Appointment.EndTime.AsTime().Equal(start.Add(30*time.Minute)))
}

func TestRoundTrip_StatusCodesSurvive(t *testing.T) {
	bookingSvc := &fakeBookingService{
		bookFn: func(ctx context.Context, in booking.BookInput) (domain.Appointment, error) {
			return domain.Appointment{}, store.ErrSlotConflict
		},
	}
	conn := startTestServer(t, bookingSvc, &fakeCatalogService{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewBookingClient(conn).BookAppointment(ctx, &BookAppointmentRequest{TenantId: "t1", ServiceId: testServiceID})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, msgSlotConflict, st.Message())
}

func TestRoundTrip_CatalogWithInterceptor(t *testing.T) {
	var methods []string
	interceptor := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		methods = append(methods, info.FullMethod)
		return handler(ctx, req)
	}
	catalogSvc := &fakeCatalogService{
		listFn: func(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Service, error) {
			if !includeInactive {
				t.Errorf("includeInactive = false, want true")
			}
			return []domain.Service{{ID: uuid.MustParse(testServiceID), TenantID: tenantID, Name: "Haircut", DurationMinutes: 30, Active: true}}, nil
		},
	}
	conn := startTestServer(t, &fakeBookingService{}, catalogSvc, grpc.UnaryInterceptor(interceptor))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := NewCatalogClient(conn).ListServices(ctx, &ListServicesRequest{TenantId: "t1", IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Haircut", resp.Services[0].Name)
	assert.Equal(t, []string{"/slotwise.v1.CatalogService/ListServices"}, methods)
}

func TestRoundTrip_CatalogValidation(t *testing.T) {
	conn := startTestServer(t, &fakeBookingService{}, catalog.NewService(nil, nil, domain.DefaultSettings()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := NewCatalogClient(conn).CreateService(ctx, &CreateServiceRequest{TenantId: "t1"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}
