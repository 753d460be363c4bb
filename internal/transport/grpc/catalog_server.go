package grpc

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/timestamppb"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/service/catalog"
)

type CatalogServer struct {
	svc catalogService
	log *slog.Logger
}

var _ CatalogServiceServer = (*CatalogServer)(nil)

type catalogService interface {
	CreateService(ctx context.Context, in catalog.CreateServiceInput) (domain.Service, error)
	ListServices(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Service, error)
	UpdateService(ctx context.Context, in catalog.UpdateServiceInput) (domain.Service, error)
	BusinessHours(ctx context.Context, tenantID string) (domain.BusinessSettings, error)
	UpdateBusinessHours(ctx context.Context, in catalog.UpdateBusinessHoursInput) (domain.BusinessSettings, error)
}

func NewCatalogServer(svc catalogService, log *slog.Logger) *CatalogServer {
	if log == nil {
		log = slog.Default()
	}
	return &CatalogServer{
		svc: svc,
		log: log.With(slog.String("component", "grpc.catalog")),
	}
}

func (s *CatalogServer) CreateService(ctx context.Context, req *CreateServiceRequest) (*CreateServiceResponse, error) {
	log := s.log.With(slog.String("rpc", "CreateService"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}

	svc, err := s.svc.CreateService(ctx, catalog.CreateServiceInput{
		TenantID:        req.TenantId,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: int(req.DurationMinutes),
		PriceCents:      req.PriceCents,
	})
	if err != nil {
		return nil, statusError(log, "service create", "service not found", err, slog.String("tenant_id", req.TenantId))
	}

	log.Info("service created", slog.String("service_id", svc.ID.String()), slog.String("tenant_id", svc.TenantID))
	return &CreateServiceResponse{Service: toWireService(svc)}, nil
}

func (s *CatalogServer) ListServices(ctx context.Context, req *ListServicesRequest) (*ListServicesResponse, error) {
	log := s.log.With(slog.String("rpc", "ListServices"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}

	svcs, err := s.svc.ListServices(ctx, req.TenantId, req.IncludeInactive)
	if err != nil {
		return nil, statusError(log, "services list", "not found", err, slog.String("tenant_id", req.TenantId))
	}

	out := make([]*Service, 0, len(svcs))
	for _, svc := range svcs {
		out = append(out, toWireService(svc))
	}

	log.Debug("services listed", slog.String("tenant_id", req.TenantId), slog.Int("count", len(out)))
	return &ListServicesResponse{Services: out}, nil
}

func (s *CatalogServer) UpdateService(ctx context.Context, req *UpdateServiceRequest) (*UpdateServiceResponse, error) {
	log := s.log.With(slog.String("rpc", "UpdateService"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}
	id, err := uuid.Parse(req.ServiceId)
	if err != nil {
		return nil, invalidArgument(log, "invalid_uuid", "service_id must be a UUID", slog.String("tenant_id", req.TenantId))
	}

	in := catalog.UpdateServiceInput{
		TenantID:    req.TenantId,
		ServiceID:   id,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Active:      req.Active,
	}
	if req.DurationMinutes != nil {
		d := int(*req.DurationMinutes)
		in.DurationMinutes = &d
	}

	svc, err := s.svc.UpdateService(ctx, in)
	if err != nil {
		return nil, statusError(log, "service update", "service not found", err,
			slog.String("tenant_id", req.TenantId),
			slog.String("service_id", req.ServiceId),
		)
	}

	log.Info("service updated", slog.String("service_id", svc.ID.String()), slog.String("tenant_id", svc.TenantID))
	return &UpdateServiceResponse{Service: toWireService(svc)}, nil
}

func (s *CatalogServer) GetBusinessHours(ctx context.Context, req *GetBusinessHoursRequest) (*GetBusinessHoursResponse, error) {
	log := s.log.With(slog.String("rpc", "GetBusinessHours"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}

	settings, err := s.svc.BusinessHours(ctx, req.TenantId)
	if err != nil {
		return nil, statusError(log, "business hours get", "not found", err, slog.String("tenant_id", req.TenantId))
	}

	log.Debug("business hours read", slog.String("tenant_id", req.TenantId))
	return &GetBusinessHoursResponse{BusinessHours: toWireBusinessHours(settings)}, nil
}

func (s *CatalogServer) UpdateBusinessHours(ctx context.Context, req *UpdateBusinessHoursRequest) (*UpdateBusinessHoursResponse, error) {
	log := s.log.With(slog.String("rpc", "UpdateBusinessHours"))

	if req == nil {
		return nil, invalidArgument(log, "nil_request", "request is required")
	}

	settings, err := s.svc.UpdateBusinessHours(ctx, catalog.UpdateBusinessHoursInput{
		TenantID:    req.TenantId,
		OpenHour:    int(req.OpenHour),
		CloseHour:   int(req.CloseHour),
		StepMinutes: int(req.StepMinutes),
		TimeZone:    req.TimeZone,
	})
	if err != nil {
		return nil, statusError(log, "business hours update", "not found", err, slog.String("tenant_id", req.TenantId))
	}

	log.Info(
		"business hours updated",
		slog.String("tenant_id", settings.TenantID),
		slog.Int("open_hour", settings.OpenHour),
		slog.Int("close_hour", settings.CloseHour),
		slog.Int("step_minutes", settings.StepMinutes),
		slog.String("time_zone", settings.TimeZone),
	)
	return &UpdateBusinessHoursResponse{BusinessHours: toWireBusinessHours(settings)}, nil
}

func toWireService(s domain.Service) *Service {
	return &Service{
		Id:              s.ID.String(),
		TenantId:        s.TenantID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: int32(s.DurationMinutes),
		PriceCents:      s.PriceCents,
		Active:          s.Active,
		CreatedAt:       timestamppb.New(s.CreatedAt),
		UpdatedAt:       timestamppb.New(s.UpdatedAt),
	}
}

func toWireBusinessHours(s domain.BusinessSettings) *BusinessHours {
	return &BusinessHours{
		TenantId:    s.TenantID,
		OpenHour:    int32(s.OpenHour),
		CloseHour:   int32(s.CloseHour),
		StepMinutes: int32(s.StepMinutes),
		TimeZone:    s.Location().String(),
		Slots:       availability.FormatSlots(availability.GenerateTimeSlots(s.Hours())),
	}
}
