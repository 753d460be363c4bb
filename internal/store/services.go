package store

import (
	"context"

	"github.com/google/uuid"

	"slotwise/backend/internal/domain"
)

type ServiceRepository interface {
	CreateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	GetService(ctx context.Context, tenantID string, serviceID uuid.UUID) (domain.Service, error)
	ListServices(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Service, error)
}
