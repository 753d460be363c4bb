package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"slotwise/backend/internal/availability"
	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/store"
)

const (
	maxNameLen        = 120
	maxDescriptionLen = 2000
	maxDurationMin    = 24 * 60
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

// Service manages a tenant's offered services and business hours.
type Service struct {
	services store.ServiceRepository
	settings store.SettingsRepository
	defaults domain.BusinessSettings
}

func NewService(services store.ServiceRepository, settings store.SettingsRepository, defaults domain.BusinessSettings) *Service {
	return &Service{services: services, settings: settings, defaults: defaults}
}

type CreateServiceInput struct {
	TenantID        string
	Name            string
	Description     string
	DurationMinutes int
	PriceCents      int64
}

func (s *Service) CreateService(ctx context.Context, in CreateServiceInput) (domain.Service, error) {
	if in.TenantID == "" {
		return domain.Service{}, validationError("tenant_id is required")
	}
	name, err := validateName(in.Name)
	if err != nil {
		return domain.Service{}, err
	}
	if err := validateDetails(in.Description, in.DurationMinutes, in.PriceCents); err != nil {
		return domain.Service{}, err
	}

	return s.services.CreateService(ctx, domain.Service{
		TenantID:        in.TenantID,
		Name:            name,
		Description:     strings.TrimSpace(in.Description),
		DurationMinutes: in.DurationMinutes,
		PriceCents:      in.PriceCents,
		Active:          true,
	})
}

func (s *Service) ListServices(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Service, error) {
	if tenantID == "" {
		return nil, validationError("tenant_id is required")
	}
	return s.services.ListServices(ctx, tenantID, includeInactive)
}

// UpdateServiceInput changes only the fields that are non-nil.
type UpdateServiceInput struct {
	TenantID        string
	ServiceID       uuid.UUID
	Name            *string
	Description     *string
	DurationMinutes *int
	PriceCents      *int64
	Active          *bool
}

// UpdateService edits a service. A new duration applies to existing
// appointments too, since their end is derived from it.
func (s *Service) UpdateService(ctx context.Context, in UpdateServiceInput) (domain.Service, error) {
	if in.TenantID == "" {
		return domain.Service{}, validationError("tenant_id is required")
	}
	if in.ServiceID == uuid.Nil {
		return domain.Service{}, validationError("service_id is required")
	}

	svc, err := s.services.GetService(ctx, in.TenantID, in.ServiceID)
	if err != nil {
		return domain.Service{}, err
	}

	if in.Name != nil {
		name, err := validateName(*in.Name)
		if err != nil {
			return domain.Service{}, err
		}
		svc.Name = name
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMinutes != nil {
		svc.DurationMinutes = *in.DurationMinutes
	}
	if in.PriceCents != nil {
		svc.PriceCents = *in.PriceCents
	}
	if in.Active != nil {
		svc.Active = *in.Active
	}
	if err := validateDetails(svc.Description, svc.DurationMinutes, svc.PriceCents); err != nil {
		return domain.Service{}, err
	}

	return s.services.UpdateService(ctx, svc)
}

// BusinessHours returns the tenant's saved settings or the defaults.
func (s *Service) BusinessHours(ctx context.Context, tenantID string) (domain.BusinessSettings, error) {
	if tenantID == "" {
		return domain.BusinessSettings{}, validationError("tenant_id is required")
	}
	return store.SettingsOrDefault(ctx, s.settings, tenantID, s.defaults)
}

type UpdateBusinessHoursInput struct {
	TenantID    string
	OpenHour    int
	CloseHour   int
	StepMinutes int
	TimeZone    string
}

func (s *Service) UpdateBusinessHours(ctx context.Context, in UpdateBusinessHoursInput) (domain.BusinessSettings, error) {
	if in.TenantID == "" {
		return domain.BusinessSettings{}, validationError("tenant_id is required")
	}
	hours := availability.BusinessHours{OpenHour: in.OpenHour, CloseHour: in.CloseHour, StepMinutes: in.StepMinutes}
	if err := hours.Validate(); err != nil {
		return domain.BusinessSettings{}, validationError(err.Error())
	}

	tz := strings.TrimSpace(in.TimeZone)
	if tz == "" {
		tz = "UTC"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return domain.BusinessSettings{}, validationError("invalid time_zone")
	}

	return s.settings.PutSettings(ctx, domain.BusinessSettings{
		TenantID:    in.TenantID,
		OpenHour:    hours.OpenHour,
		CloseHour:   hours.CloseHour,
		StepMinutes: hours.StepMinutes,
		TimeZone:    tz,
	})
}

func validateName(v string) (string, error) {
	name := strings.TrimSpace(v)
	if name == "" {
		return "", validationError("name is required")
	}
	if len(name) > maxNameLen {
		return "", validationError("name too long")
	}
	return name, nil
}

func validateDetails(description string, durationMinutes int, priceCents int64) error {
	if len(description) > maxDescriptionLen {
		return validationError("description too long")
	}
	if durationMinutes <= 0 {
		return validationError("duration_minutes must be positive")
	}
	if durationMinutes > maxDurationMin {
		return validationError("duration_minutes too long")
	}
	if priceCents < 0 {
		return validationError("price_cents must not be negative")
	}
	return nil
}
