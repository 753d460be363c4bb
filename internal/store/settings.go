package store

import (
	"context"
	"errors"

	"slotwise/backend/internal/domain"
)

// SettingsRepository stores per-tenant business settings. Get returns
// ErrNotFound when the tenant never saved any.
type SettingsRepository interface {
	GetSettings(ctx context.Context, tenantID string) (domain.BusinessSettings, error)
	PutSettings(ctx context.Context, settings domain.BusinessSettings) (domain.BusinessSettings, error)
}

// SettingsOrDefault returns the tenant's stored settings, or fallback bound to
// tenantID when none were saved.
func SettingsOrDefault(ctx context.Context, repo SettingsRepository, tenantID string, fallback domain.BusinessSettings) (domain.BusinessSettings, error) {
	s, err := repo.GetSettings(ctx, tenantID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return domain.BusinessSettings{}, err
	}
	fallback.TenantID = tenantID
	return fallback, nil
}
