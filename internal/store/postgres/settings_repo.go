package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/store"
)

type SettingsRepo struct {
	db *bun.DB
}

func NewSettingsRepo(db *bun.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

func (r *SettingsRepo) GetSettings(ctx context.Context, tenantID string) (domain.BusinessSettings, error) {
	var s domain.BusinessSettings
	err := r.db.NewSelect().
		Model(&s).
		Where("tenant_id = ?", tenantID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BusinessSettings{}, store.ErrNotFound
		}
		return domain.BusinessSettings{}, err
	}
	return s, nil
}

func (r *SettingsRepo) PutSettings(ctx context.Context, settings domain.BusinessSettings) (domain.BusinessSettings, error) {
	m := settings
	err := r.db.NewInsert().
		Model(&m).
		On("CONFLICT (tenant_id) DO UPDATE").
		Set("open_hour = EXCLUDED.open_hour").
		Set("close_hour = EXCLUDED.close_hour").
		Set("step_minutes = EXCLUDED.step_minutes").
		Set("time_zone = EXCLUDED.time_zone").
		Set("updated_at = EXCLUDED.updated_at").
		Returning("*").
		Scan(ctx)
	if err != nil {
		return domain.BusinessSettings{}, err
	}
	return m, nil
}
