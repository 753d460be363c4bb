package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/store"
)

type ServiceRepo struct {
	db *bun.DB
}

func NewServiceRepo(db *bun.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) CreateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	m := svc
	if _, err := r.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return domain.Service{}, err
	}
	return m, nil
}

func (r *ServiceRepo) UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error) {
	m := svc
	res, err := r.db.NewUpdate().
		Model(&m).
		Column("name", "description", "duration_minutes", "price_cents", "active", "updated_at").
		Where("s.tenant_id = ?", svc.TenantID).
		WherePK().
		Exec(ctx)
	if err != nil {
		return domain.Service{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Service{}, err
	}
	if affected == 0 {
		return domain.Service{}, store.ErrNotFound
	}
	return r.GetService(ctx, svc.TenantID, svc.ID)
}

func (r *ServiceRepo) GetService(ctx context.Context, tenantID string, serviceID uuid.UUID) (domain.Service, error) {
	var svc domain.Service
	err := r.db.NewSelect().
		Model(&svc).
		Where("s.tenant_id = ?", tenantID).
		Where("s.id = ?", serviceID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Service{}, store.ErrNotFound
		}
		return domain.Service{}, err
	}
	return svc, nil
}

func (r *ServiceRepo) ListServices(ctx context.Context, tenantID string, includeInactive bool) ([]domain.Service, error) {
	var rows []domain.Service
	q := r.db.NewSelect().
		Model(&rows).
		Where("s.tenant_id = ?", tenantID)
	if !includeInactive {
		q = q.Where("s.active = TRUE")
	}
	if err := q.OrderExpr("s.name ASC, s.id ASC").Scan(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}
