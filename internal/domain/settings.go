package domain

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"slotwise/backend/internal/availability"
)

// BusinessSettings holds a tenant's opening hours and time zone.
type BusinessSettings struct {
	bun.BaseModel `bun:"table:business_settings"`

	TenantID    string    `bun:"tenant_id,pk" json:"tenant_id"`
	OpenHour    int       `bun:"open_hour,notnull" json:"open_hour"`
	CloseHour   int       `bun:"close_hour,notnull" json:"close_hour"`
	StepMinutes int       `bun:"step_minutes,notnull" json:"step_minutes"`
	TimeZone    string    `bun:"time_zone,notnull" json:"time_zone"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// DefaultSettings returns the built-in business hours in UTC.
func DefaultSettings() BusinessSettings {
	h := availability.DefaultBusinessHours
	return BusinessSettings{
		OpenHour:    h.OpenHour,
		CloseHour:   h.CloseHour,
		StepMinutes: h.StepMinutes,
		TimeZone:    "UTC",
	}
}

func (s BusinessSettings) Hours() availability.BusinessHours {
	return availability.BusinessHours{
		OpenHour:    s.OpenHour,
		CloseHour:   s.CloseHour,
		StepMinutes: s.StepMinutes,
	}
}

// Location resolves TimeZone, falling back to UTC for an empty or unknown zone.
func (s BusinessSettings) Location() *time.Location {
	if s.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s *BusinessSettings) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = now
		}
	case *bun.UpdateQuery:
		s.UpdatedAt = now
	}
	return nil
}
