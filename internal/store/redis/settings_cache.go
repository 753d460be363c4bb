package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"slotwise/backend/internal/domain"
	"slotwise/backend/internal/store"
)

const settingsKeyPrefix = "slotwise:settings:"

type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and pings it once.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

type keyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// SettingsCache is a read-through cache in front of a SettingsRepository.
// Redis failures are logged and the backing repository answers instead.
type SettingsCache struct {
	inner  store.SettingsRepository
	client keyValue
	ttl    time.Duration
	log    *slog.Logger
}

var _ store.SettingsRepository = (*SettingsCache)(nil)

func NewSettingsCache(inner store.SettingsRepository, client *redis.Client, ttl time.Duration, log *slog.Logger) *SettingsCache {
	return newSettingsCache(inner, client, ttl, log)
}

func newSettingsCache(inner store.SettingsRepository, client keyValue, ttl time.Duration, log *slog.Logger) *SettingsCache {
	if log == nil {
		log = slog.Default()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SettingsCache{inner: inner, client: client, ttl: ttl, log: log}
}

func settingsKey(tenantID string) string {
	return settingsKeyPrefix + tenantID
}

func (c *SettingsCache) GetSettings(ctx context.Context, tenantID string) (domain.BusinessSettings, error) {
	key := settingsKey(tenantID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var s domain.BusinessSettings
		jsonErr := json.Unmarshal(raw, &s)
		if jsonErr == nil {
			return s, nil
		}
		c.log.WarnContext(ctx, "settings cache entry unreadable", "tenant_id", tenantID, "err", jsonErr)
	case errors.Is(err, redis.Nil):
	default:
		c.log.WarnContext(ctx, "settings cache read failed", "tenant_id", tenantID, "err", err)
	}

	s, err := c.inner.GetSettings(ctx, tenantID)
	if err != nil {
		return domain.BusinessSettings{}, err
	}

	raw, err = json.Marshal(s)
	if err == nil {
		err = c.client.Set(ctx, key, raw, c.ttl).Err()
	}
	if err != nil {
		c.log.WarnContext(ctx, "settings cache fill failed", "tenant_id", tenantID, "err", err)
	}
	return s, nil
}

// PutSettings writes through to the backing repository and drops the cached
// entry so the next read sees the stored row.
func (c *SettingsCache) PutSettings(ctx context.Context, settings domain.BusinessSettings) (domain.BusinessSettings, error) {
	saved, err := c.inner.PutSettings(ctx, settings)
	if err != nil {
		return domain.BusinessSettings{}, err
	}
	if err := c.client.Del(ctx, settingsKey(settings.TenantID)).Err(); err != nil {
		c.log.WarnContext(ctx, "settings cache invalidate failed", "tenant_id", settings.TenantID, "err", err)
	}
	return saved, nil
}
