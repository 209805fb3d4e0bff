package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fcandiani/be-deel/models"
)

// ProfileCache кэширует разрешённые профили в Redis, чтобы не ходить в
// БД на каждый запрос. Баланс в кэше может устареть - движки всегда
// перечитывают его под блокировкой, поэтому на деньги это не влияет.
// При nil-клиенте (Redis не настроен) кэш прозрачно отключён.
type ProfileCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *redis.Client) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: 60 * time.Second}
}

func profileKey(profileID uint) string {
	return fmt.Sprintf("profile:%d", profileID)
}

// Get возвращает профиль из кэша, если он там есть.
func (c *ProfileCache) Get(ctx context.Context, profileID uint) (*models.Profile, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, profileKey(profileID)).Bytes()
	if err != nil {
		return nil, false
	}
	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false
	}
	return &profile, true
}

// Set сохраняет профиль с коротким TTL.
func (c *ProfileCache) Set(ctx context.Context, profile *models.Profile) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, profileKey(profile.ID), data, c.ttl).Err(); err != nil {
		slog.Warn("Не удалось записать профиль в кэш", "profile_id", profile.ID, "error", err)
	}
}

// Invalidate сбрасывает кэш профилей после изменения их балансов.
func (c *ProfileCache) Invalidate(ctx context.Context, profileIDs ...uint) {
	if c == nil || c.rdb == nil || len(profileIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(profileIDs))
	for _, id := range profileIDs {
		keys = append(keys, profileKey(id))
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("Не удалось сбросить кэш профилей", "error", err)
	}
}
