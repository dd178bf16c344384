package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/praveen001/trailmap/internal/config"
)

const cacheTTL = 5 * time.Minute

// Cache holds resolved access levels in redis so repeated requests against
// the same roadmap skip the three resolution queries. Entries are dropped on
// assignment changes and roadmap deletion.
type Cache struct {
	rdb *redis.Client
}

// NewCache connects to redis when REDIS_HOST is configured, and returns nil
// otherwise. A nil *Cache is a valid no-op cache.
func NewCache(conf *config.Config) *Cache {
	if conf.REDIS_HOST == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", conf.REDIS_HOST, conf.REDIS_PORT),
		Password: conf.REDIS_PASSWORD,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Warn("Failed to connect to redis, access-level cache disabled", slog.Any("error", err))
		return nil
	}

	slog.Info("Connected to redis for access-level cache")
	return &Cache{rdb: rdb}
}

func cacheKey(roadmapID, userID uuid.UUID) string {
	return fmt.Sprintf("access:%s:%s", roadmapID, userID)
}

func (c *Cache) Get(ctx context.Context, roadmapID, userID uuid.UUID) (Level, bool) {
	if c == nil {
		return LevelNone, false
	}

	val, err := c.rdb.Get(ctx, cacheKey(roadmapID, userID)).Result()
	if err != nil {
		return LevelNone, false
	}

	return Level(val), true
}

func (c *Cache) Set(ctx context.Context, roadmapID, userID uuid.UUID, level Level) {
	if c == nil {
		return
	}

	if err := c.rdb.Set(ctx, cacheKey(roadmapID, userID), string(level), cacheTTL).Err(); err != nil {
		slog.Warn("Failed to cache access level", slog.Any("error", err))
	}
}

// Invalidate drops the cached level for a single (roadmap, user) pair.
func (c *Cache) Invalidate(ctx context.Context, roadmapID, userID uuid.UUID) {
	if c == nil {
		return
	}

	if err := c.rdb.Del(ctx, cacheKey(roadmapID, userID)).Err(); err != nil {
		slog.Warn("Failed to invalidate access level", slog.Any("error", err))
	}
}

// InvalidateAll drops every cached level, used after the notification
// listener reconnects and may have missed changes.
func (c *Cache) InvalidateAll(ctx context.Context) {
	if c == nil {
		return
	}

	iter := c.rdb.Scan(ctx, 0, "access:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("Failed to invalidate access level", slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Failed to scan access-level keys", slog.Any("error", err))
	}
}

// InvalidateRoadmap drops every cached level for a roadmap.
func (c *Cache) InvalidateRoadmap(ctx context.Context, roadmapID uuid.UUID) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("access:%s:*", roadmapID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("Failed to invalidate access level", slog.Any("error", err))
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("Failed to scan access-level keys", slog.Any("error", err))
	}
}
