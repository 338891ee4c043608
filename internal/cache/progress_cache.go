package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"qa-checklist-api/internal/dto"
)

const progressCacheTTL = 5 * time.Minute

// RedisProgressCache stores computed project progress in redis with a
// short TTL. All failures are logged and swallowed; a cache miss is the
// worst outcome.
type RedisProgressCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisProgressCache creates a progress cache backed by the given
// redis client
func NewRedisProgressCache(client *redis.Client, logger *zap.Logger) *RedisProgressCache {
	return &RedisProgressCache{client: client, logger: logger}
}

func progressKey(projectID uuid.UUID) string {
	return "qa:progress:" + projectID.String()
}

// Get returns the cached progress for a project, if present
func (c *RedisProgressCache) Get(ctx context.Context, projectID uuid.UUID) (*dto.ProgressResponse, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, progressKey(projectID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read progress cache",
				zap.String("project_id", projectID.String()),
				zap.Error(err))
		}
		return nil, false
	}

	var progress dto.ProgressResponse
	if err := json.Unmarshal(data, &progress); err != nil {
		c.logger.Warn("Failed to decode cached progress",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return nil, false
	}
	return &progress, true
}

// Set stores the progress for a project
func (c *RedisProgressCache) Set(ctx context.Context, projectID uuid.UUID, progress *dto.ProgressResponse) {
	if c.client == nil || progress == nil {
		return
	}

	data, err := json.Marshal(progress)
	if err != nil {
		c.logger.Warn("Failed to encode progress for cache",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, progressKey(projectID), data, progressCacheTTL).Err(); err != nil {
		c.logger.Warn("Failed to write progress cache",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
	}
}

// Invalidate drops the cached progress for a project. Called after any
// write that can change result counts.
func (c *RedisProgressCache) Invalidate(ctx context.Context, projectID uuid.UUID) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, progressKey(projectID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate progress cache",
			zap.String("project_id", projectID.String()),
			zap.Error(err))
	}
}
