package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"wisefido-tremor/internal/config"
	"wisefido-tremor/internal/models"
	rediscommon "wisefido-tremor/internal/redis"
)

// CacheManager Redis 缓存管理器
//
// 每个 tick 把实时快照写入前端消费的缓存键，并追加到
// tremor:data:stream 供下游服务（持久化、告警）消费。
type CacheManager struct {
	config      *config.Config
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewCacheManager 创建缓存管理器
func NewCacheManager(
	cfg *config.Config,
	redisClient *redis.Client,
	logger *zap.Logger,
) *CacheManager {
	return &CacheManager{
		config:      cfg,
		redisClient: redisClient,
		logger:      logger,
	}
}

// realtimeKey 构建实时数据缓存键
// 格式: vital-focus:monitor:{device_id}:realtime
func (c *CacheManager) realtimeKey(deviceID string) string {
	return fmt.Sprintf("%s%s%s",
		c.config.Tremor.Cache.RealtimeKeyPrefix,
		deviceID,
		c.config.Tremor.Cache.RealtimeSuffix,
	)
}

// PublishSnapshot 发布实时快照
func (c *CacheManager) PublishSnapshot(ctx context.Context, snapshot *models.RealtimeSnapshot) error {
	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	key := c.realtimeKey(snapshot.DeviceID)
	if err := c.redisClient.Set(ctx, key, jsonData, c.config.Tremor.Cache.RealtimeTTL).Err(); err != nil {
		return fmt.Errorf("failed to set realtime cache: %w", err)
	}

	// Stream 追加失败不影响实时缓存，记录后继续
	if _, err := rediscommon.PublishJSONToStream(ctx, c.redisClient, c.config.Tremor.Cache.Stream, snapshot); err != nil {
		c.logger.Error("Failed to publish snapshot to stream",
			zap.String("stream", c.config.Tremor.Cache.Stream),
			zap.Error(err),
		)
	}

	return nil
}

// GetSnapshot 从 Redis 读取设备的最新快照
func (c *CacheManager) GetSnapshot(ctx context.Context, deviceID string) (*models.RealtimeSnapshot, error) {
	val, err := c.redisClient.Get(ctx, c.realtimeKey(deviceID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("realtime data not found for device: %s", deviceID)
		}
		return nil, fmt.Errorf("failed to get realtime cache: %w", err)
	}

	var snapshot models.RealtimeSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snapshot, nil
}
