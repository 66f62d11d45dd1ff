package publisher

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wisefido-tremor/internal/config"
	"wisefido-tremor/internal/models"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client, *CacheManager) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cfg := &config.Config{}
	cfg.Tremor.Cache.RealtimeKeyPrefix = "vital-focus:monitor:"
	cfg.Tremor.Cache.RealtimeSuffix = ":realtime"
	cfg.Tremor.Cache.RealtimeTTL = 30 * time.Second
	cfg.Tremor.Cache.Stream = "tremor:data:stream"

	logger := zap.NewNop()
	cacheManager := NewCacheManager(cfg, redisClient, logger)

	return mr, redisClient, cacheManager
}

func testSnapshot() *models.RealtimeSnapshot {
	return &models.RealtimeSnapshot{
		DeviceID:  "device-123",
		SessionID: "session-abc",
		Timestamp: 1700000000000,
		Sample: models.Sample{
			Timestamp:     1700000000000,
			Accelerometer: models.Vector3{X: 1.2, Y: 0.8, Z: 0.1},
			Gyroscope:     models.Vector3{X: 12.0, Y: 0.3, Z: 9.5},
			EMG:           42.5,
			ECG:           75.1,
		},
		Tremor: models.TremorAnalysis{
			Severity:   models.SeverityModerate,
			Frequency:  7.3,
			Confidence: 46.7,
		},
		Predictions: models.Predictions{
			Tremor:              40,
			Bradykinesia:        25,
			Gait:                30,
			PosturalInstability: 35,
		},
		MedicalStatus:  models.DefaultMedicalStatus(),
		Recommendation: "Moderate tremor detected. Sit down and practice deep breathing.",
	}
}

func TestCacheManager_PublishSnapshot_WritesRealtimeKey(t *testing.T) {
	_, redisClient, cacheManager := setupTestRedis(t)

	snapshot := testSnapshot()
	err := cacheManager.PublishSnapshot(context.Background(), snapshot)
	require.NoError(t, err)

	// 实时缓存键
	val, err := redisClient.Get(context.Background(), "vital-focus:monitor:device-123:realtime").Result()
	require.NoError(t, err)

	var stored models.RealtimeSnapshot
	require.NoError(t, json.Unmarshal([]byte(val), &stored))
	assert.Equal(t, *snapshot, stored)
}

func TestCacheManager_PublishSnapshot_AppendsToStream(t *testing.T) {
	_, redisClient, cacheManager := setupTestRedis(t)

	ctx := context.Background()
	require.NoError(t, cacheManager.PublishSnapshot(ctx, testSnapshot()))
	require.NoError(t, cacheManager.PublishSnapshot(ctx, testSnapshot()))

	length, err := redisClient.XLen(ctx, "tremor:data:stream").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), length)

	// Stream 消息携带快照 JSON
	messages, err := redisClient.XRange(ctx, "tremor:data:stream", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, messages, 2)

	data, ok := messages[0].Values["data"].(string)
	require.True(t, ok)

	var stored models.RealtimeSnapshot
	require.NoError(t, json.Unmarshal([]byte(data), &stored))
	assert.Equal(t, "device-123", stored.DeviceID)
}

func TestCacheManager_PublishSnapshot_SetsTTL(t *testing.T) {
	mr, _, cacheManager := setupTestRedis(t)

	require.NoError(t, cacheManager.PublishSnapshot(context.Background(), testSnapshot()))

	// TTL 生效后键过期
	mr.FastForward(31 * time.Second)
	assert.False(t, mr.Exists("vital-focus:monitor:device-123:realtime"))
}

func TestCacheManager_GetSnapshot_RoundTrip(t *testing.T) {
	_, _, cacheManager := setupTestRedis(t)

	snapshot := testSnapshot()
	require.NoError(t, cacheManager.PublishSnapshot(context.Background(), snapshot))

	stored, err := cacheManager.GetSnapshot(context.Background(), "device-123")
	require.NoError(t, err)
	assert.Equal(t, snapshot, stored)
}

func TestCacheManager_GetSnapshot_NotFound(t *testing.T) {
	_, _, cacheManager := setupTestRedis(t)

	_, err := cacheManager.GetSnapshot(context.Background(), "device-missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "realtime data not found")
}
