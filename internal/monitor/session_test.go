package monitor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wisefido-tremor/internal/analysis"
	"wisefido-tremor/internal/models"
	"wisefido-tremor/internal/simulator"
)

func newTestSession(seed int64) *Session {
	rng := rand.New(rand.NewSource(seed))
	return NewSession("device-1", "session-1",
		simulator.NewGenerator(rng),
		analysis.NewAnalyzer(rng),
	)
}

func TestSession_NotRecordingProducesNothing(t *testing.T) {
	s := newTestSession(1)

	assert.Nil(t, s.Tick(0))
	assert.Nil(t, s.Snapshot())
	assert.Empty(t, s.History())
}

func TestSession_HistoryBoundedTo50(t *testing.T) {
	s := newTestSession(2)
	s.SetRecording(true)

	// 200 个 tick，缓冲只保留最后 50 条，最旧先淘汰
	for i := 0; i < 200; i++ {
		snapshot := s.Tick(int64(i * 100))
		require.NotNil(t, snapshot)
	}

	history := s.History()
	require.Len(t, history, 50)

	// 应为第 150..199 个 tick 的时间戳，升序排列
	for i, sample := range history {
		assert.Equal(t, int64((150+i)*100), sample.Timestamp)
	}
}

func TestSession_InsufficientDataDefaults(t *testing.T) {
	s := newTestSession(3)
	s.SetRecording(true)

	// 只喂 3 个 tick → 所有派生结果都是"数据不足"默认值
	var snapshot *models.RealtimeSnapshot
	for i := 0; i < 3; i++ {
		snapshot = s.Tick(int64(i * 100))
	}

	require.NotNil(t, snapshot)
	assert.Equal(t, models.TremorAnalysis{Severity: models.SeverityNormal}, snapshot.Tremor)
	assert.Equal(t, models.Predictions{}, snapshot.Predictions)
	assert.Equal(t, models.DefaultMedicalStatus(), snapshot.MedicalStatus)
}

func TestSession_SnapshotCarriesIdentity(t *testing.T) {
	s := newTestSession(4)
	s.SetRecording(true)

	snapshot := s.Tick(12345)
	require.NotNil(t, snapshot)

	assert.Equal(t, "device-1", snapshot.DeviceID)
	assert.Equal(t, "session-1", snapshot.SessionID)
	assert.Equal(t, int64(12345), snapshot.Timestamp)
	assert.Equal(t, int64(12345), snapshot.Sample.Timestamp)
	assert.NotEmpty(t, snapshot.Recommendation)

	// 最后一次快照可重复读取
	assert.Equal(t, snapshot, s.Snapshot())
}

func TestSession_StopRecordingFreezesHistory(t *testing.T) {
	s := newTestSession(5)
	s.SetRecording(true)

	for i := 0; i < 10; i++ {
		s.Tick(int64(i * 100))
	}
	require.Len(t, s.History(), 10)

	s.SetRecording(false)
	assert.Nil(t, s.Tick(99999))
	assert.Len(t, s.History(), 10)

	// 重新开启后继续追加
	s.SetRecording(true)
	require.NotNil(t, s.Tick(100000))
	assert.Len(t, s.History(), 11)
}

func TestSession_HistoryReturnsCopy(t *testing.T) {
	s := newTestSession(6)
	s.SetRecording(true)
	s.Tick(100)

	history := s.History()
	history[0].Timestamp = -1

	assert.Equal(t, int64(100), s.History()[0].Timestamp)
}
