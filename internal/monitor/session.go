// Package monitor 管理单个监测会话的显式状态
//
// Session 是历史缓冲、录制开关和上一次派生结果的唯一持有者。
// 每个 tick 的流程：生成样本 → 追加历史（超过 50 条淘汰最旧）→
// 同步运行全部分析子程序 → 发布快照。没有环境全局状态。
package monitor

import (
	"sync"

	"wisefido-tremor/internal/analysis"
	"wisefido-tremor/internal/models"
	"wisefido-tremor/internal/simulator"
)

// 历史缓冲容量（FIFO，超出后淘汰最旧样本）
const historyCapacity = 50

// Session 监测会话控制器
//
// Tick 由外部驱动（服务层 100ms 定时器），Session 自身不持有定时器。
// 互斥锁保护历史缓冲：定时循环写入，MQTT 命令处理器切换录制开关。
type Session struct {
	mu sync.Mutex

	deviceID  string
	sessionID string

	generator *simulator.Generator
	analyzer  *analysis.Analyzer

	recording  bool
	history    []models.Sample
	prevStatus models.MedicalStatus
	snapshot   *models.RealtimeSnapshot
}

// NewSession 创建监测会话
func NewSession(deviceID, sessionID string, generator *simulator.Generator, analyzer *analysis.Analyzer) *Session {
	return &Session{
		deviceID:   deviceID,
		sessionID:  sessionID,
		generator:  generator,
		analyzer:   analyzer,
		history:    make([]models.Sample, 0, historyCapacity),
		prevStatus: models.DefaultMedicalStatus(),
	}
}

// SetRecording 切换录制开关
//
// 关闭后 Tick 不再推进；进行中的 Tick 不会被打断（调用方串行驱动）。
func (s *Session) SetRecording(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recording = enabled
}

// IsRecording 返回录制开关状态
func (s *Session) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Tick 推进一个采样周期
//
// 录制关闭时不做任何事并返回 nil。录制开启时生成一条样本、
// 更新历史缓冲并整体重算所有派生结果，返回本次快照。
func (s *Session) Tick(nowMillis int64) *models.RealtimeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.recording {
		return nil
	}

	sample := s.generator.Generate(nowMillis)

	s.history = append(s.history, sample)
	if len(s.history) > historyCapacity {
		s.history = s.history[1:]
	}

	tremor := s.analyzer.AnalyzeTremor(s.history)
	predictions := s.analyzer.Predict(s.history)
	status := s.analyzer.MedicalStatus(s.history, s.prevStatus)
	s.prevStatus = status

	snapshot := &models.RealtimeSnapshot{
		DeviceID:       s.deviceID,
		SessionID:      s.sessionID,
		Timestamp:      nowMillis,
		Sample:         sample,
		Tremor:         tremor,
		Predictions:    predictions,
		MedicalStatus:  status,
		Recommendation: analysis.Recommend(tremor.Severity, nowMillis),
	}
	s.snapshot = snapshot

	return snapshot
}

// Snapshot 返回最近一次 Tick 的快照（尚未产生时为 nil）
func (s *Session) Snapshot() *models.RealtimeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// History 返回历史缓冲的副本（最旧在前）
func (s *Session) History() []models.Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sample, len(s.history))
	copy(out, s.history)
	return out
}

// SessionID 返回会话 ID
func (s *Session) SessionID() string {
	return s.sessionID
}

// DeviceID 返回设备 ID
func (s *Session) DeviceID() string {
	return s.deviceID
}
