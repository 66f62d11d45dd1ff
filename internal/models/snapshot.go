package models

// RealtimeSnapshot 每个 tick 发布的实时数据（写入 Redis 供前端消费）
//
// 键格式: vital-focus:monitor:{device_id}:realtime
// 同时追加到 tremor:data:stream 供下游服务消费。
type RealtimeSnapshot struct {
	DeviceID  string `json:"device_id"`
	SessionID string `json:"session_id"`
	Timestamp int64  `json:"timestamp"`

	Sample         Sample         `json:"sample"`
	Tremor         TremorAnalysis `json:"tremor"`
	Predictions    Predictions    `json:"predictions"`
	MedicalStatus  MedicalStatus  `json:"medical_status"`
	Recommendation string         `json:"recommendation"`
}
