package models

// Severity 震颤严重程度分级
type Severity string

const (
	SeverityNormal   Severity = "Normal"
	SeverityMild     Severity = "Mild"
	SeverityModerate Severity = "Moderate"
	SeveritySevere   Severity = "Severe"
)

// 状态分类值（与前端展示保持一致的字符串编码）
const (
	StatusNormal   = "Normal"
	StatusDetected = "Detected"
	StatusAbnormal = "Abnormal"
)

// TremorAnalysis 震颤分析结果
//
// 每个 tick 从最近 20 条样本整体重算，不携带历史状态。
// Frequency 是展示用的派生值（4.5 + avg*2），不是频谱测量值。
type TremorAnalysis struct {
	Severity   Severity `json:"severity"`
	Frequency  float64  `json:"frequency"`
	Confidence float64  `json:"confidence"`
}

// Predictions 启发式"预测"评分（最近 10 条样本派生）
//
// 各字段固定取值范围：
// - Tremor: [5, 95]
// - Bradykinesia: [5, 65]
// - Gait: [5, 70]
// - PosturalInstability: [5, 75]
// 数据不足（<5 条）时全部为 0。
type Predictions struct {
	Tremor              int `json:"tremor"`
	Bradykinesia        int `json:"bradykinesia"`
	Gait                int `json:"gait"`
	PosturalInstability int `json:"postural_instability"`
}

// MedicalStatus 医疗状态指标（最近 10 条样本派生）
//
// Fatigue 和 SleepDisturbances 是展示用的常量字段，恒为 Normal。
type MedicalStatus struct {
	MuscleRigidity       string `json:"muscle_rigidity"`
	Dyskinesia           string `json:"dyskinesia"`
	AutonomicDysfunction string `json:"autonomic_dysfunction"`
	Fatigue              string `json:"fatigue"`
	SleepDisturbances    string `json:"sleep_disturbances"`
}

// DefaultMedicalStatus 初始医疗状态（全部 Normal）
func DefaultMedicalStatus() MedicalStatus {
	return MedicalStatus{
		MuscleRigidity:       StatusNormal,
		Dyskinesia:           StatusNormal,
		AutonomicDysfunction: StatusNormal,
		Fatigue:              StatusNormal,
		SleepDisturbances:    StatusNormal,
	}
}
