package analysis

import (
	"wisefido-tremor/internal/models"
)

// dyskinesia 掷硬币概率（与窗口数据无关，保留原始行为）
const dyskinesiaProbability = 0.3

// MedicalStatus 医疗状态指标
//
// 取最近 10 条样本：
//   - MuscleRigidity:       mean(EMG) > 35 → Detected
//   - AutonomicDysfunction: mean(三轴加速度模) > 2 → Abnormal
//   - Dyskinesia:           以 0.3 概率 Detected（独立掷硬币，不依赖窗口）
//   - Fatigue / SleepDisturbances: 恒为 Normal（展示用常量字段）
//
// 样本不足 5 条时原样返回 prev（状态透传是整个分析层唯一跨 tick
// 保留的状态，由调用方显式传入上一次的结果）。
func (a *Analyzer) MedicalStatus(history []models.Sample, prev models.MedicalStatus) models.MedicalStatus {
	if len(history) < derivedMinSamples {
		return prev
	}

	window := tail(history, derivedWindow)

	var emgSum, accelSum float64
	for _, s := range window {
		emgSum += s.EMG
		accelSum += magnitude3(s.Accelerometer)
	}
	emgMean := emgSum / float64(len(window))
	accelMean := accelSum / float64(len(window))

	status := models.MedicalStatus{
		MuscleRigidity:       models.StatusNormal,
		Dyskinesia:           models.StatusNormal,
		AutonomicDysfunction: models.StatusNormal,
		Fatigue:              models.StatusNormal,
		SleepDisturbances:    models.StatusNormal,
	}
	if emgMean > 35 {
		status.MuscleRigidity = models.StatusDetected
	}
	if accelMean > 2 {
		status.AutonomicDysfunction = models.StatusAbnormal
	}
	if a.rng.Float64() < dyskinesiaProbability {
		status.Dyskinesia = models.StatusDetected
	}

	return status
}
