package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wisefido-tremor/internal/models"
)

// vitalsSamples 构造 n 条指定 EMG 和加速度模的样本
func vitalsSamples(n int, emg, accel float64) []models.Sample {
	samples := make([]models.Sample, n)
	for i := range samples {
		samples[i] = models.Sample{
			Timestamp:     int64(i * 100),
			EMG:           emg,
			Accelerometer: models.Vector3{X: accel},
		}
	}
	return samples
}

func TestMedicalStatus_InsufficientDataReturnsPrevUnchanged(t *testing.T) {
	a := newTestAnalyzer(1)

	prev := models.MedicalStatus{
		MuscleRigidity:       models.StatusDetected,
		Dyskinesia:           models.StatusDetected,
		AutonomicDysfunction: models.StatusAbnormal,
		Fatigue:              models.StatusNormal,
		SleepDisturbances:    models.StatusNormal,
	}

	for n := 0; n < 5; n++ {
		result := a.MedicalStatus(vitalsSamples(n, 100, 10), prev)
		assert.Equal(t, prev, result, "history length %d", n)
	}
}

func TestMedicalStatus_MuscleRigidityThreshold(t *testing.T) {
	a := newTestAnalyzer(2)
	prev := models.DefaultMedicalStatus()

	// mean(EMG) > 35 → Detected
	result := a.MedicalStatus(vitalsSamples(10, 40, 0), prev)
	assert.Equal(t, models.StatusDetected, result.MuscleRigidity)

	result = a.MedicalStatus(vitalsSamples(10, 30, 0), prev)
	assert.Equal(t, models.StatusNormal, result.MuscleRigidity)

	// 边界值不触发
	result = a.MedicalStatus(vitalsSamples(10, 35, 0), prev)
	assert.Equal(t, models.StatusNormal, result.MuscleRigidity)
}

func TestMedicalStatus_AutonomicDysfunctionThreshold(t *testing.T) {
	a := newTestAnalyzer(3)
	prev := models.DefaultMedicalStatus()

	// mean(加速度模) > 2 → Abnormal
	result := a.MedicalStatus(vitalsSamples(10, 0, 2.5), prev)
	assert.Equal(t, models.StatusAbnormal, result.AutonomicDysfunction)

	result = a.MedicalStatus(vitalsSamples(10, 0, 1.5), prev)
	assert.Equal(t, models.StatusNormal, result.AutonomicDysfunction)
}

func TestMedicalStatus_ConstantFields(t *testing.T) {
	a := newTestAnalyzer(4)
	prev := models.DefaultMedicalStatus()

	for i := 0; i < 20; i++ {
		result := a.MedicalStatus(vitalsSamples(10, 50, 5), prev)
		assert.Equal(t, models.StatusNormal, result.Fatigue)
		assert.Equal(t, models.StatusNormal, result.SleepDisturbances)
	}
}

func TestMedicalStatus_DyskinesiaIndependentOfWindow(t *testing.T) {
	a := newTestAnalyzer(5)
	prev := models.DefaultMedicalStatus()

	// 掷硬币概率 0.3：足够多次调用里两种取值都应出现
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		result := a.MedicalStatus(vitalsSamples(10, 0, 0), prev)
		seen[result.Dyskinesia] = true
	}
	assert.True(t, seen[models.StatusNormal])
	assert.True(t, seen[models.StatusDetected])
}
