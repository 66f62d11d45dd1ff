package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"wisefido-tremor/internal/models"
)

// motionSamples 构造 n 条指定加速度/角速度幅值的样本
func motionSamples(n int, accel, gyro float64) []models.Sample {
	samples := make([]models.Sample, n)
	for i := range samples {
		samples[i] = models.Sample{
			Timestamp:     int64(i * 100),
			Accelerometer: models.Vector3{X: accel},
			Gyroscope:     models.Vector3{X: gyro},
		}
	}
	return samples
}

func TestPredict_InsufficientData(t *testing.T) {
	a := newTestAnalyzer(1)

	for n := 0; n < 5; n++ {
		result := a.Predict(motionSamples(n, 10, 50))
		assert.Equal(t, models.Predictions{}, result, "history length %d", n)
	}
}

func TestPredict_FieldsWithinDocumentedRanges(t *testing.T) {
	// 多个随机种子 + 极端窗口，四项评分必须落在各自区间内
	windows := [][]models.Sample{
		motionSamples(10, 0, 0),
		motionSamples(10, 0.1, 0.5),
		motionSamples(10, 2, 20),
		motionSamples(10, 100, 1000),
		motionSamples(5, 50, 500),
	}

	for seed := int64(0); seed < 20; seed++ {
		a := newTestAnalyzer(seed)
		for i, window := range windows {
			p := a.Predict(window)

			assert.GreaterOrEqual(t, p.Tremor, 5, "window %d seed %d", i, seed)
			assert.LessOrEqual(t, p.Tremor, 95, "window %d seed %d", i, seed)
			assert.GreaterOrEqual(t, p.Bradykinesia, 5, "window %d seed %d", i, seed)
			assert.LessOrEqual(t, p.Bradykinesia, 65, "window %d seed %d", i, seed)
			assert.GreaterOrEqual(t, p.Gait, 5, "window %d seed %d", i, seed)
			assert.LessOrEqual(t, p.Gait, 70, "window %d seed %d", i, seed)
			assert.GreaterOrEqual(t, p.PosturalInstability, 5, "window %d seed %d", i, seed)
			assert.LessOrEqual(t, p.PosturalInstability, 75, "window %d seed %d", i, seed)
		}
	}
}

func TestPredict_JitterMakesOutputNonDeterministic(t *testing.T) {
	// 同一窗口两次调用结果不同（抖动项每次独立抽取）
	a := NewAnalyzer(rand.New(rand.NewSource(7)))
	window := motionSamples(10, 1.5, 10)

	first := a.Predict(window)
	different := false
	for i := 0; i < 10; i++ {
		if a.Predict(window) != first {
			different = true
			break
		}
	}
	assert.True(t, different, "repeated predictions should differ due to jitter")
}

func TestPredict_UsesLast10Samples(t *testing.T) {
	a := newTestAnalyzer(8)

	// 前 20 条剧烈运动，后 10 条静止 → 评分贴近下限
	history := append(motionSamples(20, 100, 1000), motionSamples(10, 0, 0)...)
	p := a.Predict(history)

	assert.LessOrEqual(t, p.Tremor, 20)
	assert.LessOrEqual(t, p.PosturalInstability, 30)
}
