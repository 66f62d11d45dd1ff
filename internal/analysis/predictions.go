package analysis

import (
	"math"

	"wisefido-tremor/internal/models"
)

// Predict 四项启发式评分
//
// 取最近 10 条样本，计算三轴加速度模均值和三轴角速度模均值，
// 每项评分是两个均值的线性组合加独立抖动项（同一窗口两次调用
// 结果也不同），四舍五入后限制在各自的固定区间内：
//   - Tremor:              [5, 95]
//   - Bradykinesia:        [5, 65]
//   - Gait:                [5, 70]
//   - PosturalInstability: [5, 75]
//
// 样本不足 5 条时全部为 0。
func (a *Analyzer) Predict(history []models.Sample) models.Predictions {
	if len(history) < derivedMinSamples {
		return models.Predictions{}
	}

	window := tail(history, derivedWindow)

	var accelSum, gyroSum float64
	for _, s := range window {
		accelSum += magnitude3(s.Accelerometer)
		gyroSum += magnitude3(s.Gyroscope)
	}
	accelMean := accelSum / float64(len(window))
	gyroMean := gyroSum / float64(len(window))

	return models.Predictions{
		Tremor:              clamp(round(accelMean*28+gyroMean*0.8+a.jitter(8)), 5, 95),
		Bradykinesia:        clamp(round(20+gyroMean*1.2+a.jitter(6)), 5, 65),
		Gait:                clamp(round(15+accelMean*8+gyroMean*0.6+a.jitter(7)), 5, 70),
		PosturalInstability: clamp(round(12+accelMean*12+a.jitter(9)), 5, 75),
	}
}

func round(v float64) int {
	return int(math.Round(v))
}
