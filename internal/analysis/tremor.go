package analysis

import (
	"math"

	"wisefido-tremor/internal/models"
)

// AnalyzeTremor 震颤严重程度分级
//
// 取最近 20 条样本，计算每条的加速度平面模 sqrt(ax²+ay²) 的均值：
//   - > 2.5 → Severe
//   - > 1.5 → Moderate
//   - > 0.8 → Mild
//   - 其他  → Normal
//
// Confidence = min(95, avg/3*100)，Frequency = 4.5 + avg*2（展示值）。
// 样本不足 10 条时返回零值默认（Normal/0/0）。
func (a *Analyzer) AnalyzeTremor(history []models.Sample) models.TremorAnalysis {
	if len(history) < tremorMinSamples {
		return models.TremorAnalysis{Severity: models.SeverityNormal}
	}

	window := tail(history, tremorWindow)

	var sum float64
	for _, s := range window {
		sum += math.Sqrt(s.Accelerometer.X*s.Accelerometer.X + s.Accelerometer.Y*s.Accelerometer.Y)
	}
	avg := sum / float64(len(window))

	severity := models.SeverityNormal
	switch {
	case avg > 2.5:
		severity = models.SeveritySevere
	case avg > 1.5:
		severity = models.SeverityModerate
	case avg > 0.8:
		severity = models.SeverityMild
	}

	return models.TremorAnalysis{
		Severity:   severity,
		Frequency:  4.5 + avg*2,
		Confidence: math.Min(95, avg/3*100),
	}
}
