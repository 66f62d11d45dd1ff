// Package analysis 提供滑动窗口启发式分析
//
// 三个相互独立的子程序，均为历史窗口的纯函数：
// - AnalyzeTremor: 震颤严重程度分级（最近 20 条，至少 10 条）
// - Predict: 四项启发式评分（最近 10 条，至少 5 条）
// - MedicalStatus: 医疗状态指标（最近 10 条，至少 5 条）
//
// 数据不足时返回定义好的默认值，所有路径都是全函数，没有失败模式。
// Predict 的抖动项和 MedicalStatus 的 dyskinesia 掷硬币使用注入的
// 随机源，测试可固定 seed。
package analysis

import (
	"math"
	"math/rand"

	"wisefido-tremor/internal/models"
)

// 各子程序的窗口大小与最小样本数
const (
	tremorWindow     = 20
	tremorMinSamples = 10

	derivedWindow     = 10
	derivedMinSamples = 5
)

// Analyzer 窗口分析器
type Analyzer struct {
	rng *rand.Rand
}

// NewAnalyzer 创建分析器
func NewAnalyzer(rng *rand.Rand) *Analyzer {
	return &Analyzer{rng: rng}
}

// tail 取 history 的最后 n 条（不足 n 条时返回全部）
func tail(history []models.Sample, n int) []models.Sample {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

// jitter 均匀抖动 U(-bound, +bound)
func (a *Analyzer) jitter(bound float64) float64 {
	return (a.rng.Float64() - 0.5) * 2 * bound
}

// clamp 将 v 限制在 [lo, hi]
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// magnitude3 三轴向量模
func magnitude3(v models.Vector3) float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}
