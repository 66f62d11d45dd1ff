package simulator

import (
	"math"
	"math/rand"

	"wisefido-tremor/internal/models"
)

// 帕金森静息性震颤频带（Hz）
const (
	tremorFreqMin = 4.5
	tremorFreqMax = 6.0
	tremorAmpMin  = 0.5
	tremorAmpMax  = 2.5
)

// ECG 合成参数：800ms 心搏周期（75 BPM），基线 75
const (
	ecgBeatPeriodMs = 800
	ecgBaseline     = 75.0
)

// Generator 合成信号生成器
//
// 每次调用 Generate 产出一条多通道样本（加速度计/陀螺仪/EMG/ECG）。
// 震颤频率和幅度每次调用独立重抽（保留原始行为，不做会话级固定），
// 因此相邻样本之间没有连续波形参数。
//
// 随机源由调用方注入，测试可固定 seed 断言精确输出。
type Generator struct {
	rng *rand.Rand
}

// NewGenerator 创建生成器
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate 生成一条样本（全函数，无失败路径）
func (g *Generator) Generate(timestamp int64) models.Sample {
	// 每次调用独立抽取震颤参数
	freq := tremorFreqMin + g.rng.Float64()*(tremorFreqMax-tremorFreqMin)
	amp := tremorAmpMin + g.rng.Float64()*(tremorAmpMax-tremorAmpMin)
	tremor := math.Sin(float64(timestamp)*freq*0.1) * amp

	return models.Sample{
		Timestamp: timestamp,
		Accelerometer: models.Vector3{
			X: tremor + g.noise(0.1),
			Y: 1.0 + 0.7*tremor + g.noise(0.1), // 重力主导轴
			Z: 0.1 + g.noise(0.1),
		},
		Gyroscope: models.Vector3{
			X: 10*tremor + g.noise(1.0),
			Y: g.noise(1.0),
			Z: 8*tremor + g.noise(1.0),
		},
		EMG: 20 + 30*math.Abs(tremor) + g.rng.Float64()*10,
		ECG: g.ecg(timestamp),
	}
}

// noise 均匀噪声 U(-bound, +bound)
func (g *Generator) noise(bound float64) float64 {
	return (g.rng.Float64() - 0.5) * 2 * bound
}

// ecg 合成心电信号
//
// 心搏相位 t = (timestamp mod 800) / 800：
//   - P 波:  [0.05, 0.15] 小幅正向高斯
//   - QRS:   [0.2, 0.4) 内按局部相位叠加 Q(-8)/R(+35)/S(-12) 三个高斯分量
//   - T 波:  [0.5, 0.8] 正向高斯
//
// 三个波窗之外输出为基线 75 ± 0.4（均匀噪声界）。
// 视觉上接近真实 ECG 轨迹，不是生理学模型。
func (g *Generator) ecg(timestamp int64) float64 {
	t := float64(timestamp%ecgBeatPeriodMs) / ecgBeatPeriodMs
	value := ecgBaseline

	switch {
	case t >= 0.05 && t <= 0.15:
		// P 波
		value += 4 * gaussian(t, 0.10, 0.02)
	case t >= 0.2 && t < 0.4:
		// QRS 复合波，局部相位 x ∈ [0, 1)
		x := (t - 0.2) / 0.2
		value += -8 * gaussian(x, 0.1, 0.05)
		value += 35 * gaussian(x, 0.5, 0.06)
		value += -12 * gaussian(x, 0.85, 0.05)
	case t >= 0.5 && t <= 0.8:
		// T 波
		value += 6 * gaussian(t, 0.65, 0.06)
	}

	return value + g.noise(0.4)
}

// gaussian 标准高斯脉冲 exp(-(x-mu)^2 / (2*sigma^2))
func gaussian(x, mu, sigma float64) float64 {
	d := (x - mu) / sigma
	return math.Exp(-0.5 * d * d)
}
