package analysis

import (
	"wisefido-tremor/internal/models"
)

// 每个严重程度分级对应 3 条固定建议文案，每 10 秒轮换一条
var recommendations = map[models.Severity][3]string{
	models.SeverityNormal: {
		"Movement patterns look stable. Keep up your regular activity routine.",
		"No significant tremor detected. Continue daily exercises as planned.",
		"Readings are within the normal range. Maintain your current medication schedule.",
	},
	models.SeverityMild: {
		"Mild tremor detected. Consider a short rest and avoid caffeine.",
		"Slight movement irregularity observed. Gentle stretching may help.",
		"Mild symptoms present. Note the time and activity for your care team.",
	},
	models.SeverityModerate: {
		"Moderate tremor detected. Sit down and practice deep breathing.",
		"Symptoms are elevated. Check whether the next medication dose is due.",
		"Moderate movement disturbance. Avoid tasks requiring fine motor control.",
	},
	models.SeveritySevere: {
		"Severe tremor detected. Stop current activity and rest in a safe position.",
		"Strong symptoms observed. Contact your care team if this persists.",
		"Severe movement disturbance. Take medication if scheduled and stay seated.",
	},
}

// Recommend 根据严重程度返回建议文案
//
// 文案按 floor(nowMillis/10000) mod 3 选取，即每 10 秒墙钟时间轮换，
// 与分析内容无关（分级之外）。severity 和 nowMillis 的纯函数。
func Recommend(severity models.Severity, nowMillis int64) string {
	tier, ok := recommendations[severity]
	if !ok {
		tier = recommendations[models.SeverityNormal]
	}
	return tier[(nowMillis/10000)%3]
}
