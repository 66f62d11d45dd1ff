package models

// Vector3 三轴传感器读数（加速度计/陀螺仪共用）
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Sample 单次多通道采样
//
// 由模拟器每个 tick 生成一条，生成后不可变。
// - Timestamp: 毫秒级单调时间戳
// - EMG: 肌电信号幅值，构造上恒为非负
// - ECG: 合成心电信号（基线 75，75 BPM）
type Sample struct {
	Timestamp     int64   `json:"timestamp"`
	Accelerometer Vector3 `json:"accelerometer"`
	Gyroscope     Vector3 `json:"gyroscope"`
	EMG           float64 `json:"emg"`
	ECG           float64 `json:"ecg"`
}
