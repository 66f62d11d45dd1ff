package publisher

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"wisefido-tremor/internal/config"
	"wisefido-tremor/internal/models"
	mqttcommon "wisefido-tremor/internal/mqtt"
)

// MQTTPublisher 原始样本 MQTT 发布器
//
// 模拟穿戴设备上报：每条样本发布到 tremor/{device_id}/data，
// 与雷达/睡眠垫设备的数据主题约定保持一致。
type MQTTPublisher struct {
	config     *config.Config
	mqttClient *mqttcommon.Client
	logger     *zap.Logger
}

// NewMQTTPublisher 创建 MQTT 发布器
func NewMQTTPublisher(cfg *config.Config, mqttClient *mqttcommon.Client, logger *zap.Logger) *MQTTPublisher {
	return &MQTTPublisher{
		config:     cfg,
		mqttClient: mqttClient,
		logger:     logger,
	}
}

// PublishSample 发布一条原始样本
func (p *MQTTPublisher) PublishSample(sample models.Sample) error {
	payload, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	if err := p.mqttClient.Publish(p.config.Tremor.Topics.Data, p.config.MQTT.QoS, false, payload); err != nil {
		return fmt.Errorf("failed to publish sample: %w", err)
	}

	return nil
}
