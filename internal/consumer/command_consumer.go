package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"wisefido-tremor/internal/config"
	mqttcommon "wisefido-tremor/internal/mqtt"
)

// 命令动作
const (
	ActionStartRecording = "start_recording"
	ActionStopRecording  = "stop_recording"
)

// Command 命令主题消息格式
// 主题格式: tremor/{device_id}/command
type Command struct {
	Action string `json:"action"`
}

// Recorder 录制开关（由 monitor.Session 实现）
type Recorder interface {
	SetRecording(enabled bool)
	IsRecording() bool
}

// CommandConsumer MQTT 命令消费者
//
// 订阅命令主题，处理外部（展示层）下发的录制开关命令。
type CommandConsumer struct {
	config     *config.Config
	mqttClient *mqttcommon.Client
	recorder   Recorder
	logger     *zap.Logger

	// 录制停止时的回调（用于触发报告导出），可为 nil
	onStop func()
}

// NewCommandConsumer 创建命令消费者
func NewCommandConsumer(
	cfg *config.Config,
	mqttClient *mqttcommon.Client,
	recorder Recorder,
	logger *zap.Logger,
) *CommandConsumer {
	return &CommandConsumer{
		config:     cfg,
		mqttClient: mqttClient,
		recorder:   recorder,
		logger:     logger,
	}
}

// SetOnStop 设置录制停止回调
func (c *CommandConsumer) SetOnStop(fn func()) {
	c.onStop = fn
}

// Start 启动消费者
func (c *CommandConsumer) Start(ctx context.Context) error {
	if err := c.mqttClient.Subscribe(c.config.Tremor.Topics.Command, c.config.MQTT.QoS, c.HandleMessage); err != nil {
		return fmt.Errorf("failed to subscribe to command topic: %w", err)
	}

	c.logger.Info("Command consumer started",
		zap.String("topic", c.config.Tremor.Topics.Command),
	)

	return nil
}

// Stop 停止消费者
func (c *CommandConsumer) Stop(ctx context.Context) error {
	if err := c.mqttClient.Unsubscribe(c.config.Tremor.Topics.Command); err != nil {
		c.logger.Error("Failed to unsubscribe", zap.Error(err))
	}

	c.logger.Info("Command consumer stopped")
	return nil
}

// HandleMessage 处理命令消息
func (c *CommandConsumer) HandleMessage(topic string, payload []byte) error {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return fmt.Errorf("failed to unmarshal command: %w", err)
	}

	switch cmd.Action {
	case ActionStartRecording:
		c.recorder.SetRecording(true)
		c.logger.Info("Recording started via MQTT command", zap.String("topic", topic))
	case ActionStopRecording:
		wasRecording := c.recorder.IsRecording()
		c.recorder.SetRecording(false)
		c.logger.Info("Recording stopped via MQTT command", zap.String("topic", topic))
		if wasRecording && c.onStop != nil {
			c.onStop()
		}
	default:
		return fmt.Errorf("unknown command action: %s", cmd.Action)
	}

	return nil
}
