package notifier

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"wisefido-tremor/internal/models"
)

// AlertPayload Webhook 告警消息体
type AlertPayload struct {
	DeviceID       string  `json:"device_id"`
	SessionID      string  `json:"session_id"`
	Timestamp      int64   `json:"timestamp"`
	Severity       string  `json:"severity"`
	Frequency      float64 `json:"frequency"`
	Confidence     float64 `json:"confidence"`
	Recommendation string  `json:"recommendation"`
}

// WebhookNotifier 严重震颤告警通知器
//
// 严重程度进入 Severe 时向配置的 URL POST 一条告警 JSON。
// 转换判定由服务层负责，这里只管投递。
type WebhookNotifier struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewWebhookNotifier 创建 Webhook 通知器
func NewWebhookNotifier(url string, timeout time.Duration, logger *zap.Logger) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WebhookNotifier{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

// NotifySevereTremor 投递严重震颤告警
func (n *WebhookNotifier) NotifySevereTremor(snapshot *models.RealtimeSnapshot) error {
	payload := AlertPayload{
		DeviceID:       snapshot.DeviceID,
		SessionID:      snapshot.SessionID,
		Timestamp:      snapshot.Timestamp,
		Severity:       string(snapshot.Tremor.Severity),
		Frequency:      snapshot.Tremor.Frequency,
		Confidence:     snapshot.Tremor.Confidence,
		Recommendation: snapshot.Recommendation,
	}

	n.logger.Info("Sending severe tremor alert",
		zap.String("device_id", payload.DeviceID),
		zap.String("session_id", payload.SessionID),
		zap.Float64("confidence", payload.Confidence),
	)

	resp, err := n.httpClient.R().
		SetBody(payload).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("failed to call alert webhook: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("alert webhook returned status %d", resp.StatusCode())
	}

	return nil
}
