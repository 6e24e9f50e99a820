package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"FinSight/pkg/model"
)

// WebhookNotifier 外部工作流Webhook通知器
// 发送是即发即忘的：任意2xx视为成功，不校验对端是否持久化
type WebhookNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWebhookNotifier 创建Webhook通知器
func NewWebhookNotifier(webhookURL string, timeout time.Duration) *WebhookNotifier {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// post 发送JSON载荷
func (n *WebhookNotifier) post(payload interface{}) error {
	if n.webhookURL == "" {
		return fmt.Errorf("Webhook地址未配置")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化载荷失败: %w", err)
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("发送Webhook请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("Webhook返回非2xx状态码: %d", resp.StatusCode)
	}
	return nil
}

// SendAlertConfig 转发用户的预警配置
func (n *WebhookNotifier) SendAlertConfig(cfg *model.AlertConfig) error {
	if cfg.Timestamp.IsZero() {
		cfg.Timestamp = time.Now().UTC()
	}
	if err := n.post(cfg); err != nil {
		return fmt.Errorf("转发预警配置失败: %w", err)
	}
	return nil
}

// SendAlertEvent 转发触发的预警事件
func (n *WebhookNotifier) SendAlertEvent(event *model.AlertEvent) error {
	payload := map[string]interface{}{
		"ticker":          event.Symbol,
		"severity":        event.Severity,
		"drop_percentage": event.DropPercentage,
		"threshold":       event.Threshold,
		"message":         FormatAlertMessage(event),
		"timestamp":       event.CreatedAt,
	}
	if err := n.post(payload); err != nil {
		return fmt.Errorf("转发预警事件失败: %w", err)
	}
	return nil
}

// FormatAlertMessage 格式化预警消息
func FormatAlertMessage(event *model.AlertEvent) string {
	return fmt.Sprintf(
		"🚨 NAV Alert: %s\n"+
			"Drop: %.2f%% (threshold %.2f%%)\n"+
			"Severity: %s\n"+
			"Price: %.2f (prev %.2f)\n"+
			"Time: %s",
		event.Symbol,
		event.DropPercentage, event.Threshold,
		event.Severity,
		event.CurrentPrice, event.PreviousPrice,
		event.CreatedAt.Format("2006-01-02 15:04:05"),
	)
}
