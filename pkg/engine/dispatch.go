package engine

import (
	"log"

	"FinSight/pkg/model"
)

// AlertPublisher 预警事件发布接口
type AlertPublisher interface {
	Publish(subject string, data interface{}) error
}

// AlertRecorder 预警事件落库接口
type AlertRecorder interface {
	Save(alert *model.AlertEvent) error
}

// DrainAlerts 消费预警通道：落库并发布，直到通道关闭且排空才返回
// recorder为nil时只发不存；单条失败只记日志，不中断后续事件
func DrainAlerts(alertChan <-chan model.AlertEvent, subject string, publisher AlertPublisher, recorder AlertRecorder) {
	for alert := range alertChan {
		log.Printf("处理预警事件: 股票=%s, 跌幅=%.2f%%, 严重程度=%s\n",
			alert.Symbol, alert.DropPercentage, alert.Severity)

		// 保存预警事件
		if recorder != nil {
			if err := recorder.Save(&alert); err != nil {
				log.Printf("保存预警事件失败: %v\n", err)
			}
		}

		// 发布到消息队列，通知服务消费后转发Webhook
		if err := publisher.Publish(subject, alert); err != nil {
			log.Printf("发布预警事件失败: %v\n", err)
		}
	}
}
