package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Severity 跌幅严重程度
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// NAVAnalysis 净值跌幅分析结果
// 由价格快照和阈值确定性推导，不做持久化
type NAVAnalysis struct {
	DropPercentage float64  `json:"drop_percentage"`
	Threshold      float64  `json:"threshold"`
	AlertTriggered bool     `json:"alert_triggered"`
	Severity       Severity `json:"severity"`
}

// AlertEvent 触发的净值预警事件
type AlertEvent struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol         string    `gorm:"type:varchar(20);not null;index" json:"symbol"`
	Severity       Severity  `gorm:"type:varchar(10);not null;index" json:"severity"`
	DropPercentage float64   `gorm:"type:decimal(8,4)" json:"drop_percentage"`
	Threshold      float64   `gorm:"type:decimal(8,4)" json:"threshold"`
	CurrentPrice   float64   `gorm:"type:decimal(12,4)" json:"current_price"`
	PreviousPrice  float64   `gorm:"type:decimal(12,4)" json:"previous_price"`
	Message        string    `gorm:"type:text" json:"message"`
	IsNotified     bool      `gorm:"default:false;index" json:"is_notified"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (a *AlertEvent) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

func (AlertEvent) TableName() string {
	return "nav_alert_events"
}

// AlertConfig 用户提交的预警配置
// 整体转发给外部工作流Webhook，本地不存储也不回读
type AlertConfig struct {
	Email          string    `json:"email"`
	Ticker         string    `json:"ticker"`
	ThresholdType  string    `json:"threshold_type"`
	ThresholdValue float64   `json:"threshold_value"`
	Timestamp      time.Time `json:"timestamp"`
}
