package database

import (
	"fmt"

	"gorm.io/gorm"

	"FinSight/pkg/model"
)

// AlertDB 预警事件存取
type AlertDB struct {
	db *gorm.DB
}

// Save 保存预警事件
func (a *AlertDB) Save(alert *model.AlertEvent) error {
	if err := a.db.Create(alert).Error; err != nil {
		return fmt.Errorf("保存预警事件失败: %w", err)
	}
	return nil
}

// Recent 获取最近的预警事件，symbol为空时不过滤
func (a *AlertDB) Recent(symbol string, limit int) ([]*model.AlertEvent, error) {
	if limit <= 0 {
		limit = 10
	}

	var alerts []*model.AlertEvent
	query := a.db.Order("created_at DESC").Limit(limit)
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	}

	if err := query.Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("查询预警事件失败: %w", err)
	}
	return alerts, nil
}

// MarkNotified 标记预警事件已通知
func (a *AlertDB) MarkNotified(alertID string) error {
	if err := a.db.Model(&model.AlertEvent{}).
		Where("id = ?", alertID).
		Update("is_notified", true).Error; err != nil {
		return fmt.Errorf("标记预警事件失败: %w", err)
	}
	return nil
}

// GetBySeverity 按严重程度查询预警事件
func (a *AlertDB) GetBySeverity(severity model.Severity, limit int) ([]*model.AlertEvent, error) {
	if limit <= 0 {
		limit = 10
	}

	var alerts []*model.AlertEvent
	err := a.db.Where("severity = ?", severity).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	if err != nil {
		return nil, fmt.Errorf("按严重程度查询预警事件失败: %w", err)
	}
	return alerts, nil
}
