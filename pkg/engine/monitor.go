package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"FinSight/pkg/model"
	"FinSight/pkg/nav"
)

// Monitor 净值监控引擎
// 按cron表达式周期性对自选列表执行净值流水线，触发的预警写入alertChan
type Monitor struct {
	pipeline  *nav.Pipeline
	cron      *cron.Cron
	watchlist []string
	cronSpec  string
	alertChan chan<- model.AlertEvent
}

// NewMonitor 创建净值监控引擎
func NewMonitor(pipeline *nav.Pipeline, watchlist []string, cronSpec string, alertChan chan<- model.AlertEvent) *Monitor {
	return &Monitor{
		pipeline:  pipeline,
		cron:      cron.New(),
		watchlist: watchlist,
		cronSpec:  cronSpec,
		alertChan: alertChan,
	}
}

// Start 启动监控引擎
func (m *Monitor) Start() error {
	if len(m.watchlist) == 0 {
		log.Println("自选列表为空，净值监控不启动")
		return nil
	}

	if _, err := m.cron.AddFunc(m.cronSpec, m.checkWatchlist); err != nil {
		return fmt.Errorf("注册监控任务失败: %w", err)
	}

	m.cron.Start()
	log.Printf("净值监控已启动: %d 只股票, 调度 %s, 阈值 %.2f%%",
		len(m.watchlist), m.cronSpec, m.pipeline.Threshold())

	// 启动后立即跑一轮，不等第一个调度点
	go m.checkWatchlist()
	return nil
}

// Stop 停止监控引擎
func (m *Monitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("净值监控已停止")
}

// checkWatchlist 对自选列表执行一轮净值检查
func (m *Monitor) checkWatchlist() {
	log.Printf("开始净值检查: %d 只股票", len(m.watchlist))

	for _, ticker := range m.watchlist {
		state := m.pipeline.Run(ticker)
		if state.Failed() {
			log.Printf("净值检查失败 %s (阶段 %s): %v", ticker, state.FailedStage, state.Err)
			continue
		}

		analysis := state.Analysis
		if !analysis.AlertTriggered {
			log.Printf("净值正常 %s: %s", ticker, state.Message)
			continue
		}

		alert := model.AlertEvent{
			Symbol:         ticker,
			Severity:       analysis.Severity,
			DropPercentage: analysis.DropPercentage,
			Threshold:      analysis.Threshold,
			CurrentPrice:   state.Price.CurrentPrice,
			PreviousPrice:  state.Price.PreviousPrice,
			Message:        state.Message,
			CreatedAt:      time.Now().UTC(),
		}

		// 通道满时丢弃本轮事件，不阻塞检查循环
		select {
		case m.alertChan <- alert:
			log.Printf("净值预警触发 %s: 跌幅 %.2f%%, 严重程度 %s",
				ticker, analysis.DropPercentage, analysis.Severity)
		default:
			log.Printf("预警通道已满，丢弃事件: %s", ticker)
		}
	}
}
