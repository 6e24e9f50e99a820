package nav

import (
	"fmt"

	"FinSight/pkg/collector"
	"FinSight/pkg/model"
)

// DefaultThreshold 默认跌幅预警阈值（百分比）
const DefaultThreshold = 5.0

// PriceData 取价阶段的产出
type PriceData struct {
	Ticker        string  `json:"ticker"`
	CurrentPrice  float64 `json:"current_price"`
	PreviousPrice float64 `json:"previous_price"`
}

// State 流水线状态，沿 取价 -> 分析 -> 报文 三个阶段单向流动
// 任一阶段失败即关闭：记录失败阶段与原因，后续阶段原样传递
type State struct {
	Ticker      string             `json:"ticker"`
	Price       *PriceData         `json:"price_data,omitempty"`
	Analysis    *model.NAVAnalysis `json:"analysis,omitempty"`
	Message     string             `json:"message,omitempty"`
	FailedStage string             `json:"failed_stage,omitempty"`
	Err         error              `json:"-"`
	ErrText     string             `json:"error,omitempty"`
}

// Failed 流水线是否已失败
func (s *State) Failed() bool {
	return s.Err != nil
}

// fail 记录失败并关闭后续阶段
func (s *State) fail(stage string, err error) {
	s.FailedStage = stage
	s.Err = err
	s.ErrText = err.Error()
}

// Pipeline 净值跌幅分析流水线
// 拓扑固定为三段线性链，无分支、无循环、无重试
type Pipeline struct {
	provider  collector.MarketDataProvider
	threshold float64
}

// NewPipeline 创建分析流水线
func NewPipeline(provider collector.MarketDataProvider, threshold float64) *Pipeline {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Pipeline{
		provider:  provider,
		threshold: threshold,
	}
}

// Threshold 返回当前阈值
func (p *Pipeline) Threshold() float64 {
	return p.threshold
}

// Run 对单只股票执行一次完整流水线
func (p *Pipeline) Run(ticker string) *State {
	state := &State{Ticker: ticker}
	p.fetch(state)
	p.analyze(state)
	p.alert(state)
	return state
}

// RunWithThreshold 以临时阈值执行一次流水线
func (p *Pipeline) RunWithThreshold(ticker string, threshold float64) *State {
	if threshold <= 0 {
		threshold = p.threshold
	}
	override := &Pipeline{provider: p.provider, threshold: threshold}
	return override.Run(ticker)
}

// fetch 取价阶段：获取当前与上一收盘价
func (p *Pipeline) fetch(state *State) {
	snapshot, err := p.provider.FetchSnapshot(state.Ticker, "5d")
	if err != nil {
		state.fail("fetch", fmt.Errorf("获取价格数据失败: %w", err))
		return
	}

	state.Price = &PriceData{
		Ticker:        state.Ticker,
		CurrentPrice:  snapshot.CurrentPrice,
		PreviousPrice: snapshot.PreviousPrice,
	}
}

// analyze 分析阶段：计算跌幅并分级
func (p *Pipeline) analyze(state *State) {
	if state.Failed() {
		return
	}
	if state.Price == nil {
		state.fail("analyze", fmt.Errorf("缺少价格数据"))
		return
	}
	// 上一收盘价为0视为数据缺失，绝不做除法
	if state.Price.PreviousPrice == 0 {
		state.fail("analyze", fmt.Errorf("上一收盘价缺失或为0: %s", state.Ticker))
		return
	}

	dropPct := (state.Price.PreviousPrice - state.Price.CurrentPrice) / state.Price.PreviousPrice * 100

	state.Analysis = &model.NAVAnalysis{
		DropPercentage: dropPct,
		Threshold:      p.threshold,
		AlertTriggered: dropPct >= p.threshold,
		Severity:       classifySeverity(dropPct, p.threshold),
	}
}

// classifySeverity 按阈值倍数划分严重程度
func classifySeverity(dropPct, threshold float64) model.Severity {
	if dropPct >= threshold*1.5 {
		return model.SeverityHigh
	}
	if dropPct >= threshold {
		return model.SeverityMedium
	}
	return model.SeverityLow
}

// alert 报文阶段：纯格式化，不做任何新计算
func (p *Pipeline) alert(state *State) {
	if state.Failed() {
		return
	}

	analysis := state.Analysis
	if analysis.AlertTriggered {
		state.Message = fmt.Sprintf(
			"NAV ALERT: %s dropped %.2f%% (threshold %.2f%%), severity %s",
			state.Ticker, analysis.DropPercentage, analysis.Threshold, analysis.Severity)
		return
	}
	state.Message = fmt.Sprintf(
		"%s within threshold: change %.2f%%, no alert",
		state.Ticker, analysis.DropPercentage)
}
