package nav

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"FinSight/pkg/model"
)

// priceStub 返回固定价格对的行情提供方
type priceStub struct {
	current  float64
	previous float64
	err      error
}

func (s *priceStub) FastQuote(ticker string) (float64, error) {
	return s.current, s.err
}

func (s *priceStub) FetchSnapshot(ticker, period string) (*model.PriceSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.PriceSnapshot{
		Ticker:        ticker,
		CurrentPrice:  s.current,
		PreviousPrice: s.previous,
	}, nil
}

func (s *priceStub) FetchFinancials(ticker string) (*model.CompanyFinancials, error) {
	return nil, fmt.Errorf("未实现")
}

func (s *priceStub) FetchProfile(ticker string) (*model.CompanyProfile, error) {
	return nil, fmt.Errorf("未实现")
}

func (s *priceStub) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	return nil, fmt.Errorf("未实现")
}

func (s *priceStub) FetchIndex(symbol string) (*model.IndexQuote, error) {
	return nil, fmt.Errorf("未实现")
}

func TestPipelineTriggersAtThreshold(t *testing.T) {
	// 100 -> 95: 跌幅恰好等于阈值5%, 应触发且为MEDIUM
	pipeline := NewPipeline(&priceStub{current: 95, previous: 100}, 5.0)
	state := pipeline.Run("SBIN.NS")

	if state.Failed() {
		t.Fatalf("流水线意外失败: %v", state.Err)
	}
	if math.Abs(state.Analysis.DropPercentage-5.0) > 1e-9 {
		t.Errorf("DropPercentage = %v, 期望 5.0", state.Analysis.DropPercentage)
	}
	if !state.Analysis.AlertTriggered {
		t.Errorf("跌幅等于阈值时应触发预警")
	}
	if state.Analysis.Severity != model.SeverityMedium {
		t.Errorf("Severity = %v, 期望 %v", state.Analysis.Severity, model.SeverityMedium)
	}
	if !strings.Contains(state.Message, "NAV ALERT") {
		t.Errorf("Message = %q, 期望预警报文", state.Message)
	}
}

func TestPipelineHighSeverity(t *testing.T) {
	// 100 -> 80: 跌幅20%, 超过阈值1.5倍, 应为HIGH
	pipeline := NewPipeline(&priceStub{current: 80, previous: 100}, 5.0)
	state := pipeline.Run("INFY.NS")

	if state.Failed() {
		t.Fatalf("流水线意外失败: %v", state.Err)
	}
	if state.Analysis.Severity != model.SeverityHigh {
		t.Errorf("Severity = %v, 期望 %v", state.Analysis.Severity, model.SeverityHigh)
	}
}

func TestPipelinePriceRiseNoAlert(t *testing.T) {
	// 价格上涨时跌幅为负, 不触发, 严重程度为LOW
	pipeline := NewPipeline(&priceStub{current: 110, previous: 100}, 5.0)
	state := pipeline.Run("TCS.NS")

	if state.Failed() {
		t.Fatalf("流水线意外失败: %v", state.Err)
	}
	if state.Analysis.AlertTriggered {
		t.Errorf("价格上涨不应触发预警")
	}
	if state.Analysis.Severity != model.SeverityLow {
		t.Errorf("Severity = %v, 期望 %v", state.Analysis.Severity, model.SeverityLow)
	}
	if !strings.Contains(state.Message, "within threshold") {
		t.Errorf("Message = %q, 期望无预警报文", state.Message)
	}
}

func TestPipelineZeroPreviousPriceFails(t *testing.T) {
	// 上一收盘价为0必须进入失败分支, 绝不除零
	pipeline := NewPipeline(&priceStub{current: 95, previous: 0}, 5.0)
	state := pipeline.Run("RELIANCE.NS")

	if !state.Failed() {
		t.Fatalf("上一收盘价为0时流水线应失败")
	}
	if state.FailedStage != "analyze" {
		t.Errorf("FailedStage = %q, 期望 analyze", state.FailedStage)
	}
	if state.Analysis != nil {
		t.Errorf("失败后不应产出分析结果")
	}
	if state.Message != "" {
		t.Errorf("失败后不应产出报文")
	}
}

func TestPipelineFetchFailurePropagates(t *testing.T) {
	pipeline := NewPipeline(&priceStub{err: fmt.Errorf("上游超时")}, 5.0)
	state := pipeline.Run("SBIN.NS")

	if !state.Failed() {
		t.Fatalf("取价失败时流水线应失败")
	}
	if state.FailedStage != "fetch" {
		t.Errorf("FailedStage = %q, 期望 fetch", state.FailedStage)
	}
	if state.ErrText == "" {
		t.Errorf("ErrText为空, 期望保留失败原因")
	}
}

func TestPipelineDefaultThreshold(t *testing.T) {
	// 非法阈值回退到默认值
	pipeline := NewPipeline(&priceStub{current: 95, previous: 100}, 0)
	if pipeline.Threshold() != DefaultThreshold {
		t.Errorf("Threshold = %v, 期望默认 %v", pipeline.Threshold(), DefaultThreshold)
	}
}

func TestPipelineRunWithThreshold(t *testing.T) {
	// 临时阈值只作用于本次执行
	pipeline := NewPipeline(&priceStub{current: 97, previous: 100}, 5.0)

	state := pipeline.RunWithThreshold("SBIN.NS", 2.0)
	if !state.Analysis.AlertTriggered {
		t.Errorf("跌幅3%%超过临时阈值2%%时应触发")
	}
	if state.Analysis.Threshold != 2.0 {
		t.Errorf("Threshold = %v, 期望 2.0", state.Analysis.Threshold)
	}

	// 原有阈值不受影响
	if pipeline.Threshold() != 5.0 {
		t.Errorf("原阈值被篡改: %v", pipeline.Threshold())
	}
}
