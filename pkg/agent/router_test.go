package agent

import (
	"fmt"
	"strings"
	"testing"

	"FinSight/pkg/model"
	"FinSight/pkg/resolver"
)

// stubProvider 返回固定数据的行情提供方
type stubProvider struct {
	snapshotCalls int
	failSnapshot  bool
}

func (s *stubProvider) FastQuote(ticker string) (float64, error) {
	return 100, nil
}

func (s *stubProvider) FetchSnapshot(ticker, period string) (*model.PriceSnapshot, error) {
	s.snapshotCalls++
	if s.failSnapshot {
		return nil, fmt.Errorf("上游超时")
	}
	return &model.PriceSnapshot{
		Ticker:        ticker,
		CurrentPrice:  95,
		PreviousPrice: 100,
		ChangePct:     -5,
	}, nil
}

func (s *stubProvider) FetchFinancials(ticker string) (*model.CompanyFinancials, error) {
	return &model.CompanyFinancials{Ticker: ticker}, nil
}

func (s *stubProvider) FetchProfile(ticker string) (*model.CompanyProfile, error) {
	return &model.CompanyProfile{Ticker: ticker}, nil
}

func (s *stubProvider) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	return []model.NewsItem{{Title: "测试新闻"}}, nil
}

func (s *stubProvider) FetchIndex(symbol string) (*model.IndexQuote, error) {
	return &model.IndexQuote{Symbol: symbol, ChangePct: 1.2}, nil
}

// stubLLM 可控的大模型桩
type stubLLM struct {
	summarizeCalls int
	answerCalls    int
	fail           bool
}

func (s *stubLLM) SummarizeComparison(data interface{}) (string, error) {
	s.summarizeCalls++
	if s.fail {
		return "", fmt.Errorf("模型服务不可用")
	}
	return "comparison summary", nil
}

func (s *stubLLM) AnswerFinanceQuery(query string) (string, error) {
	s.answerCalls++
	if s.fail {
		return "", fmt.Errorf("模型服务不可用")
	}
	return "general answer", nil
}

func newTestRouter(provider *stubProvider, llm *stubLLM) *Router {
	return NewRouter(resolver.NewResolver(provider), provider, llm)
}

func TestHandleOutOfScopeShortCircuits(t *testing.T) {
	provider := &stubProvider{}
	llm := &stubLLM{}
	router := newTestRouter(provider, llm)
	session := NewSession()

	envelope := router.Handle(session, "tell me a joke")

	if envelope.Type != model.EnvelopeLLM {
		t.Errorf("Type = %v, 期望 %v", envelope.Type, model.EnvelopeLLM)
	}
	if envelope.Intent != model.IntentOutOfScope {
		t.Errorf("Intent = %v, 期望 %v", envelope.Intent, model.IntentOutOfScope)
	}
	if !strings.Contains(envelope.Response, "Financial Markets Assistant") {
		t.Errorf("Response缺少引导文案: %q", envelope.Response)
	}

	// 域外查询不触达任何下游
	if llm.answerCalls != 0 || llm.summarizeCalls != 0 {
		t.Errorf("域外查询不应调用大模型")
	}
	if provider.snapshotCalls != 0 {
		t.Errorf("域外查询不应调用行情源")
	}

	// 域外查询不写入会话
	if session.LastQuery != "" {
		t.Errorf("LastQuery = %q, 域外查询不应记入会话", session.LastQuery)
	}
}

func TestHandlePriceQuery(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &stubLLM{})
	session := NewSession()

	envelope := router.Handle(session, "price of SBI")

	if envelope.Type != model.EnvelopeTool {
		t.Fatalf("Type = %v, 期望 %v", envelope.Type, model.EnvelopeTool)
	}
	if envelope.Intent != model.IntentPrice {
		t.Errorf("Intent = %v, 期望 %v", envelope.Intent, model.IntentPrice)
	}
	if envelope.Ticker != "SBIN.NS" {
		t.Errorf("Ticker = %q, 期望 SBIN.NS", envelope.Ticker)
	}
	if session.LastQuery != "price of SBI" {
		t.Errorf("LastQuery = %q, 期望记录原始查询", session.LastQuery)
	}
	if len(envelope.Steps) == 0 {
		t.Errorf("Steps为空, 期望包含推理轨迹")
	}
}

func TestHandleCompareQuery(t *testing.T) {
	llm := &stubLLM{}
	router := newTestRouter(&stubProvider{}, llm)

	envelope := router.Handle(NewSession(), "compare TCS and INFY")

	if envelope.Type != model.EnvelopeTool {
		t.Fatalf("Type = %v, 期望 %v", envelope.Type, model.EnvelopeTool)
	}
	if envelope.Intent != model.IntentCompare {
		t.Errorf("Intent = %v, 期望 %v", envelope.Intent, model.IntentCompare)
	}
	want := []string{"TCS.NS", "INFY.NS"}
	if len(envelope.Tickers) != 2 || envelope.Tickers[0] != want[0] || envelope.Tickers[1] != want[1] {
		t.Errorf("Tickers = %v, 期望 %v", envelope.Tickers, want)
	}
	if envelope.Summary != "comparison summary" {
		t.Errorf("Summary = %q, 期望模型摘要", envelope.Summary)
	}
	if llm.summarizeCalls != 1 {
		t.Errorf("SummarizeComparison被调用 %d 次, 期望 1 次", llm.summarizeCalls)
	}
}

func TestHandleCompareSummaryDegrades(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &stubLLM{fail: true})

	envelope := router.Handle(NewSession(), "compare TCS and INFY")

	// 摘要失败退化为行内错误，数据响应不受影响
	if envelope.Type != model.EnvelopeTool {
		t.Fatalf("Type = %v, 期望摘要失败不影响数据响应", envelope.Type)
	}
	if !strings.Contains(envelope.Summary, "AI summary unavailable") {
		t.Errorf("Summary = %q, 期望行内降级文案", envelope.Summary)
	}
}

func TestHandleConfirmationReplay(t *testing.T) {
	provider := &stubProvider{}
	router := newTestRouter(provider, &stubLLM{})
	session := NewSession()

	first := router.Handle(session, "price of SBI")
	if first.Intent != model.IntentPrice {
		t.Fatalf("首轮Intent = %v, 期望 %v", first.Intent, model.IntentPrice)
	}

	second := router.Handle(session, "yes")
	if second.Intent != model.IntentPrice {
		t.Errorf("追认后Intent = %v, 期望重放上一条查询", second.Intent)
	}
	if second.Ticker != "SBIN.NS" {
		t.Errorf("追认后Ticker = %q, 期望 SBIN.NS", second.Ticker)
	}

	replayed := false
	for _, step := range second.Steps {
		if strings.Contains(step, "replaying") {
			replayed = true
		}
	}
	if !replayed {
		t.Errorf("Steps缺少重放轨迹: %v", second.Steps)
	}
}

func TestHandleGeneralLLMFailureDegrades(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &stubLLM{fail: true})

	envelope := router.Handle(NewSession(), "explain sip investment to me")

	if envelope.Type != model.EnvelopeLLM {
		t.Fatalf("Type = %v, 期望 %v", envelope.Type, model.EnvelopeLLM)
	}
	if !strings.Contains(envelope.Response, "AI response unavailable") {
		t.Errorf("Response = %q, 期望行内降级文案", envelope.Response)
	}
}

func TestHandleMarketQuery(t *testing.T) {
	router := newTestRouter(&stubProvider{}, &stubLLM{})

	envelope := router.Handle(NewSession(), "how is the market today")

	if envelope.Intent != model.IntentMarket {
		t.Fatalf("Intent = %v, 期望 %v", envelope.Intent, model.IntentMarket)
	}
	summary, ok := envelope.Data.(*model.MarketSummary)
	if !ok {
		t.Fatalf("Data类型 = %T, 期望 *model.MarketSummary", envelope.Data)
	}
	if len(summary.Indices) != 4 {
		t.Errorf("指数数量 = %d, 期望 4", len(summary.Indices))
	}
	if summary.Sentiment != "Bullish" {
		t.Errorf("Sentiment = %q, 全部上涨时期望 Bullish", summary.Sentiment)
	}
}
