package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"FinSight/pkg/agent"
	"FinSight/pkg/model"
	"FinSight/pkg/nav"
	"FinSight/pkg/resolver"
)

// testProvider 返回固定行情的提供方
type testProvider struct{}

func (p *testProvider) FastQuote(ticker string) (float64, error) {
	return 100, nil
}

func (p *testProvider) FetchSnapshot(ticker, period string) (*model.PriceSnapshot, error) {
	return &model.PriceSnapshot{
		Ticker:        ticker,
		CurrentPrice:  94,
		PreviousPrice: 100,
		ChangePct:     -6,
	}, nil
}

func (p *testProvider) FetchFinancials(ticker string) (*model.CompanyFinancials, error) {
	return &model.CompanyFinancials{Ticker: ticker}, nil
}

func (p *testProvider) FetchProfile(ticker string) (*model.CompanyProfile, error) {
	return &model.CompanyProfile{Ticker: ticker}, nil
}

func (p *testProvider) FetchNews(ticker string, limit int) ([]model.NewsItem, error) {
	return []model.NewsItem{{Title: "测试新闻"}}, nil
}

func (p *testProvider) FetchIndex(symbol string) (*model.IndexQuote, error) {
	return &model.IndexQuote{Symbol: symbol, ChangePct: 0.5}, nil
}

// testLLM 固定应答的大模型桩
type testLLM struct{}

func (l *testLLM) SummarizeComparison(data interface{}) (string, error) {
	return "summary", nil
}

func (l *testLLM) AnswerFinanceQuery(query string) (string, error) {
	return "answer", nil
}

// testForwarder 记录转发调用
type testForwarder struct {
	configs []*model.AlertConfig
	fail    bool
}

func (f *testForwarder) SendAlertConfig(cfg *model.AlertConfig) error {
	if f.fail {
		return fmt.Errorf("转发失败")
	}
	f.configs = append(f.configs, cfg)
	return nil
}

func newTestServer(forwarder *testForwarder) (*gin.Engine, *Handlers) {
	gin.SetMode(gin.TestMode)

	provider := &testProvider{}
	router := agent.NewRouter(resolver.NewResolver(provider), provider, &testLLM{})
	pipeline := nav.NewPipeline(provider, 5.0)
	handlers := NewHandlers(router, provider, pipeline, forwarder, nil)

	engine := gin.New()
	engine.POST("/api/v1/chat", handlers.Chat)
	engine.GET("/api/v1/nav/:ticker", handlers.GetNAVAnalysis)
	engine.POST("/api/v1/alerts/config", handlers.SubmitAlertConfig)
	engine.GET("/api/v1/alerts/history", handlers.GetAlertHistory)
	return engine, handlers
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	w := doRequest(engine, "POST", "/api/v1/chat", `{"query": "price of SBI"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, 响应: %s", w.Code, w.Body.String())
	}

	var envelope model.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if envelope.Type != model.EnvelopeTool {
		t.Errorf("Type = %v, 期望 %v", envelope.Type, model.EnvelopeTool)
	}
	if envelope.Ticker != "SBIN.NS" {
		t.Errorf("Ticker = %q, 期望 SBIN.NS", envelope.Ticker)
	}
}

func TestChatMissingQuery(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	w := doRequest(engine, "POST", "/api/v1/chat", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
}

func TestChatSessionConfirmation(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	first := doRequest(engine, "POST", "/api/v1/chat", `{"query": "price of SBI", "session_id": "s1"}`)
	if first.Code != http.StatusOK {
		t.Fatalf("首轮状态码 = %d", first.Code)
	}

	// 同会话内裸"yes"重放上一条查询
	second := doRequest(engine, "POST", "/api/v1/chat", `{"query": "yes", "session_id": "s1"}`)
	var envelope model.Envelope
	if err := json.Unmarshal(second.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if envelope.Intent != model.IntentPrice {
		t.Errorf("追认后Intent = %v, 期望重放价格查询", envelope.Intent)
	}
}

func TestNAVEndpoint(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	// 100 -> 94: 跌幅6%超过默认阈值5%
	w := doRequest(engine, "GET", "/api/v1/nav/SBIN.NS", "")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, 响应: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data nav.State `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !resp.Data.Analysis.AlertTriggered {
		t.Errorf("跌幅6%%超过阈值5%%时应触发预警")
	}
}

func TestNAVEndpointBadThreshold(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	w := doRequest(engine, "GET", "/api/v1/nav/SBIN.NS?threshold=-1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
}

func TestNAVEndpointCustomThreshold(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	// 阈值拉高到10%后不再触发
	w := doRequest(engine, "GET", "/api/v1/nav/SBIN.NS?threshold=10", "")
	var resp struct {
		Data nav.State `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Analysis.AlertTriggered {
		t.Errorf("跌幅6%%低于阈值10%%时不应触发")
	}
}

func TestSubmitAlertConfig(t *testing.T) {
	forwarder := &testForwarder{}
	engine, _ := newTestServer(forwarder)

	w := doRequest(engine, "POST", "/api/v1/alerts/config",
		`{"email": "user@example.com", "ticker": "SBIN.NS", "threshold_type": "percent", "threshold_value": 5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, 响应: %s", w.Code, w.Body.String())
	}

	if len(forwarder.configs) != 1 {
		t.Fatalf("转发次数 = %d, 期望 1", len(forwarder.configs))
	}
	cfg := forwarder.configs[0]
	if cfg.Email != "user@example.com" || cfg.Ticker != "SBIN.NS" {
		t.Errorf("转发内容异常: %+v", cfg)
	}
	if cfg.Timestamp.IsZero() {
		t.Errorf("Timestamp未填充")
	}
}

func TestSubmitAlertConfigInvalidEmail(t *testing.T) {
	forwarder := &testForwarder{}
	engine, _ := newTestServer(forwarder)

	w := doRequest(engine, "POST", "/api/v1/alerts/config",
		`{"email": "not-an-email", "ticker": "SBIN.NS", "threshold_type": "percent", "threshold_value": 5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
	if len(forwarder.configs) != 0 {
		t.Errorf("非法请求不应转发")
	}
}

func TestSubmitAlertConfigNonPositiveThreshold(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	w := doRequest(engine, "POST", "/api/v1/alerts/config",
		`{"email": "user@example.com", "ticker": "SBIN.NS", "threshold_type": "percent", "threshold_value": 0}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
}

func TestSubmitAlertConfigForwardFailure(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{fail: true})

	w := doRequest(engine, "POST", "/api/v1/alerts/config",
		`{"email": "user@example.com", "ticker": "SBIN.NS", "threshold_type": "percent", "threshold_value": 5}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("状态码 = %d, 期望 502", w.Code)
	}
}

// testStore 记录查询调用的预警历史桩
type testStore struct {
	recentSymbol string
	bySeverity   model.Severity
}

func (s *testStore) Recent(symbol string, limit int) ([]*model.AlertEvent, error) {
	s.recentSymbol = symbol
	return []*model.AlertEvent{{Symbol: "SBIN.NS", Severity: model.SeverityMedium}}, nil
}

func (s *testStore) GetBySeverity(severity model.Severity, limit int) ([]*model.AlertEvent, error) {
	s.bySeverity = severity
	return []*model.AlertEvent{{Symbol: "INFY.NS", Severity: severity}}, nil
}

func newHistoryServer(store *testStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handlers := NewHandlers(nil, &testProvider{}, nil, &testForwarder{}, store)
	engine := gin.New()
	engine.GET("/api/v1/alerts/history", handlers.GetAlertHistory)
	return engine
}

func TestAlertHistoryBySeverity(t *testing.T) {
	store := &testStore{}
	engine := newHistoryServer(store)

	w := doRequest(engine, "GET", "/api/v1/alerts/history?severity=high", "")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200, 响应: %s", w.Code, w.Body.String())
	}
	if store.bySeverity != model.SeverityHigh {
		t.Errorf("查询严重程度 = %v, 期望大写归一化为 %v", store.bySeverity, model.SeverityHigh)
	}
}

func TestAlertHistoryInvalidSeverity(t *testing.T) {
	store := &testStore{}
	engine := newHistoryServer(store)

	w := doRequest(engine, "GET", "/api/v1/alerts/history?severity=extreme", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("状态码 = %d, 期望 400", w.Code)
	}
	if store.bySeverity != "" {
		t.Errorf("非法severity不应触达存储层")
	}
}

func TestAlertHistoryBySymbol(t *testing.T) {
	store := &testStore{}
	engine := newHistoryServer(store)

	w := doRequest(engine, "GET", "/api/v1/alerts/history?symbol=SBIN.NS", "")
	if w.Code != http.StatusOK {
		t.Fatalf("状态码 = %d, 期望 200", w.Code)
	}
	if store.recentSymbol != "SBIN.NS" {
		t.Errorf("查询代码 = %q, 期望 SBIN.NS", store.recentSymbol)
	}
}

func TestAlertHistoryWithoutDatabase(t *testing.T) {
	engine, _ := newTestServer(&testForwarder{})

	w := doRequest(engine, "GET", "/api/v1/alerts/history", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("状态码 = %d, 期望 503", w.Code)
	}
}
