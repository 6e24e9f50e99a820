package agent

import (
	"fmt"
	"strings"

	"FinSight/pkg/collector"
	"FinSight/pkg/model"
	"FinSight/pkg/resolver"
)

// outOfScopeMessage 非财经查询的固定引导回复
const outOfScopeMessage = "⚠️ I'm a **Financial Markets Assistant**\n\n" +
	"Try asking:\n" +
	"• Price of INFY\n" +
	"• Compare TCS and INFY\n" +
	"• Give me market updates"

// LLM 大模型调用接口，便于测试替换
type LLM interface {
	SummarizeComparison(data interface{}) (string, error)
	AnswerFinanceQuery(query string) (string, error)
}

// Router 查询路由器
// 编排 解析 -> 分类 -> 分发 -> 统一响应 的完整链路；
// 自身无任何本地可变状态，所有副作用都是对外的网络调用
type Router struct {
	resolver *resolver.Resolver
	provider collector.MarketDataProvider
	llm      LLM
}

// NewRouter 创建查询路由器
func NewRouter(res *resolver.Resolver, provider collector.MarketDataProvider, llm LLM) *Router {
	return &Router{
		resolver: res,
		provider: provider,
		llm:      llm,
	}
}

// Handle 处理一条用户查询并返回统一响应
func (rt *Router) Handle(session *Session, query string) *model.Envelope {
	steps := []string{fmt.Sprintf("User asked: %s", query)}

	// 单轮追认：裸"yes"/"ok"重放上一条财经查询
	if session != nil && isConfirmation(query) && session.LastQuery != "" {
		query = session.LastQuery
		steps = append(steps, fmt.Sprintf("Confirmation detected, replaying: %s", query))
	}

	// 宽口径域内判定，域外查询在分类之前短路返回
	if !IsFinanceQuery(query) {
		envelope := model.NewLLMEnvelope(model.IntentOutOfScope, outOfScopeMessage, steps)
		return envelope
	}

	queryLower := strings.ToLower(query)
	tickers := rt.resolver.Resolve(query)
	primary := ""
	if len(tickers) > 0 {
		primary = tickers[0]
	}

	intent := ClassifyIntent(queryLower, tickers)
	steps = append(steps, fmt.Sprintf("Detected intent: %s, tickers: %s", intent, describeTickers(tickers)))

	// 域内查询记入会话，供下一轮追认
	if session != nil {
		session.LastQuery = query
	}

	switch intent {
	case model.IntentPrice:
		if primary == "" {
			return model.NewErrorEnvelope("Please specify a stock symbol.", steps)
		}
		steps = append(steps, "Fetching price snapshot")
		envelope := model.NewToolEnvelope(model.IntentPrice, rt.PriceData(primary, "5d"), steps)
		envelope.Ticker = primary
		return envelope

	case model.IntentFinancials:
		if primary == "" {
			return model.NewErrorEnvelope("Please specify a stock symbol.", steps)
		}
		steps = append(steps, "Fetching financials")
		envelope := model.NewToolEnvelope(model.IntentFinancials, rt.FinancialsData(primary), steps)
		envelope.Ticker = primary
		return envelope

	case model.IntentCompare:
		if len(tickers) < 2 {
			return model.NewErrorEnvelope("I need two stock symbols to compare.", steps)
		}
		steps = append(steps, "Comparing stocks")
		data := rt.CompareData(tickers)

		// 对比摘要失败时退化为行内错误串，绝不中断响应
		summary, err := rt.llm.SummarizeComparison(data)
		if err != nil {
			summary = fmt.Sprintf("AI summary unavailable: %v", err)
		}

		envelope := model.NewToolEnvelope(model.IntentCompare, data, steps)
		envelope.Tickers = tickers
		envelope.Summary = summary
		return envelope

	case model.IntentMarket:
		steps = append(steps, "Fetching market summary")
		return model.NewToolEnvelope(model.IntentMarket, rt.MarketData(), steps)

	case model.IntentNews:
		if primary == "" {
			return model.NewErrorEnvelope("Please specify stock for news.", steps)
		}
		steps = append(steps, "Fetching news")
		envelope := model.NewToolEnvelope(model.IntentNews, rt.NewsData(primary, 5), steps)
		envelope.Ticker = primary
		return envelope

	default:
		steps = append(steps, "General finance query, delegating to LLM")
		response, err := rt.llm.AnswerFinanceQuery(query)
		if err != nil {
			response = fmt.Sprintf("AI response unavailable: %v", err)
		}
		envelope := model.NewLLMEnvelope(model.IntentGeneral, response, steps)
		envelope.Ticker = primary
		return envelope
	}
}

// describeTickers 生成推理轨迹中的代码描述
func describeTickers(tickers []string) string {
	if len(tickers) == 0 {
		return "none"
	}
	return strings.Join(tickers, ", ")
}
