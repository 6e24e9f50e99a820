package agent

import (
	"log"
	"time"

	"FinSight/pkg/model"
)

// marketIndices 大盘摘要覆盖的指数列表
var marketIndices = []struct {
	Symbol string
	Name   string
}{
	{"^NSEI", "NIFTY 50"},
	{"^BSESN", "SENSEX"},
	{"^NSEBANK", "BANK NIFTY"},
	{"^CNXIT", "NIFTY IT"},
}

// errorPayload 上游失败在数据操作边界统一转换为错误载荷
func errorPayload(err error) map[string]interface{} {
	return map[string]interface{}{
		"error": err.Error(),
	}
}

// PriceData 价格查询操作
func (rt *Router) PriceData(ticker, period string) interface{} {
	snapshot, err := rt.provider.FetchSnapshot(ticker, period)
	if err != nil {
		log.Printf("获取价格快照失败: %v", err)
		return errorPayload(err)
	}
	return snapshot
}

// FinancialsData 财务数据查询操作
func (rt *Router) FinancialsData(ticker string) interface{} {
	financials, err := rt.provider.FetchFinancials(ticker)
	if err != nil {
		log.Printf("获取财务数据失败: %v", err)
		return errorPayload(err)
	}
	return financials
}

// NewsData 新闻查询操作
func (rt *Router) NewsData(ticker string, limit int) interface{} {
	news, err := rt.provider.FetchNews(ticker, limit)
	if err != nil {
		log.Printf("获取新闻失败: %v", err)
		return errorPayload(err)
	}
	return news
}

// CompareData 多股对比操作
// 单只股票失败只降级该条数据，不影响已取得的兄弟数据
func (rt *Router) CompareData(tickers []string) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(tickers))
	for _, ticker := range tickers {
		row := map[string]interface{}{
			"ticker": ticker,
		}

		snapshot, err := rt.provider.FetchSnapshot(ticker, "5d")
		if err != nil {
			log.Printf("对比取价失败 %s: %v", ticker, err)
			row["error"] = err.Error()
			rows = append(rows, row)
			continue
		}
		row["current_price"] = snapshot.CurrentPrice
		row["change_pct"] = snapshot.ChangePct

		if financials, err := rt.provider.FetchFinancials(ticker); err == nil {
			row["pe_ratio"] = financials.Ratios.Valuation.PERatio
			row["roe"] = financials.Ratios.Profitability.ROE
			row["profit_margin"] = financials.Ratios.Profitability.ProfitMargin
		} else {
			log.Printf("对比取财务失败 %s: %v", ticker, err)
		}

		rows = append(rows, row)
	}
	return rows
}

// MarketData 大盘摘要操作
// 单个指数失败仅缺失该数据点，情绪统计按取得的指数计算
func (rt *Router) MarketData() *model.MarketSummary {
	summary := &model.MarketSummary{
		AsOf: time.Now().UTC(),
	}

	for _, index := range marketIndices {
		quote, err := rt.provider.FetchIndex(index.Symbol)
		if err != nil {
			log.Printf("获取指数失败 %s: %v", index.Symbol, err)
			continue
		}
		quote.Name = index.Name
		summary.Indices = append(summary.Indices, *quote)

		if quote.ChangePct > 0 {
			summary.IndicesUp++
		} else if quote.ChangePct < 0 {
			summary.IndicesDown++
		}
	}

	switch {
	case summary.IndicesUp > summary.IndicesDown:
		summary.Sentiment = "Bullish"
	case summary.IndicesDown > summary.IndicesUp:
		summary.Sentiment = "Bearish"
	default:
		summary.Sentiment = "Neutral"
	}
	if total := summary.IndicesUp + summary.IndicesDown; total > 0 {
		summary.SentimentScore = float64(summary.IndicesUp) / float64(total) * 100
	} else {
		summary.SentimentScore = 50
	}

	return summary
}
